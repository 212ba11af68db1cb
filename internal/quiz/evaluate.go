package quiz

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// ParseAnswers decodes an answers document: a JSON object mapping question
// id to submitted answer. Structural invalidity returns
// *ErrInvalidAnswerFormat; unknown or missing question ids are fine and
// simply score as incorrect.
func ParseAnswers(data []byte) (map[string]string, error) {
	var answers map[string]string
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, &ErrInvalidAnswerFormat{Err: err}
	}
	return answers, nil
}

// EvaluateQuiz grades submitted answers against a quiz. It never fails:
// arbitrary or garbled learner answers are expected input, not errors.
// Each call produces a new independent Result.
func (e *Engine) EvaluateQuiz(q *Quiz, answers map[string]string, timeTakenSec int) *Result {
	result := &Result{
		QuizID:         q.ID,
		Answers:        answers,
		TotalQuestions: len(q.Questions),
		TimeTakenSec:   timeTakenSec,
		Timestamp:      time.Now().UTC(),
	}

	missCount := make(map[string]int)
	stats := make(map[string]ConceptStat)
	for _, question := range q.Questions {
		stat := stats[question.SourceConcept]
		stat.Total++

		submitted, ok := answers[question.ID]
		if ok && e.answerMatches(question, submitted) {
			result.Score++
			stat.Correct++
		} else {
			missCount[question.SourceConcept]++
		}
		stats[question.SourceConcept] = stat
	}
	if len(stats) > 0 {
		result.ConceptStats = stats
	}

	if result.TotalQuestions > 0 {
		result.Percentage = float64(result.Score) / float64(result.TotalQuestions) * 100
	}

	result.WeakAreas = weakAreas(missCount)
	result.Recommendations = recommendations(missCount)
	return result
}

// answerMatches applies the type-specific grading rule.
func (e *Engine) answerMatches(q Question, submitted string) bool {
	switch q.Type {
	case ShortAnswer:
		return e.keywordOverlap(q.CorrectAnswer, submitted) >= e.cfg.ShortAnswerOverlap
	case Essay:
		return e.keywordOverlap(q.CorrectAnswer, submitted) >= e.cfg.EssayOverlap
	default:
		return normalizeAnswer(submitted) == normalizeAnswer(q.CorrectAnswer)
	}
}

// keywordOverlap is the fraction of the correct answer's keywords (stop
// words removed) present in the submitted answer. Falls back to exact
// normalized matching when the correct answer has no keywords.
func (e *Engine) keywordOverlap(correct, submitted string) float64 {
	keys := e.keywords(correct)
	if len(keys) == 0 {
		if normalizeAnswer(correct) == normalizeAnswer(submitted) {
			return 1
		}
		return 0
	}

	have := make(map[string]struct{})
	for _, tok := range strings.Fields(normalizeAnswer(submitted)) {
		have[tok] = struct{}{}
	}

	matched := 0
	for _, k := range keys {
		if _, ok := have[k]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(keys))
}

// keywords returns the deduplicated non-stop-word tokens of s.
func (e *Engine) keywords(s string) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, tok := range strings.Fields(normalizeAnswer(s)) {
		if _, stop := e.cfg.Stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keys = append(keys, tok)
	}
	return keys
}

// normalizeAnswer lowercases, strips punctuation, and collapses whitespace.
func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-', r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func weakAreas(missCount map[string]int) []string {
	if len(missCount) == 0 {
		return nil
	}
	areas := make([]string, 0, len(missCount))
	for concept := range missCount {
		areas = append(areas, concept)
	}
	sort.Strings(areas)
	return areas
}

// recommendations emits one "Review: <concept>" per weak concept, worst
// first; ties break alphabetically so output is deterministic.
func recommendations(missCount map[string]int) []string {
	if len(missCount) == 0 {
		return nil
	}
	concepts := make([]string, 0, len(missCount))
	for concept := range missCount {
		concepts = append(concepts, concept)
	}
	sort.Slice(concepts, func(i, j int) bool {
		if missCount[concepts[i]] != missCount[concepts[j]] {
			return missCount[concepts[i]] > missCount[concepts[j]]
		}
		return concepts[i] < concepts[j]
	})

	recs := make([]string, len(concepts))
	for i, concept := range concepts {
		recs[i] = "Review: " + concept
	}
	return recs
}
