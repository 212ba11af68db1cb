// Package quiz builds quizzes from study guides and evaluates submitted
// answers. Question selection is salience-weighted and seeded, so a fixed
// configuration always produces the same quiz from the same guide.
package quiz

import (
	"fmt"
	"time"
)

// QuestionType identifies how a question is asked and graded.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	Essay          QuestionType = "essay"
)

// ParseQuestionType parses a question type string.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(s) {
	case MultipleChoice, TrueFalse, ShortAnswer, Essay:
		return QuestionType(s), nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Difficulty is a quiz or question difficulty level.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium, or hard)", s)
}

// StepUp returns the next harder level, clamped at Hard.
func (d Difficulty) StepUp() Difficulty {
	switch d {
	case Easy:
		return Medium
	case Medium:
		return Hard
	}
	return Hard
}

// StepDown returns the next easier level, clamped at Easy.
func (d Difficulty) StepDown() Difficulty {
	switch d {
	case Hard:
		return Medium
	case Medium:
		return Easy
	}
	return Easy
}

// Question is one quiz item. Options are populated only for
// multiple_choice and true_false.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty"`
	SourceConcept string       `json:"source_concept"`
}

// Quiz is immutable after creation. Retaking it produces new Results and
// never mutates the Quiz itself.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`

	// Difficulty is the nominal target; individual questions may differ.
	Difficulty Difficulty `json:"difficulty"`

	// TimeLimit is in minutes.
	TimeLimit int `json:"time_limit"`

	// PassingScore is a percentage threshold.
	PassingScore int `json:"passing_score"`

	CreatedAt time.Time `json:"created_at"`
}

// ConceptStat counts correct answers against questions asked for one
// concept within a single quiz.
type ConceptStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is the outcome of one evaluation pass over a quiz.
type Result struct {
	QuizID         string            `json:"quiz_id"`
	Answers        map[string]string `json:"answers"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Percentage     float64           `json:"percentage"`

	// ConceptStats holds per-concept correct/total counts. Progress
	// tracking derives per-concept accuracy from these across a window.
	ConceptStats map[string]ConceptStat `json:"concept_stats,omitempty"`

	// WeakAreas holds source concepts of incorrectly answered questions.
	WeakAreas []string `json:"weak_areas,omitempty"`

	// Recommendations are deterministic review prompts, worst concept first.
	Recommendations []string `json:"recommendations,omitempty"`

	TimeTakenSec int       `json:"time_taken_sec,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Passed reports whether the result meets the quiz's passing score.
func (r *Result) Passed(q *Quiz) bool {
	return r.Percentage >= float64(q.PassingScore)
}
