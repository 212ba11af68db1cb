package quiz

import (
	"errors"
	"testing"
)

func TestEvaluateQuiz_AllCorrect(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q, err := e.CreateQuiz(testGuide(), Medium, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := make(map[string]string)
	for _, question := range q.Questions {
		answers[question.ID] = question.CorrectAnswer
	}

	result := e.EvaluateQuiz(q, answers, 120)

	if result.Percentage != 100 {
		t.Errorf("expected 100%%, got %v", result.Percentage)
	}
	if result.Score != 4 {
		t.Errorf("expected score 4, got %d", result.Score)
	}
	if len(result.WeakAreas) != 0 {
		t.Errorf("expected no weak areas, got %v", result.WeakAreas)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", result.Recommendations)
	}
	if result.TimeTakenSec != 120 {
		t.Errorf("expected time taken 120, got %d", result.TimeTakenSec)
	}
	if !result.Passed(q) {
		t.Error("a perfect score must pass")
	}
}

func TestEvaluateQuiz_EmptyAnswers(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q, err := e.CreateQuiz(testGuide(), Medium, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := e.EvaluateQuiz(q, map[string]string{}, 0)

	if result.Percentage != 0 {
		t.Errorf("expected 0%%, got %v", result.Percentage)
	}

	// Every source concept becomes a weak area.
	want := make(map[string]bool)
	for _, question := range q.Questions {
		want[question.SourceConcept] = true
	}
	if len(result.WeakAreas) != len(want) {
		t.Fatalf("expected %d weak areas, got %d", len(want), len(result.WeakAreas))
	}
	for _, area := range result.WeakAreas {
		if !want[area] {
			t.Errorf("unexpected weak area %q", area)
		}
	}
	if result.Passed(q) {
		t.Error("an empty submission must not pass")
	}
}

func TestEvaluateQuiz_EmptyQuiz(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q := &Quiz{ID: "empty"}

	result := e.EvaluateQuiz(q, map[string]string{"x": "y"}, 0)
	if result.Percentage != 0 {
		t.Errorf("empty quiz percentage must be 0, got %v", result.Percentage)
	}
}

func TestEvaluateQuiz_CaseAndWhitespaceInsensitive(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q := &Quiz{
		ID: "q1",
		Questions: []Question{
			{ID: "a", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "derivative"},
			{ID: "b", Type: MultipleChoice, CorrectAnswer: "The rate of change.", SourceConcept: "derivative"},
		},
	}

	result := e.EvaluateQuiz(q, map[string]string{
		"a": "  TRUE ",
		"b": "the RATE of   change",
	}, 0)

	if result.Score != 2 {
		t.Errorf("expected score 2, got %d", result.Score)
	}
}

func TestEvaluateQuiz_ShortAnswerOverlap(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q := &Quiz{
		ID: "q1",
		Questions: []Question{
			{
				ID:            "a",
				Type:          ShortAnswer,
				CorrectAnswer: "The derivative measures the rate of change of a function.",
				SourceConcept: "derivative",
			},
		},
	}

	// Covers derivative, measures, rate, change (4 of 5 keywords).
	good := e.EvaluateQuiz(q, map[string]string{
		"a": "the derivative measures the rate of change",
	}, 0)
	if good.Score != 1 {
		t.Errorf("paraphrase with high keyword overlap should pass, score = %d", good.Score)
	}

	bad := e.EvaluateQuiz(q, map[string]string{"a": "something about math"}, 0)
	if bad.Score != 0 {
		t.Errorf("unrelated answer should fail, score = %d", bad.Score)
	}
}

func TestEvaluateQuiz_EssayLowerThreshold(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	correct := "The integral accumulates quantities over an interval of the domain."
	q := &Quiz{
		ID: "q1",
		Questions: []Question{
			{ID: "a", Type: Essay, CorrectAnswer: correct, SourceConcept: "integral"},
		},
	}

	// Covers integral and accumulates, 2 of 5 keywords = 0.4, above the
	// essay threshold but below the short-answer one.
	overlap := e.keywordOverlap(correct, "an integral accumulates things")
	if overlap < cfg.EssayOverlap || overlap >= cfg.ShortAnswerOverlap {
		t.Fatalf("test fixture overlap %v must sit between the thresholds", overlap)
	}

	result := e.EvaluateQuiz(q, map[string]string{"a": "an integral accumulates things"}, 0)
	if result.Score != 1 {
		t.Errorf("essay at %.2f overlap should pass, score = %d", overlap, result.Score)
	}
}

func TestEvaluateQuiz_MissingAnswersAreIncorrect(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q := &Quiz{
		ID: "q1",
		Questions: []Question{
			{ID: "a", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "derivative"},
			{ID: "b", Type: TrueFalse, CorrectAnswer: "false", SourceConcept: "integral"},
		},
	}

	result := e.EvaluateQuiz(q, map[string]string{"a": "true"}, 0)
	if result.Score != 1 {
		t.Errorf("expected score 1, got %d", result.Score)
	}
	if len(result.WeakAreas) != 1 || result.WeakAreas[0] != "integral" {
		t.Errorf("expected weak area [integral], got %v", result.WeakAreas)
	}
}

func TestEvaluateQuiz_RecommendationOrdering(t *testing.T) {
	e := NewEngine(DefaultConfig())
	q := &Quiz{
		ID: "q1",
		Questions: []Question{
			{ID: "a", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "series"},
			{ID: "b", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "series"},
			{ID: "c", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "limit"},
			{ID: "d", Type: TrueFalse, CorrectAnswer: "true", SourceConcept: "continuity"},
		},
	}

	// Miss both series questions plus one each for limit and continuity.
	result := e.EvaluateQuiz(q, map[string]string{}, 0)

	want := []string{"Review: series", "Review: continuity", "Review: limit"}
	if len(result.Recommendations) != len(want) {
		t.Fatalf("expected %d recommendations, got %v", len(want), result.Recommendations)
	}
	for i := range want {
		if result.Recommendations[i] != want[i] {
			t.Errorf("recommendation %d = %q, want %q", i, result.Recommendations[i], want[i])
		}
	}
}

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers([]byte(`{"q1":"true","q2":"the definition"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answers["q1"] != "true" {
		t.Errorf("unexpected answers: %v", answers)
	}
}

func TestParseAnswers_Invalid(t *testing.T) {
	cases := []string{
		`[1,2,3]`,
		`{"q1": 42}`,
		`not json`,
	}
	for _, in := range cases {
		_, err := ParseAnswers([]byte(in))
		if err == nil {
			t.Errorf("ParseAnswers(%q): expected error", in)
			continue
		}
		var invalid *ErrInvalidAnswerFormat
		if !errors.As(err, &invalid) {
			t.Errorf("ParseAnswers(%q): expected ErrInvalidAnswerFormat, got %T", in, err)
		}
	}
}
