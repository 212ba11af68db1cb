package quiz

import (
	"errors"
	"testing"

	"github.com/akarsh/studyforge/internal/extract"
	"github.com/akarsh/studyforge/internal/guide"
)

func testGuide() *guide.StudyGuide {
	return &guide.StudyGuide{
		Title:   "calculus study guide",
		Subject: "calculus",
		Level:   guide.LevelUndergraduate,
		Concepts: []extract.Concept{
			{Name: "derivative", Definition: "The rate of change of a function at a point.", Salience: 9, Relationships: []string{"integral"}},
			{Name: "integral", Definition: "The accumulation of quantities over an interval.", Salience: 8, Relationships: []string{"derivative"}},
			{Name: "limit", Definition: "The value a function approaches as input approaches a point.", Salience: 6},
			{Name: "continuity", Definition: "A function without jumps or breaks on its domain.", Salience: 5},
			{Name: "series", Definition: "The sum of the terms of an infinite sequence.", Salience: 3},
			{Name: "convergence", Definition: "The property of approaching a finite value.", Salience: 2},
		},
	}
}

func TestCreateQuiz_Basic(t *testing.T) {
	e := NewEngine(DefaultConfig())

	q, err := e.CreateQuiz(testGuide(), Medium, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ID == "" {
		t.Error("expected a quiz id")
	}
	if q.Subject != "calculus" {
		t.Errorf("expected subject calculus, got %q", q.Subject)
	}
	if len(q.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(q.Questions))
	}
	if q.Difficulty != Medium {
		t.Errorf("expected medium difficulty, got %q", q.Difficulty)
	}
	if q.PassingScore != 70 {
		t.Errorf("expected passing score 70, got %d", q.PassingScore)
	}

	// Default round-robin: multiple_choice, true_false, short_answer.
	wantTypes := []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}
	for i, question := range q.Questions {
		if question.Type != wantTypes[i] {
			t.Errorf("question %d: expected type %q, got %q", i, wantTypes[i], question.Type)
		}
		if question.ID == "" {
			t.Errorf("question %d: missing id", i)
		}
		if question.Explanation == "" {
			t.Errorf("question %d: missing explanation", i)
		}
		if question.Difficulty != Medium {
			t.Errorf("question %d: expected medium, got %q", i, question.Difficulty)
		}
	}

	// Distinct concepts, never repeated to pad.
	seen := make(map[string]bool)
	for _, question := range q.Questions {
		if seen[question.SourceConcept] {
			t.Errorf("concept %q used twice", question.SourceConcept)
		}
		seen[question.SourceConcept] = true
	}
}

func TestCreateQuiz_InsufficientContent(t *testing.T) {
	e := NewEngine(DefaultConfig())
	g := &guide.StudyGuide{
		Subject: "calculus",
		Concepts: []extract.Concept{
			{Name: "derivative", Definition: "Rate of change.", Salience: 2},
			{Name: "integral", Definition: "Accumulation.", Salience: 1},
		},
	}

	_, err := e.CreateQuiz(g, Medium, 5, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var insufficient *ErrInsufficientContent
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected ErrInsufficientContent, got %T", err)
	}
	if insufficient.Have != 2 || insufficient.Want != 5 {
		t.Errorf("expected have=2 want=5, got have=%d want=%d", insufficient.Have, insufficient.Want)
	}
}

func TestCreateQuiz_Deterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())

	first, err := e.CreateQuiz(testGuide(), Medium, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.CreateQuiz(testGuide(), Medium, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Questions {
		a, b := first.Questions[i], second.Questions[i]
		if a.SourceConcept != b.SourceConcept {
			t.Errorf("question %d: concepts differ: %q vs %q", i, a.SourceConcept, b.SourceConcept)
		}
		if a.Text != b.Text {
			t.Errorf("question %d: text differs", i)
		}
		if a.CorrectAnswer != b.CorrectAnswer {
			t.Errorf("question %d: correct answer differs", i)
		}
		if len(a.Options) != len(b.Options) {
			t.Fatalf("question %d: option counts differ", i)
		}
		for j := range a.Options {
			if a.Options[j] != b.Options[j] {
				t.Errorf("question %d option %d differs", i, j)
			}
		}
	}
}

func TestCreateQuiz_MultipleChoiceOptions(t *testing.T) {
	e := NewEngine(DefaultConfig())
	g := testGuide()

	q, err := e.CreateQuiz(g, Medium, len(g.Concepts), []QuestionType{MultipleChoice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, question := range q.Questions {
		concept := g.Concept(question.SourceConcept)
		if concept == nil {
			t.Fatalf("question references unknown concept %q", question.SourceConcept)
		}

		if question.CorrectAnswer != concept.Definition {
			t.Errorf("%s: correct answer is not the concept definition", concept.Name)
		}

		found := false
		for _, opt := range question.Options {
			if opt == question.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: options do not include the correct answer", concept.Name)
		}

		// 3 distractors + the correct answer.
		if len(question.Options) != 4 {
			t.Errorf("%s: expected 4 options, got %d", concept.Name, len(question.Options))
		}

		// With four non-adjacent concepts available, the related concept's
		// definition must be excluded from the distractor pool.
		for _, rel := range concept.Relationships {
			related := g.Concept(rel)
			for _, opt := range question.Options {
				if opt == related.Definition {
					t.Errorf("%s: distractor drawn from adjacent concept %q", concept.Name, rel)
				}
			}
		}
	}
}

func TestCreateFocusedQuiz_PriorityConcepts(t *testing.T) {
	e := NewEngine(DefaultConfig())
	g := testGuide()

	// Low-salience concepts would rarely win a weighted draw; the focused
	// path must still put them in at least half the slots.
	q, err := e.CreateFocusedQuiz(g, Medium, 4, nil, []string{"series", "convergence"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	picked := make(map[string]bool)
	for _, question := range q.Questions {
		picked[question.SourceConcept] = true
	}
	if !picked["series"] || !picked["convergence"] {
		t.Errorf("expected both priority concepts in quiz, got %v", picked)
	}
}

func TestCreateFocusedQuiz_UnknownPriorityIgnored(t *testing.T) {
	e := NewEngine(DefaultConfig())

	q, err := e.CreateFocusedQuiz(testGuide(), Medium, 3, nil, []string{"not-a-concept"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(q.Questions))
	}
}

func TestTimeLimit(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// 2 minutes per question with a 10-minute floor.
	if got := e.timeLimit(3); got != 10 {
		t.Errorf("timeLimit(3) = %d, want 10", got)
	}
	if got := e.timeLimit(10); got != 20 {
		t.Errorf("timeLimit(10) = %d, want 20", got)
	}
}

func TestDifficultySteps(t *testing.T) {
	if Easy.StepUp() != Medium || Medium.StepUp() != Hard || Hard.StepUp() != Hard {
		t.Error("StepUp must walk easy→medium→hard, clamped at hard")
	}
	if Hard.StepDown() != Medium || Medium.StepDown() != Easy || Easy.StepDown() != Easy {
		t.Error("StepDown must walk hard→medium→easy, clamped at easy")
	}
}

func TestParseDifficulty(t *testing.T) {
	if _, err := ParseDifficulty("medium"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}
