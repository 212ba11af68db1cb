package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akarsh/studyforge/internal/extract"
	"github.com/akarsh/studyforge/internal/gen"
)

const calculusChapter = `Calculus is the mathematical study of continuous change.
The derivative measures the rate of change of a function at a point.
The derivative of a position function gives velocity, and the derivative of velocity gives acceleration.
The integral accumulates quantities over an interval, and the integral is the inverse of the derivative.
Calculus connects the derivative and the integral through the fundamental theorem.
Students use calculus, the derivative, and the integral to model physical systems.`

const linearAlgebraChapter = `Linear algebra studies vectors, matrices, and linear transformations.
A matrix represents a linear transformation between vector spaces.
The determinant of a matrix measures how the matrix scales volume.
Eigenvalues describe directions a matrix stretches without rotating.
Students multiply a matrix by a vector to apply the transformation.
Linear algebra and the matrix operations underpin computer graphics.`

func newTestAssembler(enhancer gen.Strategy) *Assembler {
	return NewAssembler(extract.New(extract.DefaultConfig()), enhancer, DefaultConfig())
}

func TestAssemble_SingleText(t *testing.T) {
	a := newTestAssembler(nil)

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelUndergraduate,
		Text:    calculusChapter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Concepts) == 0 {
		t.Fatal("expected concepts")
	}
	if g.Summary == "" {
		t.Error("expected a summary")
	}
	if len(g.ChapterSummaries) != 1 {
		t.Fatalf("expected 1 chapter summary, got %d", len(g.ChapterSummaries))
	}
	if g.Title == "" {
		t.Error("expected a derived title")
	}

	names := make(map[string]bool)
	for _, c := range g.Concepts {
		names[c.Name] = true
	}
	if !names["derivative"] {
		t.Errorf("expected 'derivative' among concepts, got %v", conceptNames(g))
	}

	// Every relationship edge must reference a concept in the guide.
	for _, c := range g.Concepts {
		for _, r := range c.Relationships {
			if !names[r] {
				t.Errorf("concept %q has dangling relationship %q", c.Name, r)
			}
		}
	}
}

func TestAssemble_FlashcardsAndPracticeQuestions(t *testing.T) {
	a := newTestAssembler(nil)

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelHighSchool,
		Text:    calculusChapter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Flashcards) == 0 {
		t.Fatal("expected flashcards")
	}
	for _, f := range g.Flashcards {
		if f.Front == "" || f.Back == "" {
			t.Errorf("flashcard missing front or back: %+v", f)
		}
		if len(f.Tags) != 2 || f.Tags[0] != "calculus" || f.Tags[1] != "high_school" {
			t.Errorf("unexpected tags: %v", f.Tags)
		}
	}

	if len(g.PracticeQuestions) == 0 {
		t.Fatal("expected practice questions")
	}
	for _, q := range g.PracticeQuestions {
		if !strings.HasPrefix(q.Text, "What is ") {
			t.Errorf("unexpected question text: %q", q.Text)
		}
		if g.Concept(q.SourceConcept) == nil {
			t.Errorf("question references unknown concept %q", q.SourceConcept)
		}
	}
}

func TestAssemble_MergesAcrossChapters(t *testing.T) {
	a := newTestAssembler(nil)

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "mathematics",
		Level:   LevelUndergraduate,
		Chapters: []Chapter{
			{Title: "Calculus", Text: calculusChapter},
			{Title: "Linear Algebra", Text: linearAlgebraChapter},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.ChapterSummaries) != 2 {
		t.Fatalf("expected 2 chapter summaries, got %d", len(g.ChapterSummaries))
	}

	seen := make(map[string]int)
	for _, c := range g.Concepts {
		seen[c.Name]++
	}
	for name, count := range seen {
		if count > 1 {
			t.Errorf("concept %q appears %d times after merge", name, count)
		}
	}
}

func TestAssemble_SkipsShortChapter(t *testing.T) {
	a := newTestAssembler(nil)

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelUndergraduate,
		Chapters: []Chapter{
			{Title: "Intro", Text: "Too short."},
			{Title: "Derivatives", Text: calculusChapter},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.ChapterSummaries) != 1 {
		t.Fatalf("expected 1 chapter summary, got %d", len(g.ChapterSummaries))
	}
	if len(g.Warnings) == 0 {
		t.Error("expected a warning for the skipped chapter")
	}
}

func TestAssemble_AllChaptersTooShort(t *testing.T) {
	a := newTestAssembler(nil)

	_, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelUndergraduate,
		Text:    "Nowhere near enough text.",
	})
	if err == nil {
		t.Fatal("expected error when no chapter is analyzable")
	}
	var insufficient *extract.ErrInsufficientText
	if !errors.As(err, &insufficient) {
		t.Errorf("expected ErrInsufficientText in chain, got %v", err)
	}
}

// fakeStrategy is a canned gen.Strategy for assembler tests.
type fakeStrategy struct {
	summary    string
	definition string
	err        error
}

func (f *fakeStrategy) Summarize(context.Context, gen.SummarizeInput) (string, error) {
	return f.summary, f.err
}

func (f *fakeStrategy) DefineConcept(context.Context, gen.DefineInput) (string, error) {
	return f.definition, f.err
}

func TestAssemble_EnhancedSummary(t *testing.T) {
	a := newTestAssembler(&fakeStrategy{summary: "An enhanced overview of calculus."})

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelUndergraduate,
		Text:    calculusChapter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Summary != "An enhanced overview of calculus." {
		t.Errorf("expected enhanced summary, got %q", g.Summary)
	}
	if len(g.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", g.Warnings)
	}
}

func TestAssemble_EnhancerFailureFallsBack(t *testing.T) {
	a := newTestAssembler(&fakeStrategy{err: &gen.ErrUnavailable{Err: errors.New("down")}})

	g, err := a.Assemble(context.Background(), AssembleInput{
		Subject: "calculus",
		Level:   LevelUndergraduate,
		Text:    calculusChapter,
	})
	if err != nil {
		t.Fatalf("enhancer failure must not fail assembly: %v", err)
	}
	if g.Summary == "" {
		t.Error("expected extractive fallback summary")
	}
	if len(g.Warnings) == 0 {
		t.Error("expected a warning about the fallback")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"high_school", LevelHighSchool, false},
		{"undergraduate", LevelUndergraduate, false},
		{"graduate", LevelGraduate, false},
		{"professional", LevelProfessional, false},
		{"PhD", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func conceptNames(g *StudyGuide) []string {
	names := make([]string, len(g.Concepts))
	for i, c := range g.Concepts {
		names[i] = c.Name
	}
	return names
}
