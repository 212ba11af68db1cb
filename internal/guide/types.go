// Package guide assembles extracted concepts and chapter text into a
// StudyGuide aggregate: summaries, flashcards, and practice questions.
// Guides are immutable once returned; editing means assembling a new one.
package guide

import (
	"fmt"
	"time"

	"github.com/akarsh/studyforge/internal/extract"
)

// Level is the academic level a guide targets.
type Level string

const (
	LevelHighSchool    Level = "high_school"
	LevelUndergraduate Level = "undergraduate"
	LevelGraduate      Level = "graduate"
	LevelProfessional  Level = "professional"
)

// ParseLevel parses a level string, case-sensitively.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelHighSchool, LevelUndergraduate, LevelGraduate, LevelProfessional:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q (want high_school, undergraduate, graduate, or professional)", s)
}

// ChapterSummary is an extractive summary of one chapter.
type ChapterSummary struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Flashcard pairs a concept name with its definition.
type Flashcard struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
}

// PracticeQuestion is a deterministic self-check question embedded in a
// guide. Quizzes proper are built by the quiz engine.
type PracticeQuestion struct {
	Text          string `json:"text"`
	Answer        string `json:"answer"`
	SourceConcept string `json:"source_concept"`
}

// StudyGuide is the assembled learning artifact. It is owned by the
// caller and never mutated after Assemble returns it.
type StudyGuide struct {
	Title             string             `json:"title"`
	Subject           string             `json:"subject"`
	Level             Level              `json:"level"`
	Summary           string             `json:"summary"`
	Concepts          []extract.Concept  `json:"concepts"`
	ChapterSummaries  []ChapterSummary   `json:"chapter_summaries,omitempty"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions,omitempty"`
	Flashcards        []Flashcard        `json:"flashcards,omitempty"`

	// Warnings records non-fatal degradations, such as an enhancement
	// backend falling back to extractive output.
	Warnings []string `json:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Concept returns the concept with the given name, or nil.
func (g *StudyGuide) Concept(name string) *extract.Concept {
	for i := range g.Concepts {
		if g.Concepts[i].Name == name {
			return &g.Concepts[i]
		}
	}
	return nil
}
