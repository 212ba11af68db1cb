package gen

import (
	"context"
	"fmt"
	"strings"
)

// TemplateStrategy produces prose from fixed templates. It is fully
// deterministic and never returns an error, which makes it the fallback
// when no LLM backend is configured or reachable.
type TemplateStrategy struct{}

// NewTemplateStrategy creates a template strategy.
func NewTemplateStrategy() *TemplateStrategy {
	return &TemplateStrategy{}
}

func (s *TemplateStrategy) Summarize(_ context.Context, in SummarizeInput) (string, error) {
	subject := in.Subject
	if subject == "" {
		subject = "this material"
	}

	if len(in.Concepts) == 0 {
		return fmt.Sprintf("This guide covers %s.", subject), nil
	}

	return fmt.Sprintf(
		"This guide covers %s. Key topics include %s.",
		subject, joinConcepts(in.Concepts),
	), nil
}

func (s *TemplateStrategy) DefineConcept(_ context.Context, in DefineInput) (string, error) {
	if in.Context != "" {
		return in.Context, nil
	}
	subject := in.Subject
	if subject == "" {
		subject = "the source material"
	}
	return fmt.Sprintf("%s is a key concept in %s.", in.Concept, subject), nil
}

// joinConcepts renders a concept list as prose: "a", "a and b",
// "a, b, and c".
func joinConcepts(concepts []string) string {
	switch len(concepts) {
	case 1:
		return concepts[0]
	case 2:
		return concepts[0] + " and " + concepts[1]
	default:
		return strings.Join(concepts[:len(concepts)-1], ", ") + ", and " + concepts[len(concepts)-1]
	}
}
