package gen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akarsh/studyforge/internal/llm"
)

const (
	summarizeSystem = "You are a study assistant. Write clear, factual prose for learners. " +
		"Stay strictly within the provided material. Respond with JSON matching the schema."
	defineSystem = "You are a study assistant. Define concepts plainly in one or two " +
		"sentences, grounded in the provided context. Respond with JSON matching the schema."

	defaultMaxTokens = 1024
)

var summarySchema = &llm.Schema{
	Name:        "guide-summary",
	Description: "Overall summary for a study guide",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two to four sentences summarizing the material",
			},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}

var definitionSchema = &llm.Schema{
	Name:        "concept-definition",
	Description: "Definition of a single concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition": map[string]any{
				"type":        "string",
				"description": "One or two sentence definition",
			},
		},
		"required":             []any{"definition"},
		"additionalProperties": false,
	},
}

// LLMStrategy produces prose through an LLM provider. Every call is
// bounded by the configured timeout so callers can fall back to templates
// on a slow or dead backend.
type LLMStrategy struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewLLMStrategy creates an LLM-backed strategy. A zero timeout disables
// the per-call deadline.
func NewLLMStrategy(provider llm.Provider, timeout time.Duration) *LLMStrategy {
	return &LLMStrategy{provider: provider, timeout: timeout}
}

func (s *LLMStrategy) Summarize(ctx context.Context, in SummarizeInput) (string, error) {
	prompt := buildSummarizePrompt(in)

	ctx = llm.WithPurpose(ctx, "summary")
	content, err := s.complete(ctx, summarizeSystem, prompt, summarySchema)
	if err != nil {
		return "", err
	}

	return extractField(content, "summary")
}

func (s *LLMStrategy) DefineConcept(ctx context.Context, in DefineInput) (string, error) {
	prompt := buildDefinePrompt(in)

	ctx = llm.WithPurpose(ctx, "definition")
	content, err := s.complete(ctx, defineSystem, prompt, definitionSchema)
	if err != nil {
		return "", err
	}

	return extractField(content, "definition")
}

func (s *LLMStrategy) complete(ctx context.Context, system, prompt string, schema *llm.Schema) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.Complete(ctx, llm.Request{
		System:    system,
		Prompt:    prompt,
		Schema:    schema,
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		return nil, mapLLMError(err)
	}

	return resp.Content, nil
}

func buildSummarizePrompt(in SummarizeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	if len(in.Concepts) > 0 {
		fmt.Fprintf(&b, "Key concepts: %s\n", strings.Join(in.Concepts, ", "))
	}
	if in.Excerpt != "" {
		fmt.Fprintf(&b, "\nMaterial:\n%s\n", in.Excerpt)
	}
	b.WriteString("\nWrite a two to four sentence summary of this material.")
	return b.String()
}

func buildDefinePrompt(in DefineInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Concept: %s\n", in.Concept)
	if in.Context != "" {
		fmt.Fprintf(&b, "\nContext:\n%s\n", in.Context)
	}
	b.WriteString("\nDefine this concept in one or two sentences.")
	return b.String()
}

// extractField pulls a single string field out of a JSON object response.
func extractField(content []byte, field string) (string, error) {
	var parsed map[string]string
	if err := json.Unmarshal(content, &parsed); err != nil {
		return "", &ErrUnavailable{Err: fmt.Errorf("parse response: %w", err)}
	}
	text := strings.TrimSpace(parsed[field])
	if text == "" {
		return "", &ErrUnavailable{Err: fmt.Errorf("response missing %q", field)}
	}
	return text, nil
}

// mapLLMError translates provider errors into this package's error types.
func mapLLMError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	return &ErrUnavailable{Err: err}
}
