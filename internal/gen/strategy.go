// Package gen produces prose for study guides. Two strategies exist: a
// deterministic template strategy that never fails, and an LLM-backed
// strategy that produces richer text but can be unavailable. Callers are
// expected to fall back from the latter to the former.
package gen

import (
	"context"
	"fmt"
)

// SummarizeInput carries everything a strategy needs to write an
// overall summary for a body of material.
type SummarizeInput struct {
	Subject  string
	Concepts []string
	// Excerpt is a representative slice of the source text, already
	// trimmed by the caller.
	Excerpt string
}

// DefineInput carries everything a strategy needs to define one concept.
type DefineInput struct {
	Subject string
	Concept string
	// Context holds sentences from the source that mention the concept.
	Context string
}

// Strategy produces study-guide prose.
type Strategy interface {
	Summarize(ctx context.Context, in SummarizeInput) (string, error)
	DefineConcept(ctx context.Context, in DefineInput) (string, error)
}

// ErrUnavailable indicates the generation backend could not be reached
// or refused the request.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("generation backend unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates the generation backend did not respond within the
// configured deadline.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("generation timed out: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error {
	return e.Err
}
