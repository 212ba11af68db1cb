package extract

import "fmt"

// ErrInsufficientText indicates the input is too short for analysis.
// This is fatal to the call; callers should not retry with the same text.
type ErrInsufficientText struct {
	Tokens int
	Min    int
}

func (e *ErrInsufficientText) Error() string {
	return fmt.Sprintf("insufficient text: %d tokens, need at least %d", e.Tokens, e.Min)
}
