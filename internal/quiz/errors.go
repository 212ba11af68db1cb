package quiz

import "fmt"

// ErrInsufficientContent indicates the guide has fewer concepts than the
// requested question count. The engine never repeats concepts to pad a
// quiz; callers must lower the count or enrich the guide.
type ErrInsufficientContent struct {
	Have int
	Want int
}

func (e *ErrInsufficientContent) Error() string {
	return fmt.Sprintf("guide has %d concepts, need %d for the requested quiz", e.Have, e.Want)
}

// ErrInvalidAnswerFormat indicates an answers document that is not a JSON
// object of question id to answer. Unknown or missing question ids are not
// errors; they score as incorrect.
type ErrInvalidAnswerFormat struct {
	Err error
}

func (e *ErrInvalidAnswerFormat) Error() string {
	return fmt.Sprintf("invalid answers document: %v", e.Err)
}

func (e *ErrInvalidAnswerFormat) Unwrap() error {
	return e.Err
}
