// Package progress accumulates quiz results per subject, derives
// performance profiles, and drives the adaptive difficulty policy.
package progress

import "github.com/akarsh/studyforge/internal/quiz"

// Config holds progress tracking parameters. All thresholds are tunable
// defaults.
type Config struct {
	// WindowSize is the bounded rolling window of results per subject.
	WindowSize int

	// WeakAccuracyThreshold flags a concept as weak when its accuracy
	// across the window falls below this fraction.
	WeakAccuracyThreshold float64

	// MinObservations is how many times a concept must have been asked
	// before it can be flagged weak. Guards against one unlucky answer.
	MinObservations int

	// StepUpAccuracy and StepDownAccuracy are percentage bounds for the
	// hysteresis difficulty controller.
	StepUpAccuracy   float64
	StepDownAccuracy float64

	// ConsecutiveNeeded is how many consecutive qualifying results trigger
	// a difficulty step.
	ConsecutiveNeeded int

	// StartDifficulty is the difficulty before any history exists.
	StartDifficulty quiz.Difficulty

	// AdvancedAccuracy and IntermediateAccuracy are the rolling-average
	// percentage cuts for the reported student level.
	AdvancedAccuracy     float64
	IntermediateAccuracy float64
}

// DefaultConfig returns tracking parameters tuned for steady adaptation.
func DefaultConfig() Config {
	return Config{
		WindowSize:            10,
		WeakAccuracyThreshold: 0.60,
		MinObservations:       2,
		StepUpAccuracy:        90,
		StepDownAccuracy:      50,
		ConsecutiveNeeded:     2,
		StartDifficulty:       quiz.Medium,
		AdvancedAccuracy:      85,
		IntermediateAccuracy:  70,
	}
}
