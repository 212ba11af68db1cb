package quiz

import "github.com/akarsh/studyforge/internal/extract"

// Config holds quiz engine parameters. Overlap thresholds and the
// distractor rule are tunable defaults rather than fixed constants.
type Config struct {
	// Seed drives concept sampling and distractor selection. A fixed seed
	// makes quiz creation fully deterministic for a given guide.
	Seed int64

	// DistractorCount is the number of wrong options per multiple-choice
	// question, content permitting.
	DistractorCount int

	// ShortAnswerOverlap is the keyword-overlap fraction a short answer
	// must reach to count as correct.
	ShortAnswerOverlap float64

	// EssayOverlap is the keyword-overlap fraction for essay answers.
	// Lower than short answer since essays paraphrase more.
	EssayOverlap float64

	// DefaultTypes is the round-robin used when the caller passes no
	// question types.
	DefaultTypes []QuestionType

	// MinutesPerQuestion and MinTimeLimitMinutes size the quiz time limit.
	MinutesPerQuestion  int
	MinTimeLimitMinutes int

	// PassingScore is the default passing percentage.
	PassingScore int

	// Stopwords is the filter applied before keyword-overlap grading.
	Stopwords map[string]struct{}
}

// DefaultConfig returns engine parameters tuned for study quizzes.
func DefaultConfig() Config {
	return Config{
		Seed:                1,
		DistractorCount:     3,
		ShortAnswerOverlap:  0.5,
		EssayOverlap:        0.35,
		DefaultTypes:        []QuestionType{MultipleChoice, TrueFalse, ShortAnswer},
		MinutesPerQuestion:  2,
		MinTimeLimitMinutes: 10,
		PassingScore:        70,
		Stopwords:           extract.DefaultStopwords(),
	}
}
