package guide

// Config holds guide assembly parameters. All values are tunable defaults.
type Config struct {
	// MaxConceptsPerChapter bounds extraction within each chapter.
	MaxConceptsPerChapter int

	// MaxConcepts bounds the merged concept list of the whole guide.
	MaxConcepts int

	// FlashcardCount is how many top concepts become flashcards.
	FlashcardCount int

	// PracticeQuestionCount is how many top concepts get a practice question.
	PracticeQuestionCount int

	// SummarySentences bounds each extractive chapter summary.
	SummarySentences int

	// ExcerptChars bounds the source excerpt handed to an enhancement
	// strategy for the overall summary.
	ExcerptChars int
}

// DefaultConfig returns assembly parameters tuned for study material.
func DefaultConfig() Config {
	return Config{
		MaxConceptsPerChapter: 10,
		MaxConcepts:           15,
		FlashcardCount:        10,
		PracticeQuestionCount: 5,
		SummarySentences:      3,
		ExcerptChars:          1200,
	}
}
