package extract

// Config holds all concept extraction parameters. Every threshold here is
// a tunable default, not a fixed constant. Construct one per Extractor;
// there is no shared package-level state.
type Config struct {
	// MinTokens is the minimum token count (before stop-word removal)
	// required for extraction. Shorter input fails with ErrInsufficientText.
	MinTokens int

	// MinFrequency is the absolute-frequency floor: candidates appearing
	// fewer times are never selected.
	MinFrequency int

	// MinViableConcepts is the threshold below which extraction falls back
	// to generic placeholder concepts instead of returning a near-empty set.
	MinViableConcepts int

	// PlaceholderCount is how many placeholder concepts the fallback emits.
	PlaceholderCount int

	// MaxPhraseWords bounds candidate phrase length. 1 = unigrams only,
	// 2 adds bigrams of adjacent non-stop-word tokens.
	MaxPhraseWords int

	// SentenceWindow is the number of sentences per chunk when the input
	// has no paragraph boundaries to segment on.
	SentenceWindow int

	// Stopwords is the stop-word set used for normalization and for
	// keyword filtering. Defaults to a fixed English list.
	Stopwords map[string]struct{}
}

// DefaultConfig returns extraction parameters tuned for study material.
func DefaultConfig() Config {
	return Config{
		MinTokens:         20,
		MinFrequency:      2,
		MinViableConcepts: 3,
		PlaceholderCount:  3,
		MaxPhraseWords:    2,
		SentenceWindow:    3,
		Stopwords:         DefaultStopwords(),
	}
}

// defaultStopwordList is a fixed English stop-word list. It intentionally
// skips domain-ish words like "theory" or "principle" that can be real
// concepts in study text.
var defaultStopwordList = []string{
	"a", "about", "above", "after", "again", "all", "also", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "could", "did", "do",
	"does", "doing", "down", "during", "each", "few", "for", "from",
	"further", "had", "has", "have", "having", "he", "her", "here", "hers",
	"him", "his", "how", "i", "if", "in", "into", "is", "it", "its",
	"itself", "just", "more", "most", "my", "no", "nor", "not", "now", "of",
	"off", "on", "once", "only", "or", "other", "our", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "them", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "would", "you", "your",
}

// DefaultStopwords returns a fresh copy of the default stop-word set.
// Each caller gets its own map so configs never share mutable state.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{}, len(defaultStopwordList))
	for _, w := range defaultStopwordList {
		set[w] = struct{}{}
	}
	return set
}
