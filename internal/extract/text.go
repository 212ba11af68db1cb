package extract

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens, stripping
// punctuation. Hyphens and apostrophes inside a word are kept so terms
// like "co-occurrence" survive as one token.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '-' || r == '\'') && b.Len() > 0:
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	// Trim trailing hyphens/apostrophes left by constructs like "re-".
	for i, t := range tokens {
		tokens[i] = strings.TrimRight(t, "-'")
	}
	return tokens
}

// SplitSentences splits text into sentences on terminal punctuation.
// Sentences are returned in original order with surrounding whitespace
// trimmed; empty segments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return sentences
}

// splitParagraphs splits text on blank lines.
func splitParagraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}
