// Package extract turns unstructured study text into scored concepts with
// a co-occurrence relationship graph. Extraction is fully deterministic:
// identical input always produces identical concepts, ordering, and scores.
package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Extractor performs concept extraction. Construct one per configuration;
// it is safe for concurrent use since all state lives in the immutable
// Config.
type Extractor struct {
	cfg Config
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	if cfg.Stopwords == nil {
		cfg.Stopwords = DefaultStopwords()
	}
	return &Extractor{cfg: cfg}
}

// candidate is a term or phrase under consideration during ranking.
type candidate struct {
	name     string
	tf       int              // total occurrences
	chunks   map[int]struct{} // chunk indices the candidate appears in
	first    int              // global position of first occurrence
	salience float64
}

// Extract analyzes text and returns up to maxConcepts concepts ranked by
// salience. The subject labels placeholder concepts when the text yields
// too few viable candidates (the "never hand back nothing" policy).
//
// Fails with *ErrInsufficientText only when the text falls below the
// configured minimum token count; every other degenerate input degrades
// to placeholders.
func (e *Extractor) Extract(text, subject string, maxConcepts int) ([]Concept, error) {
	if maxConcepts < 1 {
		return nil, fmt.Errorf("maxConcepts must be >= 1, got %d", maxConcepts)
	}

	tokens := Tokenize(text)
	if len(tokens) < e.cfg.MinTokens {
		return nil, &ErrInsufficientText{Tokens: len(tokens), Min: e.cfg.MinTokens}
	}

	chunks := e.chunkText(text)
	candidates := e.collectCandidates(chunks)
	e.scoreCandidates(candidates, len(chunks))

	selected := e.selectTop(candidates, maxConcepts)
	if len(selected) < e.cfg.MinViableConcepts {
		return e.placeholders(subject), nil
	}

	concepts := e.buildConcepts(selected, text, len(chunks))
	linkCooccurring(concepts, selected)
	return concepts, nil
}

// collectCandidates tokenizes each chunk and gathers unigram and phrase
// candidates with their frequencies, chunk memberships, and first-seen
// positions.
func (e *Extractor) collectCandidates(chunks []string) map[string]*candidate {
	candidates := make(map[string]*candidate)
	pos := 0

	observe := func(name string, chunkIdx int) {
		c, ok := candidates[name]
		if !ok {
			c = &candidate{name: name, chunks: make(map[int]struct{}), first: pos}
			candidates[name] = c
		}
		c.tf++
		c.chunks[chunkIdx] = struct{}{}
	}

	for i, chunk := range chunks {
		toks := Tokenize(chunk)
		for j, tok := range toks {
			pos++
			if e.isStopword(tok) || len(tok) < 2 {
				continue
			}
			observe(tok, i)

			// Bigram of adjacent non-stop-word tokens.
			if e.cfg.MaxPhraseWords >= 2 && j+1 < len(toks) {
				next := toks[j+1]
				if !e.isStopword(next) && len(next) >= 2 {
					observe(tok+" "+next, i)
				}
			}
		}
	}
	return candidates
}

// scoreCandidates computes salience: term frequency scaled by inverse
// chunk frequency. A term concentrated in few chunks scores higher than
// one spread across all of them.
func (e *Extractor) scoreCandidates(candidates map[string]*candidate, numChunks int) {
	for _, c := range candidates {
		cf := len(c.chunks)
		icf := math.Log(float64(1+numChunks)/float64(1+cf)) + 1
		c.salience = float64(c.tf) * icf
	}
}

// selectTop ranks candidates by salience descending, breaking ties by
// first occurrence, and returns up to max that pass the frequency floor.
func (e *Extractor) selectTop(candidates map[string]*candidate, max int) []*candidate {
	var pool []*candidate
	for _, c := range candidates {
		if c.tf >= e.cfg.MinFrequency {
			pool = append(pool, c)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].salience != pool[j].salience {
			return pool[i].salience > pool[j].salience
		}
		if pool[i].first != pool[j].first {
			return pool[i].first < pool[j].first
		}
		return pool[i].name < pool[j].name
	})

	if len(pool) > max {
		pool = pool[:max]
	}
	return pool
}

// buildConcepts assembles Concept values with deterministic definitions
// drawn from the source sentences.
func (e *Extractor) buildConcepts(selected []*candidate, text string, numChunks int) []Concept {
	sentences := SplitSentences(text)
	scores := e.sentenceScores(sentences, selected)

	concepts := make([]Concept, len(selected))
	for i, c := range selected {
		concepts[i] = Concept{
			Name:       c.name,
			Definition: e.defineFromSentences(c.name, sentences, scores),
			Importance: fmt.Sprintf("Mentioned %d times across %d of %d sections.", c.tf, len(c.chunks), numChunks),
			Salience:   c.salience,
		}
	}
	return concepts
}

// sentenceScores computes per-sentence scores as the sum of salience of
// selected candidates the sentence contains. Used for definition picking
// here and extractive summaries upstream.
func (e *Extractor) sentenceScores(sentences []string, selected []*candidate) []float64 {
	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		norm := normalizedSentence(s)
		for _, c := range selected {
			if strings.Contains(norm, " "+c.name+" ") {
				scores[i] += c.salience
			}
		}
	}
	return scores
}

// ScoreSentences ranks sentences by how much selected-concept salience
// they carry. Exposed for the guide assembler's extractive summaries.
func (e *Extractor) ScoreSentences(sentences []string, concepts []Concept) []float64 {
	scores := make([]float64, len(sentences))
	for i, s := range sentences {
		norm := normalizedSentence(s)
		for _, c := range concepts {
			if strings.Contains(norm, " "+c.Name+" ") {
				scores[i] += c.Salience
			}
		}
	}
	return scores
}

// maxDefinitionLen bounds definitions so a run-on source sentence doesn't
// become an unreadable flashcard back.
const maxDefinitionLen = 280

// defineFromSentences returns the highest-scoring sentence mentioning the
// concept (earliest wins ties), or a template line when none mentions it.
func (e *Extractor) defineFromSentences(name string, sentences []string, scores []float64) string {
	best := -1
	for i, s := range sentences {
		if !strings.Contains(normalizedSentence(s), " "+name+" ") {
			continue
		}
		if best == -1 || scores[i] > scores[best] {
			best = i
		}
	}
	if best == -1 {
		return fmt.Sprintf("A recurring term in the source material related to %s.", name)
	}

	def := sentences[best]
	if len(def) > maxDefinitionLen {
		def = def[:maxDefinitionLen-3] + "..."
	}
	return def
}

// linkCooccurring adds symmetric relationship edges between concepts that
// share at least one chunk. Edges reference only names in the returned
// set, so dangling edges cannot occur.
func linkCooccurring(concepts []Concept, selected []*candidate) {
	for i := range concepts {
		for j := i + 1; j < len(concepts); j++ {
			if chunksIntersect(selected[i].chunks, selected[j].chunks) {
				concepts[i].Relationships = append(concepts[i].Relationships, concepts[j].Name)
				concepts[j].Relationships = append(concepts[j].Relationships, concepts[i].Name)
			}
		}
	}
	for i := range concepts {
		sort.Strings(concepts[i].Relationships)
	}
}

func chunksIntersect(a, b map[int]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

// placeholders emits a small fixed set of generic concepts labeled with
// the subject. Deliberate policy: a degenerate document still produces a
// usable guide rather than an empty one.
func (e *Extractor) placeholders(subject string) []Concept {
	if subject == "" {
		subject = "this subject"
	}
	subject = strings.ToLower(subject)

	templates := []Concept{
		{
			Name:        subject + " fundamentals",
			Definition:  fmt.Sprintf("The foundational principles and definitions of %s.", subject),
			Importance:  "Placeholder concept: the source text was too sparse for analysis.",
			Placeholder: true,
		},
		{
			Name:        "key principles of " + subject,
			Definition:  fmt.Sprintf("The core theories and models that organize %s.", subject),
			Importance:  "Placeholder concept: the source text was too sparse for analysis.",
			Placeholder: true,
		},
		{
			Name:        "applications of " + subject,
			Definition:  fmt.Sprintf("Practical uses and problem-solving techniques in %s.", subject),
			Importance:  "Placeholder concept: the source text was too sparse for analysis.",
			Placeholder: true,
		},
	}

	n := e.cfg.PlaceholderCount
	if n < 1 || n > len(templates) {
		n = len(templates)
	}
	return templates[:n]
}

func (e *Extractor) isStopword(tok string) bool {
	_, ok := e.cfg.Stopwords[tok]
	return ok
}

// normalizedSentence returns a lowercase space-joined token form padded
// with spaces so phrase containment checks match whole words only.
func normalizedSentence(s string) string {
	return " " + strings.Join(Tokenize(s), " ") + " "
}
