package guide

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akarsh/studyforge/internal/extract"
	"github.com/akarsh/studyforge/internal/gen"
)

// Chapter is a caller-supplied chapter boundary.
type Chapter struct {
	Title string
	Text  string
}

// AssembleInput carries everything needed to build a StudyGuide.
type AssembleInput struct {
	// Title is optional; a default is derived from the subject.
	Title   string
	Subject string
	Level   Level

	// Text is the full source text. Used as a single chapter when
	// Chapters is empty.
	Text string

	// Chapters are optional caller-supplied boundaries.
	Chapters []Chapter
}

// Assembler builds StudyGuides from source text. The enhancer is optional;
// when nil or unavailable every output degrades to deterministic
// extractive text.
type Assembler struct {
	extractor *extract.Extractor
	enhancer  gen.Strategy
	cfg       Config
}

// NewAssembler creates an Assembler. enhancer may be nil.
func NewAssembler(extractor *extract.Extractor, enhancer gen.Strategy, cfg Config) *Assembler {
	return &Assembler{extractor: extractor, enhancer: enhancer, cfg: cfg}
}

// Assemble builds a StudyGuide: per-chapter concept extraction, merge by
// concept name, extractive chapter summaries, an overall summary,
// flashcards, and practice questions.
//
// Chapters too short for analysis are skipped with a warning; Assemble
// fails only when no chapter yields concepts.
func (a *Assembler) Assemble(ctx context.Context, in AssembleInput) (*StudyGuide, error) {
	chapters := in.Chapters
	if len(chapters) == 0 {
		title := in.Title
		if title == "" {
			title = in.Subject
		}
		chapters = []Chapter{{Title: title, Text: in.Text}}
	}

	guide := &StudyGuide{
		Title:     in.Title,
		Subject:   in.Subject,
		Level:     in.Level,
		CreatedAt: time.Now().UTC(),
	}
	if guide.Title == "" {
		guide.Title = fmt.Sprintf("%s study guide", in.Subject)
	}

	// Extract per chapter, skipping chapters too short to analyze.
	var (
		perChapter [][]extract.Concept
		kept       []Chapter
		lastErr    error
	)
	for _, ch := range chapters {
		concepts, err := a.extractor.Extract(ch.Text, in.Subject, a.cfg.MaxConceptsPerChapter)
		if err != nil {
			var insufficient *extract.ErrInsufficientText
			if errors.As(err, &insufficient) {
				guide.Warnings = append(guide.Warnings,
					fmt.Sprintf("chapter %q skipped: %v", ch.Title, err))
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("extracting chapter %q: %w", ch.Title, err)
		}
		perChapter = append(perChapter, concepts)
		kept = append(kept, ch)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no chapter had enough text to analyze: %w", lastErr)
	}

	guide.Concepts = a.mergeConcepts(perChapter)

	for i, ch := range kept {
		guide.ChapterSummaries = append(guide.ChapterSummaries, ChapterSummary{
			Title: ch.Title,
			Text:  a.summarizeChapter(ch.Text, perChapter[i]),
		})
	}

	a.writeSummary(ctx, guide, kept)
	a.upgradePlaceholders(ctx, guide)

	guide.Flashcards = a.buildFlashcards(guide)
	guide.PracticeQuestions = a.buildPracticeQuestions(guide)

	return guide, nil
}

// mergeConcepts folds per-chapter extractions into one list keyed by
// concept name. Salience accumulates across chapters; relationships are
// unioned; the first-seen definition wins. After the merged list is
// trimmed, relationships referencing dropped names are pruned so no
// dangling edge survives.
func (a *Assembler) mergeConcepts(perChapter [][]extract.Concept) []extract.Concept {
	type entry struct {
		concept extract.Concept
		related map[string]struct{}
		order   int
	}

	byName := make(map[string]*entry)
	var names []string

	for _, concepts := range perChapter {
		for _, c := range concepts {
			e, ok := byName[c.Name]
			if !ok {
				e = &entry{concept: c, related: make(map[string]struct{}), order: len(names)}
				byName[c.Name] = e
				names = append(names, c.Name)
			} else {
				e.concept.Salience += c.Salience
			}
			for _, r := range c.Relationships {
				e.related[r] = struct{}{}
			}
		}
	}

	merged := make([]*entry, 0, len(names))
	for _, name := range names {
		merged = append(merged, byName[name])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].concept.Salience != merged[j].concept.Salience {
			return merged[i].concept.Salience > merged[j].concept.Salience
		}
		return merged[i].order < merged[j].order
	})

	if a.cfg.MaxConcepts > 0 && len(merged) > a.cfg.MaxConcepts {
		merged = merged[:a.cfg.MaxConcepts]
	}

	surviving := make(map[string]struct{}, len(merged))
	for _, e := range merged {
		surviving[e.concept.Name] = struct{}{}
	}

	out := make([]extract.Concept, len(merged))
	for i, e := range merged {
		c := e.concept
		c.Relationships = nil
		for r := range e.related {
			if _, ok := surviving[r]; ok && r != c.Name {
				c.Relationships = append(c.Relationships, r)
			}
		}
		sort.Strings(c.Relationships)
		out[i] = c
	}
	return out
}

// writeSummary sets the guide's overall summary: enhanced when a strategy
// is configured and responsive, extractive otherwise.
func (a *Assembler) writeSummary(ctx context.Context, g *StudyGuide, chapters []Chapter) {
	fullText := joinChapterText(chapters)
	extractive := a.extractiveSummary(fullText, g.Concepts)

	if a.enhancer == nil {
		g.Summary = extractive
		return
	}

	summary, err := a.enhancer.Summarize(ctx, gen.SummarizeInput{
		Subject:  g.Subject,
		Concepts: topConceptNames(g.Concepts, a.cfg.FlashcardCount),
		Excerpt:  truncate(fullText, a.cfg.ExcerptChars),
	})
	if err != nil {
		g.Warnings = append(g.Warnings,
			fmt.Sprintf("enhanced summary unavailable, using extractive summary: %v", err))
		g.Summary = extractive
		return
	}
	g.Summary = summary
}

// upgradePlaceholders asks the enhancer to define placeholder concepts,
// which carry only template definitions. Failures keep the template text.
func (a *Assembler) upgradePlaceholders(ctx context.Context, g *StudyGuide) {
	if a.enhancer == nil {
		return
	}
	for i := range g.Concepts {
		if !g.Concepts[i].Placeholder {
			continue
		}
		def, err := a.enhancer.DefineConcept(ctx, gen.DefineInput{
			Subject: g.Subject,
			Concept: g.Concepts[i].Name,
		})
		if err != nil {
			g.Warnings = append(g.Warnings,
				fmt.Sprintf("definition enhancement unavailable for %q: %v", g.Concepts[i].Name, err))
			return
		}
		g.Concepts[i].Definition = def
	}
}

func (a *Assembler) buildFlashcards(g *StudyGuide) []Flashcard {
	n := min(a.cfg.FlashcardCount, len(g.Concepts))
	cards := make([]Flashcard, 0, n)
	for _, c := range g.Concepts[:n] {
		cards = append(cards, Flashcard{
			Front: c.Name,
			Back:  c.Definition,
			Tags:  []string{g.Subject, string(g.Level)},
		})
	}
	return cards
}

func (a *Assembler) buildPracticeQuestions(g *StudyGuide) []PracticeQuestion {
	n := min(a.cfg.PracticeQuestionCount, len(g.Concepts))
	qs := make([]PracticeQuestion, 0, n)
	for _, c := range g.Concepts[:n] {
		qs = append(qs, PracticeQuestion{
			Text:          fmt.Sprintf("What is %s?", c.Name),
			Answer:        c.Definition,
			SourceConcept: c.Name,
		})
	}
	return qs
}

func topConceptNames(concepts []extract.Concept, n int) []string {
	n = min(n, len(concepts))
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = concepts[i].Name
	}
	return names
}

func joinChapterText(chapters []Chapter) string {
	parts := make([]string, len(chapters))
	for i, ch := range chapters {
		parts[i] = ch.Text
	}
	return strings.Join(parts, "\n\n")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
