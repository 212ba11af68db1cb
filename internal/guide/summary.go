package guide

import (
	"sort"
	"strings"

	"github.com/akarsh/studyforge/internal/extract"
)

// summarizeChapter builds a length-bounded extractive summary: the
// highest-scoring sentences, emitted in their original order.
func (a *Assembler) summarizeChapter(text string, concepts []extract.Concept) string {
	return a.extractiveSummary(text, concepts)
}

func (a *Assembler) extractiveSummary(text string, concepts []extract.Concept) string {
	sentences := extract.SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	limit := a.cfg.SummarySentences
	if limit < 1 {
		limit = 1
	}
	if len(sentences) <= limit {
		return strings.Join(sentences, " ")
	}

	scores := a.extractor.ScoreSentences(sentences, concepts)

	// Rank sentence indices by score, ties by position, then re-sort the
	// winners into document order.
	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if scores[idx[i]] != scores[idx[j]] {
			return scores[idx[i]] > scores[idx[j]]
		}
		return idx[i] < idx[j]
	})

	top := idx[:limit]
	sort.Ints(top)

	picked := make([]string, len(top))
	for i, s := range top {
		picked[i] = sentences[s]
	}
	return strings.Join(picked, " ")
}
