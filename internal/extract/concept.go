package extract

// Concept is a single extracted idea with its computed salience and the
// names of related concepts from the same extraction pass.
type Concept struct {
	// Name is the normalized term or phrase. Unique within one extraction.
	Name string `json:"name"`

	// Definition is a deterministic definition: the highest-scoring
	// sentence from the source text that mentions the concept, or a
	// template line when no sentence qualifies.
	Definition string `json:"definition"`

	// Importance is optional human-readable context for why the concept
	// matters. Empty when nothing useful can be said.
	Importance string `json:"importance,omitempty"`

	// Salience is the non-negative importance score (term frequency scaled
	// by inverse chunk frequency).
	Salience float64 `json:"salience"`

	// Relationships holds names of co-occurring concepts, sorted. Edges
	// are symmetric: if B appears here, A appears in B's Relationships.
	// Only names of concepts returned by the same extraction appear.
	Relationships []string `json:"relationships,omitempty"`

	// Placeholder marks concepts emitted by the degenerate-input fallback.
	// Downstream enhancement can replace their template definitions.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Related reports whether other is a relationship of c.
func (c *Concept) Related(other string) bool {
	for _, r := range c.Relationships {
		if r == other {
			return true
		}
	}
	return false
}
