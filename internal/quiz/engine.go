package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/akarsh/studyforge/internal/extract"
	"github.com/akarsh/studyforge/internal/guide"
)

// Engine creates and evaluates quizzes. Construct one per configuration;
// each creation call builds its own seeded RNG, so Engines are safe for
// concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if cfg.Stopwords == nil {
		cfg.Stopwords = extract.DefaultStopwords()
	}
	if len(cfg.DefaultTypes) == 0 {
		cfg.DefaultTypes = []QuestionType{MultipleChoice, TrueFalse, ShortAnswer}
	}
	return &Engine{cfg: cfg}
}

// CreateQuiz builds a quiz of numQuestions distinct concepts from the
// guide, sampled without replacement weighted by salience. types defaults
// to the configured round-robin when empty.
func (e *Engine) CreateQuiz(g *guide.StudyGuide, difficulty Difficulty, numQuestions int, types []QuestionType) (*Quiz, error) {
	return e.CreateFocusedQuiz(g, difficulty, numQuestions, types, nil)
}

// CreateFocusedQuiz is CreateQuiz with priority concepts: when the guide
// contains enough of them, priority concepts fill at least half of the
// question slots (rounded up). The adaptive path uses this to target weak
// concepts.
func (e *Engine) CreateFocusedQuiz(g *guide.StudyGuide, difficulty Difficulty, numQuestions int, types []QuestionType, priority []string) (*Quiz, error) {
	if numQuestions < 1 {
		return nil, fmt.Errorf("numQuestions must be >= 1, got %d", numQuestions)
	}
	if len(g.Concepts) < numQuestions {
		return nil, &ErrInsufficientContent{Have: len(g.Concepts), Want: numQuestions}
	}
	if len(types) == 0 {
		types = e.cfg.DefaultTypes
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	selected := e.selectConcepts(rng, g.Concepts, numQuestions, priority)

	questions := make([]Question, len(selected))
	for i, c := range selected {
		questions[i] = e.buildQuestion(rng, g, c, types[i%len(types)], difficulty)
	}

	return &Quiz{
		ID:           uuid.NewString(),
		Title:        fmt.Sprintf("%s quiz", g.Subject),
		Subject:      g.Subject,
		Questions:    questions,
		Difficulty:   difficulty,
		TimeLimit:    e.timeLimit(numQuestions),
		PassingScore: e.cfg.PassingScore,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// selectConcepts samples numQuestions distinct concepts. Priority names
// present in the guide claim up to ceil(n/2) slots first; remaining slots
// come from salience-weighted sampling over the rest.
func (e *Engine) selectConcepts(rng *rand.Rand, concepts []extract.Concept, numQuestions int, priority []string) []extract.Concept {
	prioritySet := make(map[string]struct{}, len(priority))
	for _, name := range priority {
		prioritySet[name] = struct{}{}
	}

	var priorityPool, generalPool []extract.Concept
	for _, c := range concepts {
		if _, ok := prioritySet[c.Name]; ok {
			priorityPool = append(priorityPool, c)
		} else {
			generalPool = append(generalPool, c)
		}
	}

	reserved := (numQuestions + 1) / 2
	if reserved > len(priorityPool) {
		reserved = len(priorityPool)
	}
	if reserved > numQuestions {
		reserved = numQuestions
	}

	selected := weightedSample(rng, priorityPool, reserved)

	// Unclaimed priority concepts go back in the general pool.
	chosen := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		chosen[c.Name] = struct{}{}
	}
	for _, c := range priorityPool {
		if _, ok := chosen[c.Name]; !ok {
			generalPool = append(generalPool, c)
		}
	}

	selected = append(selected, weightedSample(rng, generalPool, numQuestions-len(selected))...)
	return selected
}

// weightedSample draws n concepts without replacement, weighting by
// salience. Zero-salience concepts (placeholders) are drawn only after
// weighted candidates are exhausted.
func weightedSample(rng *rand.Rand, pool []extract.Concept, n int) []extract.Concept {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	remaining := make([]extract.Concept, len(pool))
	copy(remaining, pool)

	const floorWeight = 1e-9

	out := make([]extract.Concept, 0, n)
	for len(out) < n {
		total := 0.0
		for _, c := range remaining {
			total += weightOf(c, floorWeight)
		}

		r := rng.Float64() * total
		idx := len(remaining) - 1
		for i, c := range remaining {
			r -= weightOf(c, floorWeight)
			if r <= 0 {
				idx = i
				break
			}
		}

		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

func weightOf(c extract.Concept, floor float64) float64 {
	if c.Salience > floor {
		return c.Salience
	}
	return floor
}

func (e *Engine) timeLimit(numQuestions int) int {
	limit := numQuestions * e.cfg.MinutesPerQuestion
	if limit < e.cfg.MinTimeLimitMinutes {
		limit = e.cfg.MinTimeLimitMinutes
	}
	return limit
}

// buildQuestion renders one question for a concept.
func (e *Engine) buildQuestion(rng *rand.Rand, g *guide.StudyGuide, c extract.Concept, qtype QuestionType, difficulty Difficulty) Question {
	q := Question{
		ID:            uuid.NewString(),
		Type:          qtype,
		Difficulty:    difficulty,
		SourceConcept: c.Name,
	}

	switch qtype {
	case MultipleChoice:
		q.Text = fmt.Sprintf("Which of the following best describes %s?", c.Name)
		q.CorrectAnswer = c.Definition
		q.Options = e.buildOptions(rng, g, c)
		q.Explanation = fmt.Sprintf("%s: %s", c.Name, c.Definition)

	case TrueFalse:
		statement, truth := e.buildStatement(rng, g, c)
		q.Text = fmt.Sprintf("True or false: %s", statement)
		q.Options = []string{"true", "false"}
		if truth {
			q.CorrectAnswer = "true"
			q.Explanation = fmt.Sprintf("The statement matches the definition of %s.", c.Name)
		} else {
			q.CorrectAnswer = "false"
			q.Explanation = fmt.Sprintf("The statement describes a different concept, not %s.", c.Name)
		}

	case Essay:
		q.Text = fmt.Sprintf("In your own words, explain %s and why it matters.", c.Name)
		q.CorrectAnswer = c.Definition
		q.Explanation = fmt.Sprintf("A strong answer covers: %s", c.Definition)

	default: // ShortAnswer
		q.Type = ShortAnswer
		q.Text = fmt.Sprintf("What is %s?", c.Name)
		q.CorrectAnswer = c.Definition
		q.Explanation = fmt.Sprintf("%s: %s", c.Name, c.Definition)
	}

	return q
}

// buildOptions assembles shuffled multiple-choice options: the concept's
// definition plus distractors drawn from other concepts. Relationship-
// adjacent concepts are excluded from the distractor pool when enough
// non-adjacent candidates exist, since near neighbors make options
// ambiguous rather than educational.
func (e *Engine) buildOptions(rng *rand.Rand, g *guide.StudyGuide, c extract.Concept) []string {
	var nonAdjacent, adjacent []string
	for _, other := range g.Concepts {
		if other.Name == c.Name || other.Definition == c.Definition {
			continue
		}
		if c.Related(other.Name) {
			adjacent = append(adjacent, other.Definition)
		} else {
			nonAdjacent = append(nonAdjacent, other.Definition)
		}
	}

	pool := nonAdjacent
	if len(pool) < e.cfg.DistractorCount {
		pool = append(pool, adjacent...)
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > e.cfg.DistractorCount {
		pool = pool[:e.cfg.DistractorCount]
	}

	options := append(pool, c.Definition)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// buildStatement pairs a concept with its own definition (true) or another
// concept's definition (false), chosen by the seeded RNG.
func (e *Engine) buildStatement(rng *rand.Rand, g *guide.StudyGuide, c extract.Concept) (string, bool) {
	var others []extract.Concept
	for _, other := range g.Concepts {
		if other.Name != c.Name && other.Definition != c.Definition {
			others = append(others, other)
		}
	}

	if len(others) == 0 || rng.Intn(2) == 0 {
		return fmt.Sprintf("%s is described as follows. %s", c.Name, c.Definition), true
	}

	wrong := others[rng.Intn(len(others))]
	return fmt.Sprintf("%s is described as follows. %s", c.Name, wrong.Definition), false
}
