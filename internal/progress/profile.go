package progress

import (
	"sort"

	"github.com/akarsh/studyforge/internal/quiz"
)

// StudentLevel is the coarse proficiency bucket derived from rolling
// average accuracy. Reported for display; it never gates anything.
type StudentLevel string

const (
	LevelBeginner     StudentLevel = "beginner"
	LevelIntermediate StudentLevel = "intermediate"
	LevelAdvanced     StudentLevel = "advanced"
)

// PerformanceProfile is derived state: recomputed in full from the raw
// result window on every record, never patched incrementally.
type PerformanceProfile struct {
	Subject string `json:"subject"`

	// AccuracyTrend holds the window's percentages, oldest first.
	AccuracyTrend []float64 `json:"accuracy_trend"`

	AverageAccuracy float64 `json:"average_accuracy"`

	// WeakConcepts are concepts whose accuracy across the window is below
	// the threshold with enough observations to count. Sorted.
	WeakConcepts []string `json:"weak_concepts,omitempty"`

	// NextDifficulty is the hysteresis controller's output.
	NextDifficulty quiz.Difficulty `json:"next_difficulty"`

	Level StudentLevel `json:"level"`

	// TotalQuizzes counts results currently in the window.
	TotalQuizzes int `json:"total_quizzes"`
}

// computeProfile derives a fresh profile from the raw window.
func computeProfile(subject string, window []quiz.Result, cfg Config) *PerformanceProfile {
	p := &PerformanceProfile{
		Subject:        subject,
		NextDifficulty: cfg.StartDifficulty,
		Level:          LevelBeginner,
		TotalQuizzes:   len(window),
	}

	if len(window) == 0 {
		return p
	}

	var sum float64
	for _, r := range window {
		p.AccuracyTrend = append(p.AccuracyTrend, r.Percentage)
		sum += r.Percentage
	}
	p.AverageAccuracy = sum / float64(len(window))

	switch {
	case p.AverageAccuracy >= cfg.AdvancedAccuracy:
		p.Level = LevelAdvanced
	case p.AverageAccuracy >= cfg.IntermediateAccuracy:
		p.Level = LevelIntermediate
	}

	p.WeakConcepts = weakConcepts(window, cfg)
	p.NextDifficulty = replayDifficulty(p.AccuracyTrend, cfg)
	return p
}

// weakConcepts aggregates per-concept stats across the window and flags
// concepts with enough observations and low accuracy.
func weakConcepts(window []quiz.Result, cfg Config) []string {
	totals := make(map[string]quiz.ConceptStat)
	for _, r := range window {
		for name, stat := range r.ConceptStats {
			agg := totals[name]
			agg.Correct += stat.Correct
			agg.Total += stat.Total
			totals[name] = agg
		}
	}

	var weak []string
	for name, stat := range totals {
		if stat.Total < cfg.MinObservations {
			continue
		}
		if float64(stat.Correct)/float64(stat.Total) < cfg.WeakAccuracyThreshold {
			weak = append(weak, name)
		}
	}
	sort.Strings(weak)
	return weak
}

// replayDifficulty runs the hysteresis controller over the whole trend
// from the starting difficulty. Two consecutive results at or above the
// step-up bound raise difficulty one level; two consecutive below the
// step-down bound lower it; anything else holds. Clamped at the ends.
func replayDifficulty(trend []float64, cfg Config) quiz.Difficulty {
	d := cfg.StartDifficulty
	need := cfg.ConsecutiveNeeded
	if need < 1 {
		need = 1
	}

	upRun, downRun := 0, 0
	for _, pct := range trend {
		if pct >= cfg.StepUpAccuracy {
			upRun++
		} else {
			upRun = 0
		}
		if pct < cfg.StepDownAccuracy {
			downRun++
		} else {
			downRun = 0
		}

		if upRun >= need {
			d = d.StepUp()
			upRun = 0
		}
		if downRun >= need {
			d = d.StepDown()
			downRun = 0
		}
	}
	return d
}
