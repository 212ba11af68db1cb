package progress

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/akarsh/studyforge/internal/guide"
	"github.com/akarsh/studyforge/internal/quiz"
	"github.com/akarsh/studyforge/internal/store"
)

// Tracker accumulates quiz results per subject. Records for one subject
// serialize on that subject's mutex; profile reads are lock-free and
// always observe a fully recomputed snapshot.
type Tracker struct {
	repo   store.HistoryRepo
	engine *quiz.Engine
	cfg    Config

	mu       sync.Mutex
	subjects map[string]*subjectState
}

type subjectState struct {
	mu      sync.Mutex
	window  []quiz.Result
	profile atomic.Pointer[PerformanceProfile]
}

// NewTracker creates a Tracker. repo may be nil for in-memory tracking.
func NewTracker(repo store.HistoryRepo, engine *quiz.Engine, cfg Config) *Tracker {
	return &Tracker{
		repo:     repo,
		engine:   engine,
		cfg:      cfg,
		subjects: make(map[string]*subjectState),
	}
}

func (t *Tracker) state(subject string) *subjectState {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.subjects[subject]
	if !ok {
		s = &subjectState{}
		t.subjects[subject] = s
	}
	return s
}

// Record appends a result to the subject's history and recomputes the
// profile. The store write happens first so the durable history never
// falls behind the in-memory window.
func (t *Tracker) Record(ctx context.Context, subject string, result quiz.Result) (*PerformanceProfile, error) {
	s := t.state(subject)
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.repo != nil {
		if err := t.repo.Append(ctx, subject, toStoreResult(result)); err != nil {
			return nil, fmt.Errorf("recording result for %q: %w", subject, err)
		}
	}

	s.window = append(s.window, result)
	if len(s.window) > t.cfg.WindowSize {
		s.window = s.window[len(s.window)-t.cfg.WindowSize:]
	}

	profile := computeProfile(subject, s.window, t.cfg)
	s.profile.Store(profile)
	return profile, nil
}

// LoadHistory warms the subject's window from the store and recomputes
// the profile. Call it once per subject before adaptive use.
func (t *Tracker) LoadHistory(ctx context.Context, subject string) error {
	if t.repo == nil {
		return nil
	}

	data, err := t.repo.Load(ctx, subject)
	if err != nil {
		return fmt.Errorf("loading history for %q: %w", subject, err)
	}

	s := t.state(subject)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) > t.cfg.WindowSize {
		data = data[len(data)-t.cfg.WindowSize:]
	}

	window := make([]quiz.Result, len(data))
	for i, d := range data {
		window[i] = fromStoreResult(d)
	}
	s.window = window
	s.profile.Store(computeProfile(subject, window, t.cfg))
	return nil
}

// Profile returns the subject's current profile. A subject with no
// recorded history gets a fresh profile at the starting difficulty.
func (t *Tracker) Profile(subject string) *PerformanceProfile {
	if p := t.state(subject).profile.Load(); p != nil {
		return p
	}
	return computeProfile(subject, nil, t.cfg)
}

// CreateAdaptiveQuiz builds a quiz whose difficulty and concept focus
// follow the subject's performance profile: weak concepts claim at least
// half the question slots when enough of them exist.
func (t *Tracker) CreateAdaptiveQuiz(g *guide.StudyGuide, subject string, numQuestions int) (*quiz.Quiz, error) {
	profile := t.Profile(subject)
	return t.engine.CreateFocusedQuiz(g, profile.NextDifficulty, numQuestions, nil, profile.WeakConcepts)
}

func toStoreResult(r quiz.Result) store.QuizResultData {
	data := store.QuizResultData{
		QuizID:          r.QuizID,
		Score:           r.Score,
		TotalQuestions:  r.TotalQuestions,
		Percentage:      r.Percentage,
		Answers:         r.Answers,
		WeakAreas:       r.WeakAreas,
		Recommendations: r.Recommendations,
		TimeTakenSec:    r.TimeTakenSec,
		Timestamp:       r.Timestamp,
	}
	if len(r.ConceptStats) > 0 {
		data.ConceptStats = make(map[string]store.ConceptStatData, len(r.ConceptStats))
		for name, stat := range r.ConceptStats {
			data.ConceptStats[name] = store.ConceptStatData{Correct: stat.Correct, Total: stat.Total}
		}
	}
	return data
}

func fromStoreResult(d store.QuizResultData) quiz.Result {
	r := quiz.Result{
		QuizID:          d.QuizID,
		Score:           d.Score,
		TotalQuestions:  d.TotalQuestions,
		Percentage:      d.Percentage,
		Answers:         d.Answers,
		WeakAreas:       d.WeakAreas,
		Recommendations: d.Recommendations,
		TimeTakenSec:    d.TimeTakenSec,
		Timestamp:       d.Timestamp,
	}
	if len(d.ConceptStats) > 0 {
		r.ConceptStats = make(map[string]quiz.ConceptStat, len(d.ConceptStats))
		for name, stat := range d.ConceptStats {
			r.ConceptStats[name] = quiz.ConceptStat{Correct: stat.Correct, Total: stat.Total}
		}
	}
	return r
}
