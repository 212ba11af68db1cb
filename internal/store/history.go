package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// QuizResultData is the persisted form of a quiz result. Domain packages
// convert to and from their own types; the store never imports them.
type QuizResultData struct {
	QuizID          string
	Score           int
	TotalQuestions  int
	Percentage      float64
	Answers         map[string]string
	WeakAreas       []string
	Recommendations []string
	ConceptStats    map[string]ConceptStatData
	TimeTakenSec    int
	Timestamp       time.Time
}

// ConceptStatData is the persisted per-concept correct/total tally.
type ConceptStatData struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// HistoryRepo is the append-only quiz result history.
type HistoryRepo interface {
	// Append records a result for the subject. Results are immutable once
	// written.
	Append(ctx context.Context, subject string, data QuizResultData) error

	// Load returns all recorded results for the subject, oldest first.
	Load(ctx context.Context, subject string) ([]QuizResultData, error)

	// Subjects returns all subjects with at least one recorded result.
	Subjects(ctx context.Context) ([]string, error)
}

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Append(ctx context.Context, subject string, data QuizResultData) error {
	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	weak, err := json.Marshal(data.WeakAreas)
	if err != nil {
		return fmt.Errorf("marshal weak areas: %w", err)
	}
	recs, err := json.Marshal(data.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	stats, err := json.Marshal(data.ConceptStats)
	if err != nil {
		return fmt.Errorf("marshal concept stats: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quiz_results
			(subject, quiz_id, score, total_questions, percentage,
			 answers, weak_areas, recommendations, concept_stats,
			 time_taken_sec, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		subject, data.QuizID, data.Score, data.TotalQuestions, data.Percentage,
		string(answers), string(weak), string(recs), string(stats),
		data.TimeTakenSec, ts.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append quiz result: %w", err)
	}
	return nil
}

func (r *historyRepo) Load(ctx context.Context, subject string) ([]QuizResultData, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT quiz_id, score, total_questions, percentage,
		       answers, weak_areas, recommendations, concept_stats,
		       time_taken_sec, created_at
		FROM quiz_results
		WHERE subject = ?
		ORDER BY id ASC`, subject)
	if err != nil {
		return nil, fmt.Errorf("load quiz results: %w", err)
	}
	defer rows.Close()

	var results []QuizResultData
	for rows.Next() {
		var d QuizResultData
		var answers, weak, recs, stats, createdAt string
		if err := rows.Scan(&d.QuizID, &d.Score, &d.TotalQuestions, &d.Percentage,
			&answers, &weak, &recs, &stats, &d.TimeTakenSec, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &d.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		if err := json.Unmarshal([]byte(weak), &d.WeakAreas); err != nil {
			return nil, fmt.Errorf("unmarshal weak areas: %w", err)
		}
		if err := json.Unmarshal([]byte(recs), &d.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &d.ConceptStats); err != nil {
			return nil, fmt.Errorf("unmarshal concept stats: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			d.Timestamp = t
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

func (r *historyRepo) Subjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT subject FROM quiz_results ORDER BY subject`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
