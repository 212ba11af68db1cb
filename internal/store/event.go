package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMEventData captures one LLM request for the append-only event log.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	InputTokens  int
	OutputTokens int
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a logged LLM request as read back from the store.
type LLMEvent struct {
	LLMEventData
	ID        int64
	CreatedAt time.Time
}

// EventRepo records LLM request events.
type EventRepo interface {
	// AppendLLMRequest logs one LLM request. Never blocks domain logic:
	// callers treat failures as warnings.
	AppendLLMRequest(ctx context.Context, data LLMEventData) error

	// RecentLLMEvents returns the most recent events, newest first.
	RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(provider, model, purpose, latency_ms, success,
			 input_tokens, output_tokens, error_message,
			 request_body, response_body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.LatencyMs, success,
		data.InputTokens, data.OutputTokens, data.ErrorMessage,
		data.RequestBody, data.ResponseBody,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, model, purpose, latency_ms, success,
		       input_tokens, output_tokens, error_message, created_at
		FROM llm_events
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		var success int
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Provider, &e.Model, &e.Purpose, &e.LatencyMs,
			&success, &e.InputTokens, &e.OutputTokens, &e.ErrorMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		e.Success = success == 1
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
