package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// historyReadLimit caps how many rows a single list call returns.
const historyReadLimit = 200

// HistoryEntry is one stored interview interaction.
type HistoryEntry struct {
	ID          uuid.UUID       `json:"id"`
	Question    string          `json:"question"`
	Response    string          `json:"response"`
	Evaluation  json.RawMessage `json:"evaluation"`
	DrawingData *string         `json:"drawingData"`
	Date        time.Time       `json:"date"`
}

// NewHistoryEntry is the caller-supplied portion of a history row; id and
// date are assigned by the database on insert.
type NewHistoryEntry struct {
	Question    string          `json:"question"`
	Response    string          `json:"response"`
	Evaluation  json.RawMessage `json:"evaluation"`
	DrawingData *string         `json:"drawingData"`
}

// EnsureSchema creates the history table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS history (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			question text NOT NULL DEFAULT '',
			response text NOT NULL DEFAULT '',
			evaluation jsonb,
			drawing_data text,
			date timestamptz NOT NULL DEFAULT NOW()
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// ListHistory returns the stored interactions, newest first, capped at the
// read limit.
func (db *DB) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, question, response, evaluation, drawing_data, date
		 FROM history
		 ORDER BY date DESC
		 LIMIT $1`,
		historyReadLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Response, &entry.Evaluation, &entry.DrawingData, &entry.Date); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// AppendHistory inserts a new interaction and returns the stored row with
// its server-assigned id and timestamp.
func (db *DB) AppendHistory(ctx context.Context, entry NewHistoryEntry) (*HistoryEntry, error) {
	var stored HistoryEntry
	err := db.pool.QueryRow(ctx,
		`INSERT INTO history (question, response, evaluation, drawing_data, date)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, question, response, evaluation, drawing_data, date`,
		entry.Question, entry.Response, entry.Evaluation, entry.DrawingData,
	).Scan(&stored.ID, &stored.Question, &stored.Response, &stored.Evaluation, &stored.DrawingData, &stored.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	return &stored, nil
}

// ClearHistory deletes all stored interactions.
func (db *DB) ClearHistory(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
