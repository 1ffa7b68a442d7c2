package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableQuizAttempts     = "quiz_attempts"
	tableAnswerEvents     = "answer_events"
	tableFlashcardReviews = "flashcard_reviews"
	tableLLMRequests      = "llm_request_events"
	tableSnapshots        = "snapshots"
)

// Timestamps are stored as Unix nanoseconds (UTC) so ordering and range
// filters are plain integer comparisons.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		learner TEXT NOT NULL DEFAULT '',
		topics TEXT NOT NULL DEFAULT '[]',
		difficulty TEXT NOT NULL,
		focus_mode TEXT NOT NULL DEFAULT '',
		question_count INTEGER NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		mastery INTEGER NOT NULL,
		xp INTEGER NOT NULL DEFAULT 0,
		best_streak INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		weak_areas TEXT NOT NULL DEFAULT '[]',
		strong_areas TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_attempts_timestamp ON quiz_attempts (timestamp)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		sequence INTEGER PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		attempt_id TEXT NOT NULL REFERENCES quiz_attempts (id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		question_id TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		topic TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		selected INTEGER NOT NULL,
		correct_option INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		time_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_attempt ON answer_events (attempt_id)`,
	`CREATE TABLE IF NOT EXISTS flashcard_reviews (
		sequence INTEGER PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		card_id TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		correct INTEGER NOT NULL,
		stage_before INTEGER NOT NULL,
		stage_after INTEGER NOT NULL,
		graduated INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
}

// migrate creates every table and index that does not exist yet.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
