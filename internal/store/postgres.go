package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock to prevent concurrent migrations from multiple services.
	// Note: In production, use dedicated migration tools (e.g., golang-migrate/migrate)
	// that run as a separate deployment step before app services start.
	const lockID = 726354981 // arbitrary number for this application's migration lock

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if !acquired {
		// Another service is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}

	// Ensure lock is released when done
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	_, err = s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS research_queries (
		id UUID PRIMARY KEY,
		query TEXT NOT NULL,
		topic TEXT,
		mode TEXT,
		difficulty TEXT,
		key_points TEXT[],
		answered_at TIMESTAMPTZ DEFAULT now()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create research_queries table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS research_queries_answered_at_idx
		ON research_queries (answered_at DESC)
	`)
	return err
}

func (s *PostgresStore) SaveRecord(ctx context.Context, rec Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.AnsweredAt.IsZero() {
		rec.AnsweredAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO research_queries (id, query, topic, mode, difficulty, key_points, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, rec.ID, rec.Query, rec.Topic, rec.Mode, rec.Difficulty, pq.Array(rec.KeyPoints), rec.AnsweredAt)
	return err
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, topic, mode, difficulty, key_points, answered_at
		FROM research_queries
		ORDER BY answered_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var keyPoints []string
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Topic, &rec.Mode, &rec.Difficulty, pq.Array(&keyPoints), &rec.AnsweredAt); err != nil {
			return nil, err
		}
		rec.KeyPoints = keyPoints
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
