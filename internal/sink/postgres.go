package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type Run struct {
	Source       string
	MessageCount int
	UserCount    int
	Report       []byte
	StartedAt    time.Time
	FinishedAt   time.Time
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audit_runs (
			id            BIGSERIAL PRIMARY KEY,
			source        TEXT,
			message_count INTEGER NOT NULL,
			user_count    INTEGER NOT NULL,
			report        JSONB NOT NULL,
			started_at    TIMESTAMPTZ NOT NULL,
			finished_at   TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure audit_runs table: %w", err)
	}
	return nil
}

func (s *Store) InsertRun(ctx context.Context, run Run) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO audit_runs (source, message_count, user_count, report, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		pgtype.Text{String: run.Source, Valid: run.Source != ""},
		int32(run.MessageCount),
		int32(run.UserCount),
		run.Report,
		pgtype.Timestamptz{Time: run.StartedAt, Valid: true},
		pgtype.Timestamptz{Time: run.FinishedAt, Valid: true},
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert audit run: %w", err)
	}
	return id, nil
}
