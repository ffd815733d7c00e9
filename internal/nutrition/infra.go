package nutrition

import (
	"context"
	"database/sql"
	"fmt"
)

type repo struct {
	db *sql.DB
}

// NewRepo returns a Postgres-backed exchange recorder.
func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS assistant_exchanges (
			id            UUID PRIMARY KEY,
			message       TEXT NOT NULL,
			context_bytes INTEGER NOT NULL DEFAULT 0,
			response      TEXT NOT NULL,
			degraded      BOOLEAN NOT NULL,
			failure       TEXT NOT NULL DEFAULT '',
			diagnostic    TEXT NOT NULL DEFAULT '',
			latency_ms    BIGINT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create assistant_exchanges: %w", err)
	}
	return nil
}

func (r *repo) SaveExchange(ctx context.Context, ex *Exchange) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assistant_exchanges
			(id, message, context_bytes, response, degraded, failure, diagnostic, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		ex.ID.String(),
		ex.Message,
		ex.ContextBytes,
		ex.Response,
		ex.Degraded,
		string(ex.Failure),
		ex.Diagnostic,
		ex.Latency.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert exchange %s: %w", ex.ID, err)
	}
	return nil
}
