package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/campus-dev/job-board/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// withTimeout bounds a single store call. Callers that saturate the pool wait in
// database/sql until either a connection frees up or this deadline passes.
func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}
