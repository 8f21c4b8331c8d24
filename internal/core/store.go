package core

import (
	"context"

	"github.com/jmcalero-dev/Vectora/internal/models"
)

// MessageStore defines the persistence operations the worker needs.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type MessageStore interface {
	// SelectPending returns up to limit messages whose embedding is still
	// null, oldest first.
	SelectPending(ctx context.Context, limit int) ([]models.Message, error)

	// SaveEmbedding writes the vector and flips processed in a single update.
	// The statement is guarded by `embedding IS NULL`; writing to an already
	// processed row is an error, never an overwrite.
	SaveEmbedding(ctx context.Context, id string, embedding []float32) error

	CountPending(ctx context.Context) (int64, error)
	CountProcessed(ctx context.Context) (int64, error)
}

// AttachmentFetcher retrieves the raw bytes behind an attachment reference,
// which may be an absolute URL or a key in the configured media bucket.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
