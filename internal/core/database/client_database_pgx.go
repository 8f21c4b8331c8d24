package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jmcalero-dev/Vectora/internal/config"
	"github.com/jmcalero-dev/Vectora/internal/core"
	"github.com/jmcalero-dev/Vectora/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

var _ core.MessageStore = (*DatabaseClient)(nil)

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (*DatabaseClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dsn := cfg.DatabaseURL
	if cfg.SslCertPath != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", "verify-ca")
		q.Set("sslrootcert", cfg.SslCertPath)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// A single sequential worker needs very little pool.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db, cfg.EmbedDim); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SelectPending fetches the oldest messages that still have a null embedding.
// Soft-deleted rows are skipped; the upstream ingester owns deletion.
func (c *DatabaseClient) SelectPending(ctx context.Context, limit int) ([]models.Message, error) {
	const q = `
		SELECT id, group_id, sent_at, sender, text_content, attachment_url, is_image, processed
		FROM messages
		WHERE embedding IS NULL AND deleted_at IS NULL
		ORDER BY sent_at ASC
		LIMIT $1
	`
	rows, err := c.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending: %w", err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var (
			m   models.Message
			url sql.NullString
		)
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.SentAt, &m.Sender, &m.TextContent, &url, &m.IsImage, &m.Processed,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.AttachmentURL = url.String
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveEmbedding persists the vector and flips processed in one statement.
// The `embedding IS NULL` guard makes the transition null -> non-null happen
// at most once; a second write to the same row affects zero rows and errors.
func (c *DatabaseClient) SaveEmbedding(ctx context.Context, id string, embedding []float32) error {
	const q = `
		UPDATE messages
		SET embedding = $2, processed = true
		WHERE id = $1 AND embedding IS NULL
	`
	res, err := c.db.ExecContext(ctx, q, id, pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("save embedding: message %s not pending", id)
	}
	return nil
}

func (c *DatabaseClient) CountPending(ctx context.Context) (int64, error) {
	return c.countWhere(ctx, "embedding IS NULL AND deleted_at IS NULL")
}

func (c *DatabaseClient) CountProcessed(ctx context.Context) (int64, error) {
	return c.countWhere(ctx, "processed = true")
}

func (c *DatabaseClient) countWhere(ctx context.Context, cond string) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, "SELECT count(*) FROM messages WHERE "+cond).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
