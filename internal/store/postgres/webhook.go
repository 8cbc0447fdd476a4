package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medanat/reviewboard/internal/domain"
	"github.com/medanat/reviewboard/internal/store"
)

type WebhookStore struct {
	db *DB
}

func NewWebhookStore(db *DB) *WebhookStore {
	return &WebhookStore{db: db}
}

func (s *WebhookStore) Create(ctx context.Context, w *domain.Webhook) error {
	query := `
		INSERT INTO webhooks (id, owner_kind, owner_id, url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		w.ID,
		w.Owner.Kind,
		w.Owner.ID,
		w.URL,
		w.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: webhook id taken", store.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create webhook: %w", err)
	}

	return nil
}

func (s *WebhookStore) FindByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Webhook, error) {
	query := `
		SELECT id, owner_kind, owner_id, url, created_at
		FROM webhooks
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY seq
	`

	rows, err := s.db.Pool.Query(ctx, query, owner.Kind, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("query webhooks: %w", err)
	}
	defer rows.Close()

	return scanWebhooks(rows)
}

func (s *WebhookStore) List(ctx context.Context) ([]domain.Webhook, error) {
	query := `
		SELECT id, owner_kind, owner_id, url, created_at
		FROM webhooks
		ORDER BY seq
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query webhooks: %w", err)
	}
	defer rows.Close()

	return scanWebhooks(rows)
}

func (s *WebhookStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: webhook %s", store.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanWebhooks(rows rowScanner) ([]domain.Webhook, error) {
	webhooks := make([]domain.Webhook, 0)
	for rows.Next() {
		var w domain.Webhook
		err := rows.Scan(
			&w.ID,
			&w.Owner.Kind,
			&w.Owner.ID,
			&w.URL,
			&w.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan webhook: %w", err)
		}
		webhooks = append(webhooks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhooks: %w", err)
	}
	return webhooks, nil
}
