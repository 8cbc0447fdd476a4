package store

import (
	"context"
	"errors"

	"github.com/medanat/reviewboard/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// WebhookRegistry is the read path the delivery core depends on. Lookups
// must be safe for concurrent use. Results come back in insertion order,
// but callers must not depend on delivery order following it.
type WebhookRegistry interface {
	FindByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Webhook, error)
}

// WebhookStore adds the write path used by the admin tooling. The delivery
// core never mutates webhook records.
type WebhookStore interface {
	WebhookRegistry
	Create(ctx context.Context, w *domain.Webhook) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Webhook, error)
}
