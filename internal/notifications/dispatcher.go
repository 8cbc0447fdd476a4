package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/medanat/reviewboard/internal/dispatch"
	"github.com/medanat/reviewboard/internal/domain"
	"github.com/medanat/reviewboard/internal/events"
	"github.com/medanat/reviewboard/internal/logging"
	"github.com/medanat/reviewboard/internal/store"
)

// OwnerResolver reports which owner the current event is scoped to, e.g. the
// active site.
type OwnerResolver interface {
	Current(ctx context.Context) (domain.OwnerRef, error)
}

// StaticOwner resolves to a fixed owner, the single-site deployment case.
type StaticOwner domain.OwnerRef

func (o StaticOwner) Current(ctx context.Context) (domain.OwnerRef, error) {
	return domain.OwnerRef(o), nil
}

// Dispatcher connects the event bus to the delivery engine: one inbound
// domain event fans out to one independent delivery per registered webhook.
type Dispatcher struct {
	owners   OwnerResolver
	registry store.WebhookRegistry
	types    TypeResolver
	engine   *dispatch.Engine
}

func NewDispatcher(
	owners OwnerResolver,
	registry store.WebhookRegistry,
	types TypeResolver,
	engine *dispatch.Engine,
) *Dispatcher {
	return &Dispatcher{
		owners:   owners,
		registry: registry,
		types:    types,
		engine:   engine,
	}
}

// Register subscribes the dispatcher to the given event kinds on hub and
// returns one teardown func covering them all.
func (d *Dispatcher) Register(hub *events.Hub, kinds ...string) func() {
	unsubs := make([]func(), 0, len(kinds))
	for _, kind := range kinds {
		unsubs = append(unsubs, hub.Subscribe(kind, d.HandleEvent))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// HandleEvent runs on the publisher's goroutine but only schedules work: it
// returns before any delivery performs I/O, and no delivery failure ever
// reaches the publisher.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev events.Event) {
	ctx = logging.WithEventKind(ctx, ev.Type)
	l := logging.FromContext(ctx)

	owner, err := d.owners.Current(ctx)
	if err != nil {
		l.Error("failed to resolve current owner", slog.String("code", "OWNER_ERROR"), slog.Any("error", err))
		return
	}
	ctx = logging.WithOwner(ctx, owner.String())
	l = logging.FromContext(ctx)

	webhooks, err := d.registry.FindByOwner(ctx, owner)
	if err != nil {
		l.Error("failed to look up webhooks", slog.String("code", "DB_ERROR"), slog.Any("error", err))
		return
	}
	if len(webhooks) == 0 {
		// Nothing would receive the payload, so none is built.
		return
	}

	payload, err := BuildPayload(d.types, ev)
	if err != nil {
		l.Error("failed to build payload", slog.String("code", "PAYLOAD_ERROR"), slog.Any("error", err))
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		l.Error("failed to encode payload", slog.String("code", "PAYLOAD_ERROR"), slog.Any("error", err))
		return
	}

	for _, webhook := range webhooks {
		if err := d.engine.Dispatch(webhook.URL, body); err != nil {
			l.Error("dispatch rejected",
				slog.String("code", "DEL_INVALID"),
				slog.String("webhook_id", webhook.ID),
				slog.Any("error", err),
			)
		}
	}
}
