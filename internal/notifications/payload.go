package notifications

import (
	"fmt"

	"github.com/medanat/reviewboard/internal/domain"
	"github.com/medanat/reviewboard/internal/events"
)

// TypeResolver resolves a sender type token to its stable
// "<namespace>.<type>" descriptor. Satisfied by contenttypes.Registry.
type TypeResolver interface {
	Lookup(token any) (string, error)
}

// BuildPayload normalizes one domain event into the payload every webhook
// registered for that event receives. The only failure mode is an
// unregistered sender type, which aborts handling of this event alone.
func BuildPayload(types TypeResolver, ev events.Event) (domain.EventPayload, error) {
	sourceType, err := types.Lookup(ev.Sender)
	if err != nil {
		return domain.EventPayload{}, fmt.Errorf("resolve event source type: %w", err)
	}

	return domain.EventPayload{
		EventName:       ev.Type,
		EventSource:     ev.Instance,
		EventSourceType: sourceType,
		User:            ev.User,
		ChangeDesc:      ev.ChangeDesc,
		HasChangeDesc:   ev.HasChangeDesc,
	}, nil
}
