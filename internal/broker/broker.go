package broker

import "context"

// Source feeds inbound domain-event notifications onto the process-local
// event bus until its context ends.
type Source interface {
	Start(ctx context.Context) error
	Close() error
}

// Publisher emits domain-event notifications for a running webhookd to pick
// up. Used by the admin tooling.
type Publisher interface {
	Publish(ctx context.Context, data []byte) error
	Close() error
}
