package domain

import "time"

// OwnerRef identifies the entity a webhook registration belongs to as a
// (kind, id) pair. Any entity kind may own webhooks; the delivery core only
// ever compares the pair for exact equality.
type OwnerRef struct {
	Kind string `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
}

func (o OwnerRef) IsZero() bool {
	return o.Kind == "" && o.ID == ""
}

func (o OwnerRef) String() string {
	return o.Kind + "/" + o.ID
}

// Webhook stores a URL to which event payloads are POSTed. Records are
// created and deleted through the admin tooling; the delivery core never
// mutates them.
type Webhook struct {
	ID        string
	Owner     OwnerRef
	URL       string
	CreatedAt time.Time
}
