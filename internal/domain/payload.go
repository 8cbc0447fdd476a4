package domain

import "encoding/json"

// EventPayload is the normalized description of one domain event occurrence,
// the common language every event sink receives. It is built fresh per event,
// serialized once, and never persisted.
type EventPayload struct {
	EventName       string
	EventSource     any
	EventSourceType string
	User            any
	ChangeDesc      any
	HasChangeDesc   bool
}

// MarshalJSON keeps the changedesc key out of the serialized form entirely
// when the triggering event did not supply one.
func (p EventPayload) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"event_name":        p.EventName,
		"event_source":      p.EventSource,
		"event_source_type": p.EventSourceType,
		"user":              p.User,
	}
	if p.HasChangeDesc {
		m["changedesc"] = p.ChangeDesc
	}
	return json.Marshal(m)
}
