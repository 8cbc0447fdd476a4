package events

// Event kinds the surrounding application raises.
const (
	PostPublish = "post_publish"
)

// Event is one inbound domain-event notification, as handed to subscribers.
type Event struct {
	Type          string // event kind, e.g. "post_publish"
	Sender        any    // type token for the kind of object the event is about
	Instance      any    // the domain object itself, opaque to the core
	User          any    // acting user; nil for system-triggered events
	ChangeDesc    any
	HasChangeDesc bool
}

// WithChangeDesc returns a copy of the event carrying a change description.
// Events built without it serialize with no changedesc key at all.
func (e Event) WithChangeDesc(desc any) Event {
	e.ChangeDesc = desc
	e.HasChangeDesc = true
	return e
}
