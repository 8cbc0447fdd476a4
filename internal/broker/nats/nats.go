package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/medanat/reviewboard/internal/contenttypes"
	"github.com/medanat/reviewboard/internal/events"
	"github.com/medanat/reviewboard/internal/logging"
)

const DefaultSubject = "events.domain"

// Message is the wire form of a domain-event notification. Sender carries
// the registered "<namespace>.<type>" descriptor; Instance, User and
// ChangeDesc stay opaque and are forwarded as-is into the payload.
type Message struct {
	EventType  string          `json:"event_type"`
	Sender     string          `json:"sender"`
	Instance   json.RawMessage `json:"instance"`
	User       json.RawMessage `json:"user,omitempty"`
	ChangeDesc json.RawMessage `json:"changedesc,omitempty"`
}

// Source bridges a NATS subject onto the in-process event bus.
type Source struct {
	conn    *nats.Conn
	subject string
	types   *contenttypes.Registry
	hub     *events.Hub
	sub     *nats.Subscription
}

func NewSource(url, subject string, types *contenttypes.Registry, hub *events.Hub) (*Source, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Source{
		conn:    conn,
		subject: subject,
		types:   types,
		hub:     hub,
	}, nil
}

func (s *Source) Start(ctx context.Context) error {
	sub, err := s.conn.Subscribe(s.subject, func(m *nats.Msg) {
		s.handle(ctx, m.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.subject, err)
	}
	s.sub = sub

	slog.Info("event source subscribed",
		slog.String("code", "SYS_STARTUP"),
		slog.String("subject", s.subject),
	)
	return nil
}

func (s *Source) handle(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Error("dropping malformed event message", slog.String("code", "BROKER_ERROR"), slog.Any("error", err))
		return
	}

	ctx = logging.WithEventKind(ctx, msg.EventType)
	l := logging.FromContext(ctx)

	token, err := s.types.ByName(msg.Sender)
	if err != nil {
		l.Error("dropping event with unknown sender", slog.String("code", "BROKER_ERROR"), slog.Any("error", err))
		return
	}

	ev := events.Event{
		Type:     msg.EventType,
		Sender:   token,
		Instance: msg.Instance,
	}
	if msg.User != nil {
		ev.User = msg.User
	}
	if msg.ChangeDesc != nil {
		ev = ev.WithChangeDesc(msg.ChangeDesc)
	}

	s.hub.Publish(ctx, ev)
}

func (s *Source) Close() error {
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			return err
		}
		s.sub = nil
	}
	s.conn.Close()
	return nil
}

// Publisher emits domain-event messages on the configured subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: conn, subject: subject}, nil
}

func (p *Publisher) Publish(ctx context.Context, data []byte) error {
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return p.conn.FlushWithContext(ctx)
}

func (p *Publisher) Close() error {
	p.conn.Close()
	return nil
}
