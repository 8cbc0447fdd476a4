package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/medanat/reviewboard/internal/httpclient"
	"github.com/medanat/reviewboard/internal/logging"
	"github.com/medanat/reviewboard/internal/retry"
)

// State names the terminal conditions of one delivery unit.
type State string

const (
	StateDelivered    State = "DELIVERED"
	StateGivenUp      State = "GIVEN_UP"
	StateAbortedFault State = "ABORTED_FAULT"
)

// ErrEmptyURL is the engine's only synchronous failure: Dispatch refuses an
// empty target before any background work starts.
var ErrEmptyURL = errors.New("dispatch: target URL must not be empty")

// Outcome describes how one delivery unit ended. Attempts counts every POST
// performed, the initial one included.
type Outcome struct {
	DeliveryID string
	URL        string
	State      State
	Attempts   int
}

// Observer receives exactly one Outcome per dispatched delivery unit.
// Delivery behavior never depends on it; tests and operational counters do.
type Observer func(Outcome)

// Engine performs fire-and-forget webhook deliveries with a bounded,
// linear-backoff retry budget. Dispatch returns before any network I/O
// happens, and no delivery result ever reaches the caller.
type Engine struct {
	client   *httpclient.Client
	sched    *retry.Scheduler
	policy   retry.Policy
	observer Observer
}

func NewEngine(client *httpclient.Client, sched *retry.Scheduler, policy retry.Policy) *Engine {
	return &Engine{
		client: client,
		sched:  sched,
		policy: policy,
	}
}

// WithObserver attaches an outcome observer to the engine.
func (e *Engine) WithObserver(fn Observer) *Engine {
	e.observer = fn
	return e
}

// Dispatch validates the target and schedules the first attempt at zero
// delay. The empty-URL check is the only error a caller can observe;
// everything after it stays inside the delivery unit.
func (e *Engine) Dispatch(target string, body []byte) error {
	if target == "" {
		return ErrEmptyURL
	}

	id := uuid.New().String()
	payload := string(body)
	e.sched.Schedule(0, func(ctx context.Context) {
		e.attempt(ctx, id, target, payload, 0)
	})
	return nil
}

// attempt performs one POST and either terminates the unit or schedules the
// next attempt as an independent task. HTTP error responses and transport
// failures share one retry budget; only a request that cannot be built at
// all aborts without retry.
func (e *Engine) attempt(ctx context.Context, id, target, payload string, attempt int) {
	l := logging.FromContext(ctx).With(
		slog.String("delivery_id", id),
		slog.String("url", target),
		slog.Int("attempt", attempt),
	)

	status, err := e.client.PostForm(ctx, target, "payload", payload)
	switch {
	case errors.Is(err, httpclient.ErrMalformedTarget):
		l.Error("delivery aborted", slog.String("code", "DEL_FAULT"), slog.Any("error", err))
		e.finish(Outcome{DeliveryID: id, URL: target, State: StateAbortedFault, Attempts: attempt + 1})
		return
	case err == nil && status < http.StatusBadRequest:
		l.Info("delivered", slog.String("code", "DEL_OK"), slog.Int("status", status))
		e.finish(Outcome{DeliveryID: id, URL: target, State: StateDelivered, Attempts: attempt + 1})
		return
	}

	if err != nil {
		l.Warn("delivery attempt failed", slog.String("code", "DEL_RETRYABLE"), slog.Any("error", err))
	} else {
		l.Warn("delivery attempt failed", slog.String("code", "DEL_RETRYABLE"), slog.Int("status", status))
	}

	if !e.policy.ShouldRetry(attempt) {
		l.Error("giving up delivery",
			slog.String("code", "DEL_GIVEN_UP"),
			slog.Int("maxRetries", e.policy.MaxRetries),
		)
		e.finish(Outcome{DeliveryID: id, URL: target, State: StateGivenUp, Attempts: attempt + 1})
		return
	}

	delay := e.policy.Delay(attempt)
	l.Info("scheduling retry", slog.String("code", "DEL_RETRY"), slog.Duration("delay", delay))
	e.sched.Schedule(delay, func(ctx context.Context) {
		e.attempt(ctx, id, target, payload, attempt+1)
	})
}

func (e *Engine) finish(o Outcome) {
	if e.observer != nil {
		e.observer(o)
	}
}
