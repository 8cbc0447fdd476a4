package retry

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.MaxRetries != 3 {
		t.Errorf("expected MaxRetries 3, got %d", p.MaxRetries)
	}
	if p.DelayUnit != 5*time.Second {
		t.Errorf("expected DelayUnit 5s, got %v", p.DelayUnit)
	}
}

func TestShouldRetry(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		attempt     int
		shouldRetry bool
	}{
		{0, true},
		{1, true},
		{2, true},
		{3, false}, // retry budget spent
		{4, false},
		{10, false},
	}

	for _, tt := range tests {
		result := p.ShouldRetry(tt.attempt)
		if result != tt.shouldRetry {
			t.Errorf("ShouldRetry(%d) = %v, want %v", tt.attempt, result, tt.shouldRetry)
		}
	}
}

func TestLinearBackoff(t *testing.T) {
	p := DefaultPolicy()

	// Linear, not exponential: 5s, 10s, 15s after failed attempts 0, 1, 2.
	expectedDelays := []time.Duration{
		5 * time.Second,
		10 * time.Second,
		15 * time.Second,
	}

	for i, expected := range expectedDelays {
		delay := p.Delay(i)
		if delay != expected {
			t.Errorf("Delay(%d) = %v, want %v", i, delay, expected)
		}
	}
}

func TestDelayClampsNegativeAttempt(t *testing.T) {
	p := Policy{MaxRetries: 3, DelayUnit: time.Second}

	if delay := p.Delay(-1); delay != time.Second {
		t.Errorf("Delay(-1) = %v, want %v", delay, time.Second)
	}
}

func TestNoInfiniteRetries(t *testing.T) {
	p := DefaultPolicy()

	for i := 0; i <= p.MaxRetries+5; i++ {
		shouldRetry := p.ShouldRetry(i)
		if i >= p.MaxRetries && shouldRetry {
			t.Errorf("ShouldRetry returned true for attempt %d, max is %d", i, p.MaxRetries)
		}
	}
}
