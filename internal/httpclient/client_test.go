package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPostFormEncoding(t *testing.T) {
	var gotContentType, gotPayload string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotPayload = r.PostForm.Get("payload")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(2 * time.Second)
	status, err := client.PostForm(context.Background(), server.URL, "payload", `{"a":1}`)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if gotPayload != `{"a":1}` {
		t.Errorf("unexpected payload field %q", gotPayload)
	}
}

func TestPostFormReturnsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(2 * time.Second)
	status, err := client.PostForm(context.Background(), server.URL, "payload", "{}")
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	if status != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", status)
	}
}

func TestPostFormMalformedTarget(t *testing.T) {
	client := New(2 * time.Second)

	_, err := client.PostForm(context.Background(), "http://exa mple.com", "payload", "{}")
	if !errors.Is(err, ErrMalformedTarget) {
		t.Errorf("expected ErrMalformedTarget, got %v", err)
	}
}

func TestPostFormTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	client := New(2 * time.Second)
	_, err := client.PostForm(context.Background(), target, "payload", "{}")
	if err == nil {
		t.Error("expected transport error for closed listener")
	}
	if errors.Is(err, ErrMalformedTarget) {
		t.Error("transport error must not classify as malformed target")
	}
}
