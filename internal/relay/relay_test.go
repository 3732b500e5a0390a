package relay

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mhadip/tensibot/internal/extract"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func testRecord() extract.Record {
	return extract.Record{
		"systolic":   "120",
		"diastolic":  "80",
		"heart_rate": "75",
		"date":       "2024-07-28",
	}
}

func TestRelayUnconfiguredSkips(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New("", time.Second, quietLogger())
	if c.Configured() {
		t.Error("Configured() should be false for empty URL")
	}
	if c.Relay(context.Background(), testRecord()) {
		t.Error("unconfigured relay must report false")
	}
	if calls.Load() != 0 {
		t.Error("unconfigured relay must not perform network I/O")
	}
}

func TestRelayPostsJSONRecord(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if !New(srv.URL, time.Second, quietLogger()).Relay(context.Background(), testRecord()) {
		t.Fatal("expected relay to succeed")
	}
	if got["systolic"] != "120" {
		t.Errorf("relayed systolic = %v", got["systolic"])
	}
}

func TestRelayNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if New(srv.URL, time.Second, quietLogger()).Relay(context.Background(), testRecord()) {
		t.Fatal("expected relay to fail on 500")
	}
}

func TestRelayTransportErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if New(srv.URL, time.Second, quietLogger()).Relay(context.Background(), testRecord()) {
		t.Fatal("expected relay to fail on transport error")
	}
}

func TestRelayRejectsNilRecord(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	if New(srv.URL, time.Second, quietLogger()).Relay(context.Background(), nil) {
		t.Fatal("nil record must be rejected")
	}
	if calls.Load() != 0 {
		t.Error("nil record must be rejected before network I/O")
	}
}

func TestRelayToleratesSchemaDrift(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Missing columns only warn; the POST still happens.
	if !New(srv.URL, time.Second, quietLogger()).Relay(context.Background(), extract.Record{"systolic": "120"}) {
		t.Fatal("schema drift must not block the relay")
	}
}
