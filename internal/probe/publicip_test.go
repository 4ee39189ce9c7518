package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPublicIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.7\n"))
	}))
	defer srv.Close()

	out, err := NewPublicIP(srv.URL, time.Second).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out != "203.0.113.7\n" {
		t.Errorf("Run() = %q, want %q", out, "203.0.113.7\n")
	}
}

func TestPublicIPTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	start := time.Now()
	_, err := NewPublicIP(srv.URL, 100*time.Millisecond).Run(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not bounded, took %s", elapsed)
	}
}

func TestPublicIPBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewPublicIP(srv.URL, time.Second).Run(context.Background()); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestPublicIPEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, err := NewPublicIP(srv.URL, time.Second).Run(context.Background()); err == nil {
		t.Error("expected error on empty echo response")
	}
}
