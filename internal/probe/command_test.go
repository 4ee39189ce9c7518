package probe

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCommandCapturesStdout(t *testing.T) {
	out, err := NewCommand("echo", "hello").Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Run() = %q, want %q", out, "hello\n")
	}
}

func TestCommandMissingBinary(t *testing.T) {
	out, err := NewCommand("definitely-not-a-command-xyz").Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if out != "" {
		t.Errorf("missing binary should produce no output, got %q", out)
	}
}

func TestCommandTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewCommand("sleep", "10").Run(ctx)
	if err == nil {
		t.Fatal("expected error on timeout")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, took %s", elapsed)
	}
}

func TestSequenceJoinsOutputs(t *testing.T) {
	seq := NewSequence(
		NewCommand("echo", "one"),
		NewCommand("echo", "two"),
	)
	out, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if want := "one\n\ntwo\n"; out != want {
		t.Errorf("Run() = %q, want %q", out, want)
	}
}

func TestSequenceKeepsPartialOutputOnFailure(t *testing.T) {
	seq := NewSequence(
		NewCommand("echo", "before"),
		NewCommand("definitely-not-a-command-xyz"),
		NewCommand("echo", "after"),
	)
	out, err := seq.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing probe")
	}
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("partial output lost: %q", out)
	}
}
