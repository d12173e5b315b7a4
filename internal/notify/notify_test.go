package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventBudgetAlert, "budget near limit", map[string]any{"budget": "groceries"})
	if e.ID == "" {
		t.Fatal("event must carry a generated id")
	}
	if e.Kind != EventBudgetAlert {
		t.Fatalf("kind: got %q", e.Kind)
	}
	if e.At.IsZero() {
		t.Fatal("event must carry a timestamp")
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewLogNotifier(logger)

	n.Notify(context.Background(), NewEvent(EventGoalReached, "goal reached", map[string]any{"goal": "trip"}))

	out := buf.String()
	if !strings.Contains(out, "goal reached") {
		t.Fatalf("message missing from log output: %s", out)
	}
	if !strings.Contains(out, "goal=trip") {
		t.Fatalf("payload missing from log output: %s", out)
	}
}
