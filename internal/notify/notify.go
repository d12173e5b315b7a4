// Package notify defines the notification-sink capability the ledger fans
// events out to, plus a slog-backed sink for console use.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cofre/internal/log"
)

// Event kinds emitted by the ledger.
const (
	EventAccountCreated      = "account_created"
	EventTransactionPosted   = "transaction_posted"
	EventTransactionReversed = "transaction_reversed"
	EventBudgetAlert         = "budget_alert"
	EventBudgetOverrun       = "budget_overrun"
	EventGoalReached         = "goal_reached"
	EventGoalLate            = "goal_late"
)

// Event is one notification. Payload values are primitive (strings,
// numbers) so any sink can serialize them.
type Event struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}

// NewEvent builds an event with a generated id and the current timestamp.
func NewEvent(kind, message string, payload map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}

// Notifier is a notification sink. Implementations must not block beyond
// what their transport needs; delivery failures are theirs to report, the
// ledger does not retry.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier writes events to structured logs. It is the console observer
// and the default sink.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a sink over the given logger; nil means the
// default logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) {
	args := []any{"event_id", event.ID, log.FieldEventKind, event.Kind}
	for k, v := range event.Payload {
		args = append(args, k, v)
	}
	n.logger.InfoContext(ctx, event.Message, args...)
}
