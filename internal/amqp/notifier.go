package amqp

import (
	"context"
	"log/slog"

	"cofre/internal/log"
	"cofre/internal/notify"
)

// Notifier adapts the client to the ledger's notification sink. Publish
// failures are logged and swallowed: losing an event must never fail the
// mutation that produced it.
type Notifier struct {
	client *Client
}

func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Notify(ctx context.Context, event notify.Event) {
	if err := n.client.PublishEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event",
			log.FieldEventKind, event.Kind, log.FieldError, err)
	}
}
