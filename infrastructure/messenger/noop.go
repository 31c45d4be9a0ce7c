package messenger

import (
	"context"
	"log/slog"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
)

// Noop discards all events. Used when no NATS server is configured.
type Noop struct {
	logger *slog.Logger
}

func NewNoop() *Noop {
	return &Noop{
		logger: slog.Default().With("component", "noop_messenger"),
	}
}

func (n *Noop) SendPublished(ctx context.Context, event *models.PublishEvent) error {
	n.logger.DebugContext(ctx, "Event discarded", "kind", event.Kind, "identifier", event.Identifier)
	return nil
}

func (n *Noop) SendFailed(ctx context.Context, kind models.Kind, runID string, actionErr error) error {
	n.logger.DebugContext(ctx, "Failure event discarded", "kind", kind, "run_id", runID)
	return nil
}

// Verify interface implementation
var _ ports.Messenger = (*Noop)(nil)
