package ports

import (
	"context"

	"github.com/Manasess896/X-bot/domain/models"
)

// Messenger publishes post-lifecycle events for external consumers. A noop
// implementation is used when no broker is configured; messenger failures
// never fail the action that triggered them.
type Messenger interface {
	// SendPublished announces a successful publish.
	SendPublished(ctx context.Context, event *models.PublishEvent) error

	// SendFailed announces a failed action invocation.
	SendFailed(ctx context.Context, kind models.Kind, runID string, err error) error
}
