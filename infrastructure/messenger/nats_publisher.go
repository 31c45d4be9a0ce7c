// Package messenger publishes post-lifecycle events so external consumers
// (dashboards, archives) can follow what the bot posts. Event delivery is
// best-effort and never fails the action that produced it.
package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
)

// NATSPublisher emits events on xbot.posts.{kind}.
type NATSPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{
		nc:     nc,
		logger: slog.Default().With("component", "nats_messenger"),
	}
}

// SendPublished announces a successful publish.
func (p *NATSPublisher) SendPublished(ctx context.Context, event *models.PublishEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	return p.send(ctx, event)
}

// SendFailed announces a failed action invocation.
func (p *NATSPublisher) SendFailed(ctx context.Context, kind models.Kind, runID string, actionErr error) error {
	return p.send(ctx, &models.PublishEvent{
		Kind:      kind,
		RunID:     runID,
		Timestamp: time.Now().Unix(),
		Error:     actionErr.Error(),
	})
}

func (p *NATSPublisher) send(ctx context.Context, event *models.PublishEvent) error {
	subject := fmt.Sprintf("xbot.posts.%s", event.Kind)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal publish event: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.DebugContext(ctx, "Event sent",
		"subject", subject,
		"identifier", event.Identifier,
		"run_id", event.RunID,
	)
	return nil
}

// Verify interface implementation
var _ ports.Messenger = (*NATSPublisher)(nil)
