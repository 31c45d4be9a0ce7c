package ports

import "context"

// Notifier raises an ops alert when a scheduled action fails. Alerts are
// best-effort: a notifier error is logged, never propagated.
type Notifier interface {
	IsEnabled() bool
	NotifyFailure(ctx context.Context, action string, err error) error
}
