package ports

import (
	"context"

	"github.com/Manasess896/X-bot/domain/models"
)

// DedupeStore records which identifiers have already been published per
// content kind, so an action never posts the same item twice.
type DedupeStore interface {
	// HasPublished reports whether identifier was already published for kind.
	// It fails open: if the backing record is missing or unreadable it
	// returns false, risking a duplicate rather than blocking all future
	// publishing for the kind.
	HasPublished(ctx context.Context, kind models.Kind, identifier string) bool

	// RecordPublished appends identifier to the kind's published set and
	// persists it durably before returning. Safe under concurrent callers
	// for the same kind.
	RecordPublished(ctx context.Context, kind models.Kind, identifier string) error
}
