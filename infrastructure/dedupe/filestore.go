// Package dedupe persists the set of identifiers already published per
// content kind. Reads fail open: a missing or unreadable record is treated
// as "nothing published yet", risking a duplicate rather than starving a
// kind forever.
package dedupe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
)

// FileStore keeps one JSON array of identifiers per kind, read and rewritten
// whole on every update. Acceptable at this volume; the set only grows.
type FileStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[models.Kind]*sync.Mutex
}

// NewFileStore creates a store writing under dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dedupe dir: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: slog.Default().With("component", "dedupe_filestore"),
		locks:  make(map[models.Kind]*sync.Mutex),
	}, nil
}

// HasPublished reports whether identifier was already recorded for kind.
func (s *FileStore) HasPublished(ctx context.Context, kind models.Kind, identifier string) bool {
	lock := s.kindLock(kind)
	lock.Lock()
	defer lock.Unlock()

	for _, existing := range s.read(ctx, kind) {
		if existing == identifier {
			return true
		}
	}
	return false
}

// RecordPublished appends identifier to the kind's set and persists it
// before returning. The write goes through a temp file and rename so a
// crash mid-write cannot corrupt the record.
func (s *FileStore) RecordPublished(ctx context.Context, kind models.Kind, identifier string) error {
	lock := s.kindLock(kind)
	lock.Lock()
	defer lock.Unlock()

	published := s.read(ctx, kind)
	for _, existing := range published {
		if existing == identifier {
			return nil
		}
	}
	published = append(published, identifier)

	data, err := json.Marshal(published)
	if err != nil {
		return fmt.Errorf("failed to marshal published set: %w", err)
	}

	path := s.path(kind)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write published set: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist published set: %w", err)
	}

	s.logger.DebugContext(ctx, "Recorded publish", "kind", kind, "identifier", identifier, "total", len(published))
	return nil
}

// read loads the kind's set, failing open to empty on any error.
func (s *FileStore) read(ctx context.Context, kind models.Kind) []string {
	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "Failed to read published set, treating as empty", "kind", kind, "error", err)
		}
		return nil
	}

	var published []string
	if err := json.Unmarshal(data, &published); err != nil {
		s.logger.WarnContext(ctx, "Corrupt published set, treating as empty", "kind", kind, "error", err)
		return nil
	}
	return published
}

func (s *FileStore) path(kind models.Kind) string {
	return filepath.Join(s.dir, "posted_"+string(kind)+".json")
}

func (s *FileStore) kindLock(kind models.Kind) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[kind]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[kind] = lock
	}
	return lock
}

// Verify interface implementation
var _ ports.DedupeStore = (*FileStore)(nil)
