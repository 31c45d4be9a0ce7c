package dedupe

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Manasess896/X-bot/domain/models"
)

func TestFileStore_RecordThenHasPublished(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if store.HasPublished(ctx, models.KindSong, "Track A") {
		t.Error("fresh store should report nothing published")
	}

	if err := store.RecordPublished(ctx, models.KindSong, "Track A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !store.HasPublished(ctx, models.KindSong, "Track A") {
		t.Error("expected Track A to be published")
	}
	if store.HasPublished(ctx, models.KindMovie, "Track A") {
		t.Error("kinds must be isolated from each other")
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordPublished(ctx, models.KindMovie, "Some Movie"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reopened.HasPublished(ctx, models.KindMovie, "Some Movie") {
		t.Error("published set must survive a restart")
	}
}

func TestFileStore_FileFormatIsJSONArray(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordPublished(ctx, models.KindSong, "One"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordPublished(ctx, models.KindSong, "Two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "posted_song.json"))
	if err != nil {
		t.Fatalf("expected posted_song.json: %v", err)
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		t.Fatalf("file is not a JSON string array: %v", err)
	}
	if len(titles) != 2 || titles[0] != "One" || titles[1] != "Two" {
		t.Errorf("expected append order preserved, got %v", titles)
	}
}

func TestFileStore_FailsOpenOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "posted_fact.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.HasPublished(ctx, models.KindFact, "anything") {
		t.Error("corrupt file must fail open, not report published")
	}
	// And recording over the corrupt file must recover it.
	if err := store.RecordPublished(ctx, models.KindFact, "fresh"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.HasPublished(ctx, models.KindFact, "fresh") {
		t.Error("expected record after recovery")
	}
}

func TestFileStore_ConcurrentRecordsSameKind(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := store.RecordPublished(ctx, models.KindPun, id); err != nil {
				t.Errorf("record %q failed: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		if !store.HasPublished(ctx, models.KindPun, id) {
			t.Errorf("expected %q to be recorded", id)
		}
	}
}
