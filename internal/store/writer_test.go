package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/streamnova/streamnova/internal/models"
)

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db", "collection.json")
	records := []models.RawRecord{
		{"title": "A", "url": "u1", "lang": "en"},
		{"title": "B", "url": "u2", "type": "series", "season": float64(2)},
	}

	if err := Save(context.Background(), path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded))
	}
	if season, ok := loaded[1].PositiveInt("season"); !ok || season != 2 {
		t.Errorf("Expected season 2, got %d", season)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".collection-*.tmp"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected temp files to be cleaned up, found %v", matches)
	}
}

func TestSave_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	if err := os.WriteFile(path, []byte("{\"title\": \"old\"}\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if err := Save(context.Background(), path, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected an empty array, got %q", data)
	}
}

func TestSave_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Save(ctx, path, []models.RawRecord{{"title": "A"}}); err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
	if Exists(path) {
		t.Error("Expected no collection file to be written")
	}
}

func TestSave_LockHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")

	held := flock.New(path + ".lock")
	if err := held.Lock(); err != nil {
		t.Fatalf("Failed to take lock: %v", err)
	}
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := Save(ctx, path, []models.RawRecord{{"title": "A"}}); err == nil {
		t.Fatal("Expected an error while another writer holds the lock")
	}
	if Exists(path) {
		t.Error("Expected no collection file to be written")
	}
}
