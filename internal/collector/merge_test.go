package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/streamnova/streamnova/internal/store"
)

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "animeonline.json")
	second := filepath.Join(dir, "latanime.json")
	output := filepath.Join(dir, "out", "streamnova_all.json")

	if err := os.WriteFile(first, []byte(`[{"title": "Naruto", "url": "u1"}, {"title": "Bleach", "url": "u2"}]`), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	lines := "{\"title\": \"NARUTO\", \"url\": \"u1\"}\n{\"title\": \"Naruto\", \"url\": \"u3\"}\n"
	if err := os.WriteFile(second, []byte(lines), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	result, err := MergeFiles(context.Background(), []string{first, second, filepath.Join(dir, "missing.json")}, output)
	if err != nil {
		t.Fatalf("MergeFiles failed: %v", err)
	}
	if result.Read != 4 || result.Written != 3 {
		t.Errorf("Expected 4 read and 3 written, got %d and %d", result.Read, result.Written)
	}
	if len(result.Missing) != 1 {
		t.Errorf("Expected 1 missing input, got %v", result.Missing)
	}

	merged, err := store.Load(output)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if title, _ := merged[0].String("title"); title != "Naruto" {
		t.Errorf("Expected the first occurrence to win, got %q", title)
	}
}

func TestMergeFiles_AllMissing(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")

	if _, err := MergeFiles(context.Background(), []string{filepath.Join(dir, "a.json")}, output); err == nil {
		t.Fatal("Expected an error when no input exists")
	}
	if store.Exists(output) {
		t.Error("Expected no output to be written")
	}
}

func TestMergeFiles_Unreadable(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"title": `), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := MergeFiles(context.Background(), []string{bad}, filepath.Join(dir, "out.json")); err == nil {
		t.Error("Expected an error for a truncated array")
	}
}
