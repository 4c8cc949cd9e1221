package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/streamnova/streamnova/internal/apperrors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collection.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	records, err := Load(path)
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if records != nil {
		t.Errorf("Expected no records, got %v", records)
	}
	if Exists(path) {
		t.Error("Exists reported a missing file")
	}
}

func TestLoad_Array(t *testing.T) {
	path := writeFile(t, `[{"title": "A", "url": "u1"}, {"title": "B", "season": 2}]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if title, _ := records[1].String("title"); title != "B" {
		t.Errorf("Expected title B, got %q", title)
	}
	if season, ok := records[1].PositiveInt("season"); !ok || season != 2 {
		t.Errorf("Expected season 2, got %d (%v)", season, ok)
	}
	if !Exists(path) {
		t.Error("Exists did not find the file")
	}
}

func TestLoad_ArrayKeepsPositions(t *testing.T) {
	path := writeFile(t, `[{"title": "A"}, 42, null, "x", {"title": "B"}]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected 5 positions, got %d", len(records))
	}
	for _, i := range []int{1, 2, 3} {
		if records[i] != nil {
			t.Errorf("Expected placeholder at %d, got %v", i, records[i])
		}
	}
	if title, _ := records[4].String("title"); title != "B" {
		t.Errorf("Expected B at position 4, got %q", title)
	}
}

func TestLoad_InvalidArray(t *testing.T) {
	path := writeFile(t, `[{"title": "A"},`)

	if _, err := Load(path); err == nil {
		t.Error("Expected an error for a truncated array")
	}
}

func TestLoad_Lines(t *testing.T) {
	content := strings.Join([]string{
		`# scraped by collector`,
		`{"title": "A", "url": "u1"}`,
		``,
		`not json at all`,
		`   {"title": "B", "url": "u2"}   `,
		`[1, 2]`,
		`null`,
		`{"title": "C", "url": "u3"}`,
	}, "\n")
	path := writeFile(t, content)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(records) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(records))
	}
	for i, title := range want {
		if got, _ := records[i].String("title"); got != title {
			t.Errorf("Record %d: expected %q, got %q", i, title, got)
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	tests := []string{"", "   \n\n  ", "\xEF\xBB\xBF"}
	for _, content := range tests {
		records, err := Decode(strings.NewReader(content))
		if err != nil {
			t.Errorf("Decode(%q) failed: %v", content, err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("Decode(%q): expected empty collection, got %v", content, records)
		}
	}
}

func TestDecode_BOMArray(t *testing.T) {
	records, err := Decode(strings.NewReader("\xEF\xBB\xBF[{\"title\": \"A\"}]"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}
}
