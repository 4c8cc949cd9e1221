// Tests for record.go: RawRecord accessors and kind parsing.
package models

import (
	"encoding/json"
	"testing"
)

func decodeRaw(t *testing.T, s string) RawRecord {
	t.Helper()
	var r RawRecord
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return r
}

func TestRawRecord_String(t *testing.T) {
	t.Parallel()
	r := decodeRaw(t, `{"lang":"es","language":"fr","title":42}`)

	if got, ok := r.String("lang", "language"); !ok || got != "es" {
		t.Errorf("String(lang, language) = %q, %v; want es, true", got, ok)
	}
	if got, ok := r.String("language"); !ok || got != "fr" {
		t.Errorf("String(language) = %q, %v; want fr, true", got, ok)
	}
	if _, ok := r.String("title"); ok {
		t.Error("String(title) should report ok=false for a number")
	}
	if _, ok := r.String("missing"); ok {
		t.Error("String(missing) should report ok=false")
	}
}

func TestRawRecord_PositiveInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"integer", `{"n":3}`, 3, true},
		{"float with fraction", `{"n":2.5}`, 0, false},
		{"zero", `{"n":0}`, 0, false},
		{"negative", `{"n":-1}`, 0, false},
		{"string", `{"n":"4"}`, 0, false},
		{"null", `{"n":null}`, 0, false},
		{"missing", `{}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := decodeRaw(t, tt.input).PositiveInt("n")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PositiveInt() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRawRecord_Text(t *testing.T) {
	t.Parallel()
	r := decodeRaw(t, `{"year":2009,"rating":8.5,"label":"TV-14","flag":true}`)

	cases := map[string]string{"year": "2009", "rating": "8.5", "label": "TV-14"}
	for key, want := range cases {
		if got, ok := r.Text(key); !ok || got != want {
			t.Errorf("Text(%s) = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := r.Text("flag"); ok {
		t.Error("Text(flag) should reject booleans")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	tests := map[string]Kind{
		"series":  KindSeries,
		"Series":  KindSeries,
		" tv ":    KindSeries,
		"show":    KindSeries,
		"movie":   KindMovie,
		"":        KindMovie,
		"special": KindMovie,
	}
	for input, want := range tests {
		if got := ParseKind(input); got != want {
			t.Errorf("ParseKind(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseRequestKind(t *testing.T) {
	t.Parallel()
	if k, ok := ParseRequestKind("series"); !ok || k != KindSeries {
		t.Errorf("ParseRequestKind(series) = %v, %v", k, ok)
	}
	if k, ok := ParseRequestKind("movie"); !ok || k != KindMovie {
		t.Errorf("ParseRequestKind(movie) = %v, %v", k, ok)
	}
	if _, ok := ParseRequestKind("tv"); ok {
		t.Error("ParseRequestKind(tv) should be rejected")
	}
}

func TestMediaRecord_SeriesKeyAt(t *testing.T) {
	t.Parallel()
	if got := (MediaRecord{SeriesKey: "naruto"}).SeriesKeyAt(4); got != "naruto" {
		t.Errorf("SeriesKeyAt = %q, want naruto", got)
	}
	if got := (MediaRecord{}).SeriesKeyAt(4); got != "series_4" {
		t.Errorf("SeriesKeyAt = %q, want series_4", got)
	}
}

func TestScrapedItem_Raw(t *testing.T) {
	t.Parallel()
	raw := ScrapedItem{Title: "One Piece", URL: "https://x/op", Lang: "es", Source: "latanime"}.Raw()
	if title, _ := raw.String("title"); title != "One Piece" {
		t.Errorf("title = %q", title)
	}
	if src, _ := raw.String("source"); src != "latanime" {
		t.Errorf("source = %q", src)
	}
}
