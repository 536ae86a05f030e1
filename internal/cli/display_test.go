package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDecodeArticles(t *testing.T) {
	list := []json.RawMessage{
		json.RawMessage(`{"slug":"a","title":"First","views":120,"extra":"ignored"}`),
		json.RawMessage(`"not an object"`),
		json.RawMessage(`{"slug":"b","title":"Second","featured":true}`),
	}

	articles := decodeArticles(list)
	if len(articles) != 2 {
		t.Fatalf("expected 2 decodable articles, got %d", len(articles))
	}
	if articles[0].Slug != "a" || articles[1].Slug != "b" {
		t.Errorf("slugs = %q, %q", articles[0].Slug, articles[1].Slug)
	}
	if !articles[1].Featured {
		t.Error("featured flag lost in decode")
	}
}

func TestDecodeTickers(t *testing.T) {
	raw := json.RawMessage(`[{"symbol":"ACME","price":184.22,"change":1.4}]`)

	tickers := decodeTickers(raw)
	if len(tickers) != 1 || tickers[0].Symbol != "ACME" {
		t.Fatalf("tickers = %+v", tickers)
	}

	if got := decodeTickers(json.RawMessage(`{"not":"an array"}`)); got != nil {
		t.Errorf("non-array input should decode to nil, got %+v", got)
	}
}

func TestRenderArticleTable(t *testing.T) {
	articles := []articleView{
		{Slug: "a", Title: "Chipmakers race to 2nm", Category: "technology", Views: 4820, Featured: true},
		{Slug: "b", Title: "Bond yields retreat", Category: "markets", Views: 120},
	}

	out := renderArticleTable(articles)
	for _, want := range []string{"Chipmakers race to 2nm", "technology", "4.8k", "★"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTickerTable(t *testing.T) {
	tickers := []tickerView{
		{Symbol: "ACME", Name: "Acme Corp", Price: 184.22, Change: 1.4},
		{Symbol: "GLBX", Name: "Globex", Price: 96.05, Change: -0.8},
	}

	out := renderTickerTable(tickers)
	for _, want := range []string{"ACME", "184.22", "+1.40%", "-0.80%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{4820, "4.8k"},
		{12345, "12.3k"},
	}

	for _, tt := range tests {
		if got := formatViews(tt.n); got != tt.want {
			t.Errorf("formatViews(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"minutes", now.Add(-30 * time.Minute).Format(time.RFC3339), "30m ago"},
		{"hours", now.Add(-5 * time.Hour).Format(time.RFC3339), "5h ago"},
		{"days", now.Add(-3 * 24 * time.Hour).Format(time.RFC3339), "3d ago"},
		{"unparsable falls through", "yesterday-ish", "yesterday-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.in); got != tt.want {
				t.Errorf("formatRelativeTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("old dates show the date", func(t *testing.T) {
		old := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
		if got := formatRelativeTime(old.Format(time.RFC3339)); got != "Mar 9, 2024" {
			t.Errorf("formatRelativeTime(old) = %q", got)
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a very long headline indeed", 10); got != "a very lo…" {
		t.Errorf("truncate long = %q", got)
	}
	// Rune-aware: must not split multibyte characters.
	if got := truncate("héllo wörld", 6); len([]rune(got)) != 6 {
		t.Errorf("truncate runes = %q", got)
	}
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRaw(&buf, json.RawMessage(`{"a":1}`)); err != nil {
		t.Fatalf("writeRaw failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"a": 1`) {
		t.Errorf("output not indented: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output missing trailing newline")
	}
}

func TestWriteRawList(t *testing.T) {
	var buf bytes.Buffer
	list := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	if err := writeRawList(&buf, list); err != nil {
		t.Fatalf("writeRawList failed: %v", err)
	}

	var decoded []map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("decoded %d items, want 2", len(decoded))
	}
}
