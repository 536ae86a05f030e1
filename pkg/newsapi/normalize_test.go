package newsapi

import (
	"encoding/json"
	"testing"
)

// items renders a normalized list as compact JSON strings so tests can
// compare shapes without caring about whitespace.
func items(list []json.RawMessage) []string {
	out := make([]string, len(list))
	for i, raw := range list {
		out[i] = string(raw)
	}
	return out
}

func TestNormalizeArrayResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "bare array",
			raw:  `[1,2,3]`,
			want: []string{"1", "2", "3"},
		},
		{
			name: "data envelope",
			raw:  `{"success":true,"data":[9]}`,
			want: []string{"9"},
		},
		{
			name: "articles envelope",
			raw:  `{"articles":[1,2]}`,
			want: []string{"1", "2"},
		},
		{
			name: "articles nested under data",
			raw:  `{"data":{"articles":[1]}}`,
			want: []string{"1"},
		},
		{
			name: "null",
			raw:  `null`,
			want: []string{},
		},
		{
			name: "null data field",
			raw:  `{"data":null}`,
			want: []string{},
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: []string{},
		},
		{
			name: "string scalar",
			raw:  `"hello"`,
			want: []string{},
		},
		{
			name: "number scalar",
			raw:  `42`,
			want: []string{},
		},
		{
			name: "data holds a non-array object",
			raw:  `{"data":{"total":7}}`,
			want: []string{},
		},
		{
			name: "success true with no payload",
			raw:  `{"success":true}`,
			want: []string{},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []string{},
		},
		{
			name: "empty data array",
			raw:  `{"data":[]}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeArrayResponse(json.RawMessage(tt.raw))
			if got == nil {
				t.Fatal("NormalizeArrayResponse returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d items %v, want %d", len(got), items(got), len(tt.want))
			}
			for i, want := range tt.want {
				if string(got[i]) != want {
					t.Errorf("item %d = %s, want %s", i, got[i], want)
				}
			}
		})
	}
}

func TestNormalizeArrayResponseNilInput(t *testing.T) {
	got := NormalizeArrayResponse(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("NormalizeArrayResponse(nil) = %v, want empty slice", got)
	}
}

func TestNormalizeArrayResponsePreservesItems(t *testing.T) {
	raw := `{"data":[{"id":"a","title":"First"},{"id":"b","title":"Second"}]}`
	got := NormalizeArrayResponse(json.RawMessage(raw))
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	// Items pass through untouched, order preserved.
	if string(got[0]) != `{"id":"a","title":"First"}` {
		t.Errorf("item 0 = %s", got[0])
	}
	if string(got[1]) != `{"id":"b","title":"Second"}` {
		t.Errorf("item 1 = %s", got[1])
	}
}

func TestNormalizeArrayResponseDataWinsOverArticles(t *testing.T) {
	// When both keys hold arrays, data is checked first.
	raw := `{"data":[1],"articles":[2,3]}`
	got := NormalizeArrayResponse(json.RawMessage(raw))
	if len(got) != 1 || string(got[0]) != "1" {
		t.Fatalf("got %v, want [1]", items(got))
	}
}

func TestAsArrayRejectsNull(t *testing.T) {
	if arr, ok := asArray(json.RawMessage("null")); ok {
		t.Fatalf("asArray(null) = %v, ok=true; null is not an array", arr)
	}
	if _, ok := asArray(nil); ok {
		t.Fatal("asArray(nil) reported an array")
	}
	if _, ok := asArray(json.RawMessage(`{"a":1}`)); ok {
		t.Fatal("asArray(object) reported an array")
	}
}

func TestTruthy(t *testing.T) {
	falsy := []string{"", "null", "false", "0", `""`}
	for _, raw := range falsy {
		if truthy(json.RawMessage(raw)) {
			t.Errorf("truthy(%q) = true, want false", raw)
		}
	}
	truths := []string{"true", "1", `"yes"`, `{}`, `[]`}
	for _, raw := range truths {
		if !truthy(json.RawMessage(raw)) {
			t.Errorf("truthy(%q) = false, want true", raw)
		}
	}
}
