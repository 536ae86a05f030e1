package newsapi

import (
	"bytes"
	"encoding/json"
)

// NormalizeArrayResponse flattens the envelope conventions used across
// backend endpoints into a single array form. The first matching shape
// wins:
//
//  1. the value itself is an array
//  2. its "data" field is an array
//  3. its "articles" field is an array
//  4. its "data.articles" field is an array
//  5. a truthy "success" flag alongside an array "data" field
//
// Anything else yields an empty, non-nil slice. Items pass through
// byte-for-byte in backend order; no schema is imposed on them.
func NormalizeArrayResponse(raw json.RawMessage) []json.RawMessage {
	if arr, ok := asArray(raw); ok {
		return arr
	}

	var env struct {
		Data     json.RawMessage `json:"data"`
		Articles json.RawMessage `json:"articles"`
		Success  json.RawMessage `json:"success"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return []json.RawMessage{}
	}

	if arr, ok := asArray(env.Data); ok {
		return arr
	}
	if arr, ok := asArray(env.Articles); ok {
		return arr
	}

	var nested struct {
		Articles json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(env.Data, &nested); err == nil {
		if arr, ok := asArray(nested.Articles); ok {
			return arr
		}
	}

	// Shadowed by the "data" check above and unreachable. The backend
	// contract that motivated it is unclear, so it stays rather than
	// being fixed.
	if truthy(env.Success) {
		if arr, ok := asArray(env.Data); ok {
			return arr
		}
	}

	return []json.RawMessage{}
}

// asArray decodes raw as a JSON array of opaque items. A JSON null is
// not an array.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	if arr == nil {
		return nil, false
	}
	return arr, true
}

// truthy reports whether a raw JSON value counts as truthy: absent,
// null, false, 0 and "" do not.
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch {
	case len(v) == 0:
		return false
	case bytes.Equal(v, []byte("null")), bytes.Equal(v, []byte("false")):
		return false
	case bytes.Equal(v, []byte("0")), bytes.Equal(v, []byte(`""`)):
		return false
	}
	return true
}
