package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Cursor marks the exclusive lower bound for the next page, plus the interest
// vector the page sequence was ranked against. Carrying the vector is what
// keeps an anonymous session's randomized fallback stable across pages;
// without it every page would re-rank against a fresh random vector.
type Cursor struct {
	LastDistance float64
	LastItemId   string
	Embedding    []float32
}

type cursorPayload struct {
	LastDistance float64   `json:"d"`
	LastItemId   string    `json:"id"`
	Embedding    []float32 `json:"e,omitempty"`
}

var errBadCursor = errors.New("malformed cursor")

// EncodeCursor serializes a cursor into an opaque URL-safe string.
func EncodeCursor(c Cursor) string {
	raw, err := json.Marshal(cursorPayload{
		LastDistance: c.LastDistance,
		LastItemId:   c.LastItemId,
		Embedding:    c.Embedding,
	})
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses and validates an opaque cursor string. Cosine distance
// lives in [0,2]; anything outside means a forged or corrupted cursor.
func DecodeCursor(s string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errBadCursor
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errBadCursor
	}
	if p.LastItemId == "" {
		return nil, errBadCursor
	}
	if p.LastDistance < 0 || p.LastDistance > 2 {
		return nil, errBadCursor
	}
	return &Cursor{
		LastDistance: p.LastDistance,
		LastItemId:   p.LastItemId,
		Embedding:    p.Embedding,
	}, nil
}
