package model

import (
	"strconv"
	"strings"
)

// HeaderValue is a header entry value: numeric when the raw text parses as
// a float, textual otherwise. Text always holds the raw trimmed string.
type HeaderValue struct {
	Text     string
	Number   float64
	IsNumber bool
}

// ParseHeaderValue builds a HeaderValue from raw text, tagging it numeric
// when the text converts to a float.
func ParseHeaderValue(s string) HeaderValue {
	v := HeaderValue{Text: s}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		v.Number = f
		v.IsNumber = true
	}
	return v
}

// String returns the raw textual form of the value.
func (v HeaderValue) String() string { return v.Text }

// HeaderMap is an insertion-ordered mapping from header keys to values.
// Setting an existing key replaces its value but keeps its original
// position.
type HeaderMap struct {
	keys   []string
	values map[string]HeaderValue
}

// NewHeaderMap creates an empty HeaderMap.
func NewHeaderMap() *HeaderMap {
	return &HeaderMap{values: make(map[string]HeaderValue)}
}

// Set inserts or replaces the value for key.
func (h *HeaderMap) Set(key string, v HeaderValue) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = v
}

// Get returns the value for key and whether it is present.
func (h *HeaderMap) Get(key string) (HeaderValue, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (h *HeaderMap) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Len returns the number of entries.
func (h *HeaderMap) Len() int { return len(h.keys) }
