package model

import (
	"bytes"
	"encoding/json"
)

// strictUnmarshal decodes data into v, rejecting unknown fields — the
// Phase A "unknown fields outside extensions are rejected" rule from
// spec.md §4.1. Unrecognised keys inside an extensions map still pass:
// DisallowUnknownFields applies to struct fields only, and extensions is
// a map[string]json.RawMessage whose values are kept undecoded.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
