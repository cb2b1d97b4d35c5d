package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RateStructure is the opaque pricing-rule record produced by the upstream
// EFL-parsing pipeline. Its schema is evolving and carries multiple historical
// aliases for the same concept, so callers must tolerate unknown fields and
// never assume a canonical shape. Accessors return (value, true) only when the
// field is present and coercible.
type RateStructure map[string]any

// Number returns the field coerced to a float64. It accepts float64, int,
// json.Number and numeric strings, matching the loose typing of the upstream
// parser output.
func (r RateStructure) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	return CoerceNumber(v)
}

// String returns the field as a string.
func (r RateStructure) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the field coerced to a bool. String spellings of true/false
// are accepted since some historical records store flags as strings.
func (r RateStructure) Bool(key string) (bool, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// Slice returns the field as a []any.
func (r RateStructure) Slice(key string) ([]any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	s, ok := v.([]any)
	if !ok || len(s) == 0 {
		return nil, false
	}
	return s, true
}

// Map returns the field as a nested object.
func (r RateStructure) Map(key string) (RateStructure, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		return RateStructure(t), true
	case RateStructure:
		return t, true
	}
	return nil, false
}

// Raw returns the candidate raw values for every alias, in order, including
// absent ones as nil. Extractors feed this into resolve.ResolveUnique.
func (r RateStructure) Raw(aliases ...string) []any {
	out := make([]any, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, r[a])
	}
	return out
}

// CoerceNumber converts a loosely-typed value into a float64.
func CoerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
