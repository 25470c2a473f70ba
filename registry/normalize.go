package registry

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Normalize canonicalizes a raw props bag as it comes off the wire or out of
// MongoDB. Numeric and boolean fields may arrive as primitives, as
// stringified "true"/"false"/"42", or as Extended JSON wrapper objects like
// {"$numberInt": "5"}. The result merges the cleaned values over the type's
// defaults, so every declared field is present with its canonical type:
// numbers are float64, booleans are bool, array fields are []any (never nil).
//
// Normalize is pure and idempotent. It is applied once at the boundary where
// component data enters the system; nothing downstream re-normalizes.
func Normalize(typeTag string, raw map[string]any) (map[string]any, bool) {
	defaults, ok := Defaults(typeTag)
	if !ok {
		return nil, false
	}
	if raw == nil {
		return defaults, true
	}

	out := defaults
	for key, rawVal := range raw {
		if def, declared := out[key]; declared {
			out[key] = coerce(rawVal, def)
		} else {
			// Undeclared extras are kept, unboxed but otherwise untouched.
			out[key] = unbox(rawVal)
		}
	}
	return out, true
}

// coerce shapes a raw value after the canonical type of the declared default.
func coerce(raw, def any) any {
	raw = unbox(raw)
	switch def.(type) {
	case bool:
		if b, ok := toBool(raw); ok {
			return b
		}
		return def
	case float64:
		if n, ok := toNumber(raw); ok {
			return n
		}
		return def
	case string:
		if s, ok := raw.(string); ok {
			return s
		}
		return def
	case []any:
		if a, ok := raw.([]any); ok {
			return a
		}
		return []any{}
	default:
		return raw
	}
}

func toBool(v any) (bool, bool) {
	switch tv := v.(type) {
	case bool:
		return tv, true
	case string:
		if tv == "true" {
			return true, true
		}
		if tv == "false" {
			return false, true
		}
	}
	return false, false
}

func toNumber(v any) (float64, bool) {
	switch tv := v.(type) {
	case float64:
		return tv, true
	case float32:
		return float64(tv), true
	case int:
		return float64(tv), true
	case int32:
		return float64(tv), true
	case int64:
		return float64(tv), true
	case string:
		if n, err := strconv.ParseFloat(tv, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// unbox flattens Extended JSON number wrappers and rewrites bson container
// types to their plain Go equivalents, recursively.
func unbox(v any) any {
	switch tv := v.(type) {
	case primitive.M:
		return unboxMap(map[string]any(tv))
	case map[string]any:
		return unboxMap(tv)
	case primitive.A:
		return unboxSlice([]any(tv))
	case []any:
		return unboxSlice(tv)
	case int32:
		return float64(tv)
	case int64:
		return float64(tv)
	case int:
		return float64(tv)
	default:
		return v
	}
}

func unboxMap(m map[string]any) any {
	// A wrapper object holds exactly one $-keyed entry.
	if len(m) == 1 {
		for _, key := range []string{"$numberInt", "$numberLong", "$numberDouble"} {
			if inner, ok := m[key]; ok {
				if s, ok := inner.(string); ok {
					if n, err := strconv.ParseFloat(s, 64); err == nil {
						return n
					}
				}
				if n, ok := toNumber(inner); ok {
					return n
				}
			}
		}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = unbox(v)
	}
	return out
}

func unboxSlice(a []any) []any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = unbox(v)
	}
	return out
}

// NormalizeComponentProps is a convenience for walking stored components at
// the load boundary. Unknown type tags pass through unchanged so the caller
// can still render its diagnostic placeholder.
func NormalizeComponentProps(typeTag string, raw map[string]any) map[string]any {
	if normalized, ok := Normalize(typeTag, raw); ok {
		return normalized
	}
	return raw
}
