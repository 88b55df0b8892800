package heartbeat

import (
	"bytes"
	"encoding/json"
)

// Body is a decoded JSON request object. Values keep the loose types
// produced by encoding/json (string, float64, bool, nil, []any,
// map[string]any), so callers must check types before use.
type Body map[string]any

// Get returns the raw value stored under key, or nil.
func (b Body) Get(key string) any {
	if b == nil {
		return nil
	}
	return b[key]
}

// ParseResult is the outcome of decoding a request body.
//
// Malformed bodies collapse to an empty Body so the record builder
// treats them exactly like a request without a body.
type ParseResult struct {
	Body      Body
	Malformed bool
}

// ParseBody decodes raw as a JSON object. An empty (or blank) payload is
// an empty body. Anything that is not a single JSON object is malformed.
func ParseBody(raw []byte) ParseResult {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ParseResult{Body: Body{}}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ParseResult{Body: Body{}, Malformed: true}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return ParseResult{Body: Body{}, Malformed: true}
	}

	return ParseResult{Body: Body(obj)}
}

// truthy reports whether a JSON value counts as set. null, false, zero
// and empty strings, arrays and objects do not.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
