// Package jsonutil decodes JSON authored by language models, which may
// arrive with double-escaped unicode sequences or wrapped in an extra
// layer of string quoting.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// UnmarshalFlex tries a direct unmarshal first, then normalizes escape
// damage and retries. The original parse error is returned when
// normalization cannot recover either.
func UnmarshalFlex(raw []byte, v any) error {
	direct := json.Unmarshal(raw, v)
	if direct == nil {
		return nil
	}
	norm, err := NormalizeUnicode(raw)
	if err != nil {
		return direct
	}
	if err := json.Unmarshal(norm, v); err != nil {
		return direct
	}
	return nil
}

// NormalizeUnicode parses JSON bytes and recursively unescapes remaining
// double-escaped unicode sequences (e.g. "\\u003e") inside string values.
// A payload that is itself a JSON-encoded string is unwrapped first.
func NormalizeUnicode(raw []byte) ([]byte, error) {
	var val any
	if err := json.Unmarshal(raw, &val); err != nil {
		var s string
		if err2 := json.Unmarshal(raw, &s); err2 != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(s), &val); err != nil {
			return nil, errors.New("jsonutil: cannot parse JSON payload")
		}
	} else if s, ok := val.(string); ok {
		// The whole payload was a quoted string; try to parse its content.
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			val = inner
		}
	}
	return marshalNoEscape(deepUnescape(val))
}

// unescapeString converts unicode escapes like ">" into characters,
// including double-escaped forms.
func unescapeString(s string) (string, error) {
	esc := strings.ReplaceAll(s, `\`, `\\`)
	esc = strings.ReplaceAll(esc, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

func deepUnescape(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeString(x); err == nil {
			return s
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepUnescape(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepUnescape(vv)
		}
		return out
	default:
		return v
	}
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
