package jsonutil

import "testing"

func TestUnmarshalFlexDirect(t *testing.T) {
	var out map[string]string
	if err := UnmarshalFlex([]byte(`{"a":"b"}`), &out); err != nil {
		t.Fatalf("direct: %v", err)
	}
	if out["a"] != "b" {
		t.Fatalf("out = %v", out)
	}
}

func TestUnmarshalFlexStringWrapped(t *testing.T) {
	// A JSON object delivered as a JSON-encoded string.
	raw := []byte(`"{\"a\":\"b\"}"`)
	var out map[string]string
	if err := UnmarshalFlex(raw, &out); err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if out["a"] != "b" {
		t.Fatalf("out = %v", out)
	}
}

func TestUnmarshalFlexInvalid(t *testing.T) {
	var out map[string]any
	if err := UnmarshalFlex([]byte(`{"a":,}`), &out); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
