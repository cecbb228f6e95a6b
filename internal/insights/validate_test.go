package insights

import "testing"

func TestValidateCandidateSuccess(t *testing.T) {
	candidate := `{"summary": "S **bold** 🔄", "trends": "T", "actions": "A\n- item"}`
	res, err := ValidateCandidate(candidate)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	// LLM-authored text passes through verbatim.
	if res.Summary != "S **bold** 🔄" || res.Trends != "T" || res.Actions != "A\n- item" {
		t.Fatalf("result = %+v", res)
	}
}

func TestValidateCandidateInvalidJSON(t *testing.T) {
	// Trailing comma, a common LLM formatting slip.
	_, err := ValidateCandidate(`{"summary": "s", "trends": "t", "actions": "a",}`)
	if err == nil || err.Kind != KindParseFailed {
		t.Fatalf("expected parse failure, got %v", err)
	}
	if err.Detail == "" {
		t.Fatalf("parse error should carry the candidate for diagnostics")
	}
}

func TestValidateCandidateMissingKey(t *testing.T) {
	_, err := ValidateCandidate(`{"summary": "s", "trends": "t"}`)
	if err == nil || err.Kind != KindIncompleteResult {
		t.Fatalf("expected incomplete result, got %v", err)
	}
}

func TestValidateCandidateNonStringValue(t *testing.T) {
	_, err := ValidateCandidate(`{"summary": "s", "trends": "t", "actions": 42}`)
	if err == nil || err.Kind != KindIncompleteResult {
		t.Fatalf("expected incomplete result for non-string field, got %v", err)
	}
}
