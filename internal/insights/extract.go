package insights

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoCandidate means no JSON-bearing candidate could be located in the
// completion text.
var ErrNoCandidate = errors.New("no JSON candidate in completion text")

var (
	reFencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	reFencedAny  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// extractStrategy returns a candidate string and whether it found one.
type extractStrategy func(text string) (string, bool)

// extractChain is evaluated in order; later strategies exist because the
// completion service's adherence to the fencing instruction is not
// guaranteed. New fallback forms slot in here without touching the
// pipeline.
var extractChain = []extractStrategy{
	fencedJSONBlock,
	fencedObjectBlock,
	wholeBody,
}

// ExtractCandidate locates the text believed to contain a JSON object.
func ExtractCandidate(text string) (string, error) {
	for _, strategy := range extractChain {
		if candidate, ok := strategy(text); ok {
			return candidate, nil
		}
	}
	return "", ErrNoCandidate
}

// fencedJSONBlock takes the interior of the first block explicitly marked
// as json.
func fencedJSONBlock(text string) (string, bool) {
	m := reFencedJSON.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", false
	}
	return m[1], true
}

// fencedObjectBlock accepts an unmarked fence whose interior looks like a
// JSON object.
func fencedObjectBlock(text string) (string, bool) {
	m := reFencedAny.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	interior := strings.TrimSpace(m[1])
	if !strings.HasPrefix(interior, "{") {
		return "", false
	}
	return interior, true
}

// wholeBody treats the entire trimmed completion as the candidate.
func wholeBody(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
