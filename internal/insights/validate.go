package insights

import (
	"strings"

	"stocklens/internal/util/jsonutil"
)

// Result is the externally-visible output of the pipeline. The three
// fields carry LLM-authored markdown/emoji text verbatim; the pipeline
// never reformats or sanitizes them.
type Result struct {
	Summary string `json:"summary"`
	Trends  string `json:"trends"`
	Actions string `json:"actions"`
}

var requiredFields = []string{"summary", "trends", "actions"}

// ValidateCandidate parses the candidate as a JSON object and confirms the
// three required string fields are present.
func ValidateCandidate(candidate string) (Result, *Error) {
	var parsed map[string]any
	if err := jsonutil.UnmarshalFlex([]byte(candidate), &parsed); err != nil {
		e := newError(KindParseFailed, "completion did not contain valid JSON")
		e.Detail = candidate
		e.Err = err
		return Result{}, e
	}

	missing := make([]string, 0, len(requiredFields))
	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		v, ok := parsed[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		s, ok := v.(string)
		if !ok {
			missing = append(missing, field)
			continue
		}
		values[field] = s
	}
	if len(missing) > 0 {
		e := newError(KindIncompleteResult, "completion JSON is missing required fields")
		e.Detail = "missing or non-string: " + strings.Join(missing, ", ")
		return Result{}, e
	}

	return Result{
		Summary: values["summary"],
		Trends:  values["trends"],
		Actions: values["actions"],
	}, nil
}
