package analysis

import (
	"bytes"
	"encoding/json"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DecodeInput parses a JSON analysis request. The text field must be a JSON
// string; every other problem with the payload is reported the same way.
func DecodeInput(data []byte) (types.AnalysisInput, error) {
	var in types.AnalysisInput

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return in, &InvalidInputError{Message: "request must be a JSON object", Cause: err}
	}

	raw, ok := fields["text"]
	if !ok {
		return in, &InvalidInputError{Message: "text is required"}
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '"' {
		return in, &InvalidInputError{Message: "text must be a string"}
	}

	if err := json.Unmarshal(data, &in); err != nil {
		return types.AnalysisInput{}, &InvalidInputError{Message: "malformed request", Cause: err}
	}
	if err := checkInput(&in); err != nil {
		return types.AnalysisInput{}, err
	}
	return in, nil
}
