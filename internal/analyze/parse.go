package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// errNoJSONObject signals that the response text contains no brace-delimited payload.
var errNoJSONObject = errors.New("no json object found in response")

// Code-fence markers can appear anywhere in the response, not just around it.
var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*")

// ExtractJSON pulls a JSON object out of free-form model output. Fence markers
// are stripped, then the substring between the first "{" and the last "}" is
// decoded into an untyped map. The map is an untrusted intermediate value; a
// typed AnalysisResult exists only after validation.
func ExtractJSON(raw string) (map[string]any, error) {
	cleaned := codeFenceRe.ReplaceAllString(raw, "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errNoJSONObject
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &data); err != nil {
		return nil, fmt.Errorf("decode analysis payload: %w", err)
	}

	return data, nil
}
