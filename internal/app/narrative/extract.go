package narrative

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("(?i)^```(?:json)?\\s*|\\s*```$")

// extractJSONObject locates the first well-formed JSON object inside model
// output that may be wrapped in markdown fencing or stray prose.
func extractJSONObject(text string) (json.RawMessage, bool) {
	text = codeFence.ReplaceAllString(strings.TrimSpace(text), "")
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
