package planner

import (
	"encoding/json"
	"strings"
)

// ParseJSON recovers a JSON object from free-form model output and
// unmarshals it into v. Models wrap JSON in markdown fences or prose often
// enough that callers must not assume clean output. Returns false when no
// parseable object is present; the caller falls back, it never fails.
//
// This is the single recovery point for structured model output. Engines
// consuming a plan only ever see "parsed" or "absent".
func ParseJSON(text string, v interface{}) bool {
	candidate := strings.TrimSpace(text)

	// Strip a markdown code fence, with or without a language tag.
	if strings.HasPrefix(candidate, "```") {
		candidate = strings.TrimPrefix(candidate, "```")
		if idx := strings.Index(candidate, "\n"); idx >= 0 && len(strings.TrimSpace(candidate[:idx])) <= 8 {
			candidate = candidate[idx+1:]
		}
		if idx := strings.LastIndex(candidate, "```"); idx >= 0 {
			candidate = candidate[:idx]
		}
		candidate = strings.TrimSpace(candidate)
	}

	if json.Unmarshal([]byte(candidate), v) == nil {
		return true
	}

	// Last resort: the outermost braces in the raw text.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(text[start:end+1]), v) == nil
}
