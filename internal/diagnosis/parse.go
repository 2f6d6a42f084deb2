package diagnosis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// #region repair

// Trailing commas before ] or } are the most common model JSON defect.
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// extractBlock pulls the JSON payload out of a model response, handling
// fenced code blocks (```json and plain ```) as well as raw output.
func extractBlock(response string) string {
	if idx := strings.Index(response, "```json"); idx >= 0 {
		rest := response[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(response, "```"); idx >= 0 {
		rest := response[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(response)
}

func sanitize(raw string) string {
	return trailingCommaPattern.ReplaceAllString(raw, "$1")
}

// #endregion repair

// #region parse

// Parse turns raw diagnostician output into hypotheses. It tolerates fenced
// markdown, trailing commas, and a single object where an array was asked
// for. Confidence labels are normalized, Spanish ones included. A non-nil
// error means the response could not be parsed at all; callers may retry
// generation once and then fall back to Placeholder.
func Parse(response string) ([]Hypothesis, error) {
	cleaned := sanitize(extractBlock(response))

	var list []Hypothesis
	if err := json.Unmarshal([]byte(cleaned), &list); err != nil {
		var single Hypothesis
		if err2 := json.Unmarshal([]byte(cleaned), &single); err2 != nil {
			return nil, fmt.Errorf("parse hypotheses: %w", err)
		}
		list = []Hypothesis{single}
	}

	for i := range list {
		list[i].Confidence = normalizeConfidence(list[i].Confidence)
		if list[i].Code == "" {
			list[i].Code = "N/A"
		}
	}
	return list, nil
}

// Placeholder wraps an unparseable model response in a single LOW entry so
// the session can finish and the operator can inspect the raw output.
func Placeholder(raw string, err error) []Hypothesis {
	return []Hypothesis{{
		Label:           "JSON parse error - raw model output attached",
		Code:            "N/A",
		Confidence:      ConfidenceLow,
		EvidenceFor:     []string{raw},
		EvidenceAgainst: []string{err.Error()},
	}}
}

func normalizeConfidence(c Confidence) Confidence {
	switch strings.ToUpper(strings.TrimSpace(string(c))) {
	case "HIGH", "ALTA":
		return ConfidenceHigh
	case "MEDIUM", "MEDIA":
		return ConfidenceMedium
	case "LOW", "BAJA":
		return ConfidenceLow
	default:
		return ConfidenceLow
	}
}

// #endregion parse
