package llm

import (
	"fmt"
	"strings"
)

// ExtractionError indicates a completion carried no recognizable JSON payload.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract JSON payload: %s", e.Reason)
}

// ExtractJSONObject returns the substring spanning the first '{' to the last
// '}' of a completion, the common case of one JSON object surrounded by prose
// commentary. The span is not brace-balanced: a reply containing two separate
// objects yields the merged span and the caller's parse reports the failure.
// It does not verify that the span parses as JSON.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", &ExtractionError{Reason: "no JSON object found in response"}
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", &ExtractionError{Reason: "unterminated JSON object in response"}
	}
	return text[start : end+1], nil
}

// CleanCodeBlock removes markdown code fence wrappers from a completion.
// Models often wrap JSON or Mermaid output in ```json / ```mermaid blocks
// even when instructed not to.
func CleanCodeBlock(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line (json, mermaid, ...)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
