package review

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidScoreError indicates the model returned a score that is not an
// integer in [1,10]. The score is the one load-bearing field, so the whole
// evaluation fails rather than clamping or defaulting.
type InvalidScoreError struct {
	Raw any
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid evaluation score: %v", e.Raw)
}

// ValidateScore parses a raw score value into an integer and bounds-checks it
// against the closed range [1,10]. Fractional parts are truncated toward zero
// before the range check, matching integer parsing of a numeric string.
func ValidateScore(raw any) (int, error) {
	var score int

	switch v := raw.(type) {
	case int:
		score = v
	case int64:
		score = int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &InvalidScoreError{Raw: raw}
		}
		score = int(v)
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			f, ferr := strconv.ParseFloat(trimmed, 64)
			if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, &InvalidScoreError{Raw: raw}
			}
			n = int(f)
		}
		score = n
	default:
		return 0, &InvalidScoreError{Raw: raw}
	}

	if score < 1 || score > 10 {
		return 0, &InvalidScoreError{Raw: raw}
	}
	return score, nil
}
