// Package review implements the response-contract layer between the LLM
// provider and the typed critique/evaluation results, plus the orchestration
// of the interview flows.
package review

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Field declares one list-valued field of a normalized record.
// Max caps the element count after normalization; 0 means uncapped.
type Field struct {
	Name string
	Max  int
}

// Flatten coerces an arbitrary decoded JSON value into a single plain string.
// This is the one place nested-object drift from the model is absorbed, so it
// is total: every value some provider could emit maps to a string.
//
//   - strings pass through
//   - numbers and booleans use their canonical text form
//   - array elements are flattened and joined with ", "
//   - object values (keys discarded, sorted-key order) are flattened,
//     empties dropped, and joined with ". "
//   - null and anything unrecognized become ""
func Flatten(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = Flatten(elem)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var parts []string
		for _, k := range keys {
			if flat := Flatten(val[k]); flat != "" {
				parts = append(parts, flat)
			}
		}
		return strings.Join(parts, ". ")
	default:
		return ""
	}
}

// NormalizeRecord assembles a fixed-key record of string lists from a decoded
// JSON object. For each declared field, an array value is flattened element
// by element with empty results dropped; a missing or non-array value
// degrades to an empty list rather than failing the response. Fields with a
// positive Max are truncated after normalization.
func NormalizeRecord(raw map[string]any, fields []Field) map[string][]string {
	record := make(map[string][]string, len(fields))
	for _, field := range fields {
		items := make([]string, 0)
		if arr, ok := raw[field.Name].([]any); ok {
			for _, elem := range arr {
				if flat := Flatten(elem); flat != "" {
					items = append(items, flat)
				}
			}
		}
		if field.Max > 0 && len(items) > field.Max {
			items = items[:field.Max]
		}
		record[field.Name] = items
	}
	return record
}
