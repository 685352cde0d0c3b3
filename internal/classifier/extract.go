package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoJSONObject   = errors.New("NO_JSON_OBJECT")
	ErrIncompleteJSON = errors.New("INCOMPLETE_JSON")
	ErrInvalidJSON    = errors.New("INVALID_JSON")
)

// ExtractJSON returns the first brace-balanced object in text. Markdown
// code fences are stripped first. Braces are counted without regard to
// string literals.
func ExtractJSON(text string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return nil, ErrNoJSONObject
	}

	depth, end := 0, -1
scan:
	for i := start; i < len(cleaned); i++ {
		switch cleaned[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return nil, ErrIncompleteJSON
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return obj, nil
}
