package classifier

import (
	"pediatric-triage/internal/common/validation"
	"pediatric-triage/internal/models"
)

const verdictSchemaJSON = `{
  "type": "object",
  "required": ["triage_level", "reasoning", "confidence", "home_advice"],
  "properties": {
    "triage_level": {"type": "string", "enum": ["RED", "YELLOW", "GREEN"]},
    "reasoning": {"type": "string"},
    "confidence": {"type": "string"},
    "home_advice": {"type": "array", "items": {"type": "string"}}
  }
}`

var verdictSchema = validation.MustCompile(verdictSchemaJSON)

// toVerdict converts an object that already passed verdictSchema.
func toVerdict(obj map[string]interface{}) *models.Verdict {
	v := &models.Verdict{
		TriageLevel: models.Level(obj["triage_level"].(string)),
		Reasoning:   obj["reasoning"].(string),
		Confidence:  obj["confidence"].(string),
		HomeAdvice:  []string{},
		AdviceTexts: []string{},
	}
	if items, ok := obj["home_advice"].([]interface{}); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				v.HomeAdvice = append(v.HomeAdvice, s)
			}
		}
	}
	return v
}
