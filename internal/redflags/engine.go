package redflags

import "pediatric-triage/internal/models"

// OverrideReasoning is the reasoning attached to every rule-based override.
const OverrideReasoning = "Immediate medical attention required for life-threatening symptoms flagged by critical clinical rules."

// Engine evaluates rules in order and stops at the first match.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Check returns a RED override verdict and the id of the first matching
// rule, or nil and "" when no rule fires. Each call returns a new verdict.
func (e *Engine) Check(answers models.Answers) (*models.Verdict, string) {
	for _, r := range e.rules {
		if r.Match(answers) {
			return overrideVerdict(), r.ID()
		}
	}
	return nil, ""
}

func overrideVerdict() *models.Verdict {
	return &models.Verdict{
		TriageLevel: models.LevelRed,
		Reasoning:   OverrideReasoning,
		Confidence:  models.ConfidenceRuleOverride,
		HomeAdvice:  []string{},
		AdviceTexts: []string{},
	}
}

var defaultEngine = NewEngine()

// Check runs the default pediatric rules.
func Check(answers models.Answers) (*models.Verdict, string) {
	return defaultEngine.Check(answers)
}
