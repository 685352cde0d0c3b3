// Package redflags implements the deterministic safety rules that force a
// RED verdict before any model is consulted.
package redflags

import (
	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/models"
)

// Rule is a single red-flag predicate over the answers.
type Rule interface {
	// ID returns a stable identifier, used in logs and metrics.
	ID() string

	// Match reports whether the answers trip this rule.
	Match(answers models.Answers) bool
}

type predicate struct {
	id    string
	match func(models.Answers) bool
}

func (p predicate) ID() string                  { return p.id }
func (p predicate) Match(a models.Answers) bool { return p.match(a) }

// NewRule builds a Rule from a function.
func NewRule(id string, match func(models.Answers) bool) Rule {
	return predicate{id: id, match: match}
}

const (
	RuleCriticalDirect          = "critical-direct"
	RuleAlteredConsciousness    = "altered-consciousness"
	RuleNeckStiffness           = "neck-stiffness"
	RuleBloodInVomitOrStool     = "blood-in-vomit-or-stool"
	RuleRespiratoryDistress     = "respiratory-distress"
	RuleHeadInjuryVomiting      = "head-injury-vomiting"
	RuleChronicIllnessTachypnea = "chronic-illness-tachypnea"
	RuleDehydrationRisk         = "dehydration-risk"
	RuleSeverePainWithFever     = "severe-pain-with-fever"
)

func yes(a models.Answers, id string) bool { return a.Is(id, catalog.Yes) }

// DefaultRules returns the pediatric red-flag rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		// Seizure, unconsciousness, severe injury or heavy bleeding.
		NewRule(RuleCriticalDirect, func(a models.Answers) bool {
			return yes(a, "Q21") || yes(a, "Q22") || yes(a, "Q23")
		}),
		NewRule(RuleAlteredConsciousness, func(a models.Answers) bool {
			return yes(a, "Q3")
		}),
		NewRule(RuleNeckStiffness, func(a models.Answers) bool {
			return yes(a, "Q9")
		}),
		NewRule(RuleBloodInVomitOrStool, func(a models.Answers) bool {
			return yes(a, "Q11")
		}),
		// Chest retractions or cyanosis.
		NewRule(RuleRespiratoryDistress, func(a models.Answers) bool {
			return yes(a, "Q15") || yes(a, "Q16")
		}),
		NewRule(RuleHeadInjuryVomiting, func(a models.Answers) bool {
			return yes(a, "Q19") && (yes(a, "Q20") || a.Is("Q10", "4+"))
		}),
		NewRule(RuleChronicIllnessTachypnea, func(a models.Answers) bool {
			return yes(a, "Q5") && yes(a, "Q14")
		}),
		// No urine in 8 hours plus any recorded vomiting.
		NewRule(RuleDehydrationRisk, func(a models.Answers) bool {
			return a.Is("Q13", catalog.No) && a.Has("Q10") && !a.Is("Q10", "None")
		}),
		// Fires on severe pain plus any fever answer, including a mild one.
		NewRule(RuleSeverePainWithFever, func(a models.Answers) bool {
			return yes(a, "Q18") && a.Has("Q6")
		}),
	}
}
