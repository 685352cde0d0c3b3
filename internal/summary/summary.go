// Package summary renders answers into the clinical narrative sent to the
// classification model.
package summary

import (
	"strings"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/models"
)

const Header = "Pediatric Clinical Assessment (Age 6-12):\n"

// Build walks the catalog in order and emits one section per category that
// has at least one answer. Answers to unknown questions are ignored. The
// output is a pure function of its inputs.
func Build(cat *catalog.Catalog, answers models.Answers) string {
	var b strings.Builder
	b.WriteString(Header)

	for _, category := range cat.Categories() {
		var section strings.Builder
		for _, q := range cat.Questions(category) {
			v, ok := answers.Get(q.ID)
			if !ok {
				continue
			}
			section.WriteString("- ")
			section.WriteString(cat.Describe(q.ID, v))
			section.WriteString("\n")
		}
		if section.Len() == 0 {
			continue
		}
		b.WriteString("\n### ")
		b.WriteString(category)
		b.WriteString("\n")
		b.WriteString(section.String())
	}
	return b.String()
}
