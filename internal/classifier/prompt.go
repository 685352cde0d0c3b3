package classifier

import (
	"fmt"
	"strings"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/models"
)

// BuildPrompt renders the classification instruction around the clinical
// narrative. The output is byte-stable for a given narrative.
func BuildPrompt(narrative string) string {
	var parts []string

	parts = append(parts, "You are an expert pediatric triage assistant.")
	parts = append(parts, "Analyze the following clinical observations for a child aged 6-12 and classify the triage level.")

	parts = append(parts, "\nURGENCY LEVELS:")
	parts = append(parts, "RED – Emergency: Immediate hospital/ER required. Life-threatening or unstable symptoms.")
	parts = append(parts, "YELLOW – Urgent: Visit a doctor/clinic within 24 hours. Symptoms are worsening but currently stable.")
	parts = append(parts, "GREEN – Observation: Home care and monitoring. Minor symptoms.")

	parts = append(parts, "\nINSTRUCTIONS:")
	parts = append(parts, `1. Carefully review the "Clinical Observations" provided.`)
	parts = append(parts, "2. Provide your findings only in a valid JSON format.")
	parts = append(parts, "3. Select the most relevant advice keys from the ADVICE_LIBRARY below (select 2-3 items).")

	parts = append(parts, "\nADVICE_LIBRARY:")
	for _, a := range catalog.AdviceLibrary() {
		parts = append(parts, fmt.Sprintf("- %s: %s", a.Key, a.Texts[models.LangEnglish]))
	}

	parts = append(parts, "\nReturn format:")
	parts = append(parts, `{
  "triage_level": "RED/YELLOW/GREEN",
  "reasoning": "A concise clinical explanation focusing on the severity and combination of symptoms provided.",
  "confidence": "High/Medium/Low",
  "home_advice": ["KEY1", "KEY2"]
}`)

	parts = append(parts, "\nClinical Observations:")
	parts = append(parts, strings.TrimRight(narrative, "\n"))

	return strings.Join(parts, "\n")
}
