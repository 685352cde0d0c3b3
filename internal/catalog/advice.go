package catalog

import "pediatric-triage/internal/models"

// Advice is a home-care advice entry the model may recommend by key.
type Advice struct {
	Key   string
	Texts map[models.Language]string
}

const (
	AdviceRest             = "REST"
	AdviceFluids           = "FLUIDS"
	AdviceLightDiet        = "LIGHT_DIET"
	AdviceHygiene          = "HYGIENE"
	AdviceMonitorSymptoms  = "MONITOR_SYMPTOMS"
	AdviceTemperatureCheck = "TEMPERATURE_CHECK"
)

var adviceLibrary = []Advice{
	{AdviceRest, labels(
		"Ensure the child gets adequate rest.",
		"കുട്ടിക്ക് ആവശ്യത്തിന് വിശ്രമം നൽകുക.")},
	{AdviceFluids, labels(
		"Encourage frequent intake of clean fluids like water or coconut water.",
		"വെള്ളം, ഇളനീർ തുടങ്ങിയ പാനീയങ്ങൾ ധാരാളം നൽകുക.")},
	{AdviceLightDiet, labels(
		"Provide light, easily digestible food.",
		"ലഘുവായതും എളുപ്പത്തിൽ ദഹിക്കുന്നതുമായ ഭക്ഷണം നൽകുക.")},
	{AdviceHygiene, labels(
		"Maintain proper hand hygiene to prevent spread of infection.",
		"അണുബാധ പടരാതിരിക്കാൻ കൈകൾ വൃത്തിയായി സൂക്ഷിക്കുക.")},
	{AdviceMonitorSymptoms, labels(
		"Monitor symptoms closely for any worsening.",
		"ലക്ഷണങ്ങൾ കൂടുന്നുണ്ടോ എന്ന് ശ്രദ്ധാപൂർവ്വം നിരീക്ഷിക്കുക.")},
	{AdviceTemperatureCheck, labels(
		"Check temperature periodically if fever is present.",
		"പനി ഉണ്ടെങ്കിൽ കൃത്യസമയത്ത് താപനില പരിശോധിക്കുക.")},
}

// AdviceLibrary returns the advice entries in display order.
func AdviceLibrary() []Advice {
	out := make([]Advice, len(adviceLibrary))
	copy(out, adviceLibrary)
	return out
}

func AdviceKeys() []string {
	keys := make([]string, 0, len(adviceLibrary))
	for _, a := range adviceLibrary {
		keys = append(keys, a.Key)
	}
	return keys
}

// AdviceText returns the advice text for key in lang. Unsupported languages
// fall back to English.
func AdviceText(key string, lang models.Language) (string, bool) {
	for _, a := range adviceLibrary {
		if a.Key != key {
			continue
		}
		if t, ok := a.Texts[lang]; ok {
			return t, true
		}
		return a.Texts[models.LangEnglish], true
	}
	return "", false
}

// ResolveAdvice maps keys to texts in lang, skipping unknown keys. The
// result is never nil.
func ResolveAdvice(keys []string, lang models.Language) []string {
	texts := make([]string, 0, len(keys))
	for _, k := range keys {
		if t, ok := AdviceText(k, lang); ok {
			texts = append(texts, t)
		}
	}
	return texts
}
