package catalog

import (
	"fmt"
	"sync"

	"pediatric-triage/internal/models"
)

const (
	CategoryGeneral   = "General"
	CategoryFever     = "Cold / Cough / Fever"
	CategoryStomach   = "Stomach Pain / Diarrhea / Vomiting"
	CategoryBreathing = "Breathing Problem"
	CategoryPain      = "Body Pain / Headache"
	CategoryCritical  = "Critical Red-Flags"
)

// Option keys shared by the yes/no questions.
const (
	Yes = "Yes"
	No  = "No"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the pediatric (age 6-12) intake catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(pediatricQuestions()...)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in questions: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func labels(en, ml string) map[models.Language]string {
	return map[models.Language]string{models.LangEnglish: en, models.LangMalayalam: ml}
}

func opt(key, ml string) Option {
	return Option{Key: key, Labels: labels(key, ml)}
}

func yesNo() []Option {
	return []Option{opt(Yes, "അതെ"), opt(No, "അല്ല")}
}

func yesNoQuestion(id, category, en, ml string, critical bool, ifYes, ifNo string) Question {
	return Question{
		ID:        id,
		Category:  category,
		Labels:    labels(en, ml),
		Kind:      KindChoice,
		Options:   yesNo(),
		Critical:  critical,
		Narrative: FixedNarrative(map[string]string{Yes: ifYes, No: ifNo}),
	}
}

func pediatricQuestions() []Question {
	return []Question{
		// General
		{
			ID:       "Q1",
			Category: CategoryGeneral,
			Labels:   labels("What is the child’s age?", "കുട്ടിയുടെ വയസ് എത്രയാണ്?"),
			Kind:     KindNumber,
			Min:      6,
			Max:      12,
			Narrative: ComputedNarrative(func(v models.AnswerValue) string {
				return fmt.Sprintf("The child is %s years old.", v)
			}),
		},
		{
			ID:       "Q2",
			Category: CategoryGeneral,
			Labels:   labels("How long has the problem been present?", "ഈ പ്രശ്നം എത്ര ദിവസമായി തുടരുന്നു?"),
			Kind:     KindChoice,
			Options: []Option{
				opt("< 1 day", "1 ദിവസത്തിൽ താഴെ"),
				opt("1–2 days", "1-2 ദിവസം"),
				opt("3+ days", "3 ദിവസത്തിലധികം"),
			},
			Narrative: FixedNarrative(map[string]string{
				"< 1 day":  "The symptoms started recently (less than 24 hours ago).",
				"1–2 days": "The symptoms have been present for 1 to 2 days.",
				"3+ days":  "The symptoms have persisted for more than 3 days.",
			}),
		},
		yesNoQuestion("Q3", CategoryGeneral,
			"Is the child unusually drowsy, confused, or not responding normally?",
			"കുട്ടി അസാധാരണമായി ഉറക്കമുള്ളതോ പ്രതികരിക്കാത്തതോ ആണോ?",
			true,
			"The child is showing signs of altered consciousness, unusual drowsiness, or confusion.",
			"The child is alert and responding normally to surroundings."),
		yesNoQuestion("Q4", CategoryGeneral,
			"Is the child able to drink and keep fluids down?",
			"കുട്ടിക്ക് വെള്ളം കുടിക്കാനും നിലനിർത്താനും കഴിയുന്നുണ്ടോ?",
			false,
			"The child is able to tolerate oral fluids and maintain hydration.",
			"The child is unable to drink or keep any fluids down, risking dehydration."),
		yesNoQuestion("Q5", CategoryGeneral,
			"Does the child have asthma, diabetes, heart disease, or other chronic illness?",
			"കുട്ടിക്ക് ആസ്ത്മ, പ്രമേഹം, ഹൃദ്രോഗം തുടങ്ങിയ ദീർഘകാല രോഗങ്ങളുണ്ടോ?",
			false,
			"The child has a pre-existing chronic medical condition (e.g., asthma, diabetes).",
			"The child has no known chronic underlying illnesses."),

		// Cold / Cough / Fever
		{
			ID:       "Q6",
			Category: CategoryFever,
			Labels:   labels("How does the fever feel?", "പനി എങ്ങനെ തോന്നുന്നു?"),
			Kind:     KindChoice,
			Options: []Option{
				opt("Warm but child active", "ചെറിയ പനി, കുട്ടി ഉന്മേഷവാനാണ്"),
				opt("Hot and uncomfortable", "ശരീരം നന്നായി ചൂടുണ്ട്, ആസ്വസ്ഥതയുണ്ട്"),
				opt("Very hot and child weak", "കഠിനമായ പനി, കുട്ടി വളരെ അവശനാണ്"),
			},
			Narrative: FixedNarrative(map[string]string{
				"Warm but child active":   "Mild fever with normal activity.",
				"Hot and uncomfortable":   "Moderate fever.",
				"Very hot and child weak": "High fever affecting the child.",
			}),
		},
		yesNoQuestion("Q7", CategoryFever,
			"Has the fever lasted more than 3 days?",
			"പനി 3 ദിവസത്തിലധികമായി തുടരുന്നുണ്ടോ?",
			false,
			"The fever has been prolonged, lasting more than 72 hours.",
			"The fever is recent and has lasted less than 3 days."),
		yesNoQuestion("Q8", CategoryFever,
			"Is there a rash on the body?",
			"ശരീരത്തിൽ ചൊറിച്ചിലോ ചർമ്മത്തിൽ പാടുകളോ ഉണ്ടോ?",
			false,
			"A new skin rash or spots have appeared on the child's body.",
			"There is no visible rash on the skin."),
		yesNoQuestion("Q9", CategoryFever,
			"Is the child unable to bend the neck forward?",
			"കുട്ടിക്ക് കഴുത്ത് മുന്നോട്ട് കുനിക്കാനാകുന്നില്ലേ?",
			true,
			"The child is experiencing neck stiffness (meningismus), unable to touch chin to chest.",
			"The child has normal neck mobility."),

		// Stomach Pain / Diarrhea / Vomiting
		{
			ID:       "Q10",
			Category: CategoryStomach,
			Labels:   labels("How many times has the child vomited in the last 24 hours?", "കഴിഞ്ഞ 24 മണിക്കൂറിൽ എത്ര തവണ ഛർദ്ദിച്ചു?"),
			Kind:     KindChoice,
			Options: []Option{
				opt("None", "ഒന്നുമില്ല"),
				opt("1-3", "1-3 തവണ"),
				opt("4+", "4 തവണയിൽ കൂടുതൽ"),
			},
			Narrative: FixedNarrative(map[string]string{
				"None": "The child has not vomited in the last 24 hours.",
				"1-3":  "The child has vomited 1 to 3 times recently.",
				"4+":   "The child is experiencing frequent/excessive vomiting (4 or more times).",
			}),
		},
		yesNoQuestion("Q11", CategoryStomach,
			"Is there blood in vomit or stool?",
			"ഛർദ്ദിയിലോ മലത്തിലോ രക്തം ഉണ്ടോ?",
			true,
			"Visible blood is present in the child's vomit or bowel movements.",
			"There is no blood observed in vomit or stool."),
		yesNoQuestion("Q12", CategoryStomach,
			"Is the stomach pain severe and constant?",
			"വയറുവേദന കഠിനവും സ്ഥിരവുമാണോ?",
			false,
			"The child is reporting intense, continuous abdominal pain.",
			"Abdominal pain is absent or only mild/intermittent."),
		yesNoQuestion("Q13", CategoryStomach,
			"Has the child passed urine in the last 8 hours?",
			"കഴിഞ്ഞ 8 മണിക്കൂറിൽ കുട്ടി മൂത്രമൊഴിച്ചിട്ടുണ്ടോ?",
			false,
			"The child has normal urine output.",
			"The child has not urinated for over 8 hours, indicating potential dehydration."),

		// Breathing Problem
		yesNoQuestion("Q14", CategoryBreathing,
			"Is the child breathing faster than usual?",
			"കുട്ടി സാധാരണയേക്കാൾ വേഗത്തിൽ ശ്വസിക്കുന്നുണ്ടോ?",
			false,
			"The child is showing tachypnea (increased breathing rate).",
			"The child's breathing rate is within the normal range."),
		yesNoQuestion("Q15", CategoryBreathing,
			"Is the chest pulling in while breathing?",
			"ശ്വസിക്കുമ്പോൾ നെഞ്ച് ഉള്ളിലേക്ക് വലിക്കപ്പെടുന്നുണ്ടോ?",
			true,
			"The child has chest retractions (respiratory distress), where the skin pulls in around the ribs.",
			"The child is breathing easily without visible retractions."),
		yesNoQuestion("Q16", CategoryBreathing,
			"Are the lips or face turning bluish?",
			"ചുണ്ടുകളോ മുഖമോ നീല നിറത്തിലാകുന്നുണ്ടോ?",
			true,
			"Cyanosis is present: The child's lips or face have a blue tint, indicating low oxygen.",
			"The child has normal skin/lip coloration."),
		yesNoQuestion("Q17", CategoryBreathing,
			"Is the child unable to speak full sentences due to breathlessness?",
			"ശ്വാസം മുട്ടലാൽ കുട്ടിക്ക് പൂർണ്ണ വാചകം പറയാനാകുന്നില്ലേ?",
			false,
			"The child is showing severe breathlessness, unable to speak in full sentences.",
			"The child can speak normally without significant shortness of breath."),

		// Body Pain / Headache
		yesNoQuestion("Q18", CategoryPain,
			"Is the headache or body pain severe ?",
			"തലവേദനയോ ശരീരവേദനയോ കൂടുതലാണോ ?",
			false,
			"The child is in severe headache or body pain.",
			"The child is experiencing mild to moderate pain."),
		yesNoQuestion("Q19", CategoryPain,
			"Did the child have a head injury recently?",
			"കുട്ടിക്ക് അടുത്തിടെ തലക്ക് പരിക്കുണ്ടായിട്ടുണ്ടോ?",
			false,
			"There is a history of recent trauma or injury to the head.",
			"There has been no recent head injury."),
		yesNoQuestion("Q20", CategoryPain,
			"Is there repeated vomiting with headache?",
			"തലവേദനയോടൊപ്പം ആവർത്തിച്ച ഛർദ്ദിയുണ്ടോ?",
			false,
			"The child has a headache accompanied by persistent vomiting.",
			"The headache is not associated with vomiting."),

		// Critical Red-Flags
		yesNoQuestion("Q21", CategoryCritical,
			"Has the child had a seizure?",
			"കുട്ടിക്ക് അപസ്മാരം ഉണ്ടായിട്ടുണ്ടോ?",
			true,
			"The child has experienced a seizure or convulsion.",
			"The child has had no seizures."),
		yesNoQuestion("Q22", CategoryCritical,
			"Has the child fainted or become unconscious?",
			"കുട്ടി ബോധരഹിതനായിട്ടുണ്ടോ?",
			true,
			"The child has experienced loss of consciousness or fainting.",
			"The child has remained conscious throughout."),
		yesNoQuestion("Q23", CategoryCritical,
			"Is there a severe injury or heavy bleeding?",
			"ഗുരുതരമായ പരിക്കോ രക്തസ്രാവമോ ഉണ്ടോ?",
			true,
			"The child has sustained a major injury or is actively bleeding heavily.",
			"There is no severe injury or heavy bleeding noted."),
	}
}
