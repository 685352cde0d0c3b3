// internal/models/triage.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Language is a UI language code.
type Language string

const (
	LangEnglish   Language = "en"
	LangMalayalam Language = "ml"

	DefaultLanguage = LangEnglish
)

// NormalizeLanguage maps unsupported codes to the default language.
func NormalizeLanguage(code string) Language {
	switch Language(code) {
	case LangEnglish, LangMalayalam:
		return Language(code)
	default:
		return DefaultLanguage
	}
}

// Level is a triage urgency level.
type Level string

const (
	LevelRed    Level = "RED"
	LevelYellow Level = "YELLOW"
	LevelGreen  Level = "GREEN"
)

func (l Level) Valid() bool {
	switch l {
	case LevelRed, LevelYellow, LevelGreen:
		return true
	}
	return false
}

// Confidence labels attached by the service itself. Model-reported labels
// pass through verbatim.
const (
	ConfidenceRuleOverride = "High (Rule-based Override)"
	ConfidenceModelAugment = "High (Model + Structured Assessment)"
	ConfidenceLow          = "Low"
)

// AnswerValue is a raw answer: either a number or an option key.
type AnswerValue struct {
	num      float64
	text     string
	isNumber bool
}

func Number(v float64) AnswerValue { return AnswerValue{num: v, isNumber: true} }
func Text(s string) AnswerValue    { return AnswerValue{text: s} }

func (v AnswerValue) IsNumber() bool { return v.isNumber }

// Float returns the numeric value; ok is false for option keys.
func (v AnswerValue) Float() (float64, bool) { return v.num, v.isNumber }

// String renders numbers without trailing zeros ("8", "8.5").
func (v AnswerValue) String() string {
	if v.isNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.text)
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("answer must be a string or a number, got null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("answer must be a string or a number, got %s", string(data))
	}
	*v = Number(f)
	return nil
}

// Answers maps question ids to raw values.
type Answers map[string]AnswerValue

func (a Answers) Get(id string) (AnswerValue, bool) {
	v, ok := a[id]
	return v, ok
}

func (a Answers) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// Is reports whether id was answered with the option key.
func (a Answers) Is(id, key string) bool {
	v, ok := a[id]
	return ok && !v.isNumber && v.text == key
}

// Verdict is the triage result returned to the UI.
type Verdict struct {
	TriageLevel Level    `json:"triage_level" yaml:"triage_level"`
	Reasoning   string   `json:"reasoning" yaml:"reasoning"`
	Confidence  string   `json:"confidence" yaml:"confidence"`
	HomeAdvice  []string `json:"home_advice" yaml:"home_advice"`
	AdviceTexts []string `json:"advice_texts" yaml:"advice_texts"`
}

// TriageRequest is the body of POST /triage.
type TriageRequest struct {
	Answers  Answers `json:"answers"`
	Language string  `json:"language"`
}

// TriageResponse is the body returned by POST /triage.
type TriageResponse = Verdict
