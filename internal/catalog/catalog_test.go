package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pediatric-triage/internal/models"
)

func TestDefault_Shape(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		CategoryGeneral, CategoryFever, CategoryStomach,
		CategoryBreathing, CategoryPain, CategoryCritical,
	}, c.Categories())
	assert.Equal(t, 23, c.Len())

	ids := make([]string, 0, 5)
	for _, q := range c.Questions(CategoryGeneral) {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4", "Q5"}, ids)

	critical := []string{}
	for _, cat := range c.Categories() {
		for _, q := range c.Questions(cat) {
			assert.NotEmpty(t, q.Labels[models.LangEnglish], q.ID)
			assert.NotEmpty(t, q.Labels[models.LangMalayalam], q.ID)
			if q.Critical {
				critical = append(critical, q.ID)
			}
		}
	}
	assert.Equal(t, []string{"Q3", "Q9", "Q11", "Q15", "Q16", "Q21", "Q22", "Q23"}, critical)

	assert.Same(t, c, Default())
}

func TestCatalog_Describe(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		id    string
		value models.AnswerValue
		want  string
	}{
		{"computed age", "Q1", models.Number(8), "The child is 8 years old."},
		{"fixed option", "Q3", models.Text("Yes"), "The child is showing signs of altered consciousness, unusual drowsiness, or confusion."},
		{"multi option", "Q10", models.Text("4+"), "The child is experiencing frequent/excessive vomiting (4 or more times)."},
		{"unknown option falls back", "Q4", models.Text("Maybe"), "Is the child able to drink and keep fluids down?: Maybe"},
		{"unknown question falls back", "Q99", models.Text("x"), "Q99: x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Describe(tt.id, tt.value))
		})
	}
}

func TestCatalog_DescribeWithoutNarrative(t *testing.T) {
	c, err := New(Question{
		ID: "T1", Category: "Test", Kind: KindNumber, Min: 0, Max: 10,
		Labels: labels("Temperature score", "താപനില"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Temperature score: 7.5", c.Describe("T1", models.Number(7.5)))
}

func TestCatalog_Check(t *testing.T) {
	c := Default()

	tests := []struct {
		name    string
		id      string
		value   models.AnswerValue
		wantErr error
	}{
		{"age lower bound", "Q1", models.Number(6), nil},
		{"age upper bound", "Q1", models.Number(12), nil},
		{"age below range", "Q1", models.Number(5), ErrOutOfRange},
		{"age above range", "Q1", models.Number(12.5), ErrOutOfRange},
		{"age as text", "Q1", models.Text("8"), ErrWrongType},
		{"valid option", "Q2", models.Text("1–2 days"), nil},
		{"unknown option", "Q3", models.Text("Maybe"), ErrUnknownOption},
		{"number for option", "Q3", models.Number(1), ErrWrongType},
		{"unknown question", "Q99", models.Text("Yes"), ErrUnknownQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Check(tt.id, tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		errMsg    string
	}{
		{
			name: "duplicate id",
			questions: []Question{
				{ID: "A", Category: "x", Kind: KindChoice, Options: yesNo()},
				{ID: "A", Category: "y", Kind: KindChoice, Options: yesNo()},
			},
			errMsg: "duplicate question id",
		},
		{
			name:      "choice without options",
			questions: []Question{{ID: "A", Category: "x", Kind: KindChoice}},
			errMsg:    "has no options",
		},
		{
			name:      "inverted bounds",
			questions: []Question{{ID: "A", Category: "x", Kind: KindNumber, Min: 5, Max: 1}},
			errMsg:    "min > max",
		},
		{
			name:      "missing id",
			questions: []Question{{Category: "x", Kind: KindChoice, Options: yesNo()}},
			errMsg:    "has no id",
		},
		{
			name:      "unknown kind",
			questions: []Question{{ID: "A", Category: "x", Kind: "slider"}},
			errMsg:    "unknown kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.questions...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCatalog_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Default())
	require.NoError(t, err)

	var decoded map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 6)

	q1 := decoded[CategoryGeneral]["Q1"]
	assert.Equal(t, "number", q1["type"])
	assert.Equal(t, 6.0, q1["min"])
	assert.Equal(t, 12.0, q1["max"])
	assert.Equal(t, false, q1["is_critical"])
	assert.NotContains(t, q1, "options")

	q3 := decoded[CategoryGeneral]["Q3"]
	assert.Equal(t, "radio", q3["type"])
	assert.Equal(t, true, q3["is_critical"])
	assert.Equal(t, map[string]interface{}{
		"Yes": map[string]interface{}{"en": "Yes", "ml": "അതെ"},
		"No":  map[string]interface{}{"en": "No", "ml": "അല്ല"},
	}, q3["options"])

	// Key order on the wire follows catalog order.
	raw := string(data)
	prev := -1
	for _, cat := range Default().Categories() {
		idx := strings.Index(raw, `"`+cat+`"`)
		require.Greater(t, idx, prev, cat)
		prev = idx
	}
	assert.Less(t, strings.Index(raw, `"3+ days"`), strings.Index(raw, `"Q3"`))
	assert.Less(t, strings.Index(raw, `"Warm but child active"`), strings.Index(raw, `"Very hot and child weak"`))
}

func TestAdvice(t *testing.T) {
	assert.Equal(t, []string{"REST", "FLUIDS", "LIGHT_DIET", "HYGIENE", "MONITOR_SYMPTOMS", "TEMPERATURE_CHECK"}, AdviceKeys())

	text, ok := AdviceText(AdviceRest, models.LangEnglish)
	assert.True(t, ok)
	assert.Equal(t, "Ensure the child gets adequate rest.", text)

	_, ok = AdviceText("UNKNOWN_KEY", models.LangEnglish)
	assert.False(t, ok)

	texts := ResolveAdvice([]string{AdviceFluids, "UNKNOWN_KEY"}, models.LangMalayalam)
	assert.Equal(t, []string{"വെള്ളം, ഇളനീർ തുടങ്ങിയ പാനീയങ്ങൾ ധാരാളം നൽകുക."}, texts)

	empty := ResolveAdvice(nil, models.LangEnglish)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
