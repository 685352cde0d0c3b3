// Package catalog holds the static pediatric question catalog and the home
// care advice library. Both are built once and never mutated.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"pediatric-triage/internal/models"
)

// Kind is the input kind rendered by the UI.
type Kind string

const (
	KindNumber Kind = "number"
	KindChoice Kind = "radio"
)

var (
	ErrUnknownQuestion = errors.New("UNKNOWN_QUESTION")
	ErrWrongType       = errors.New("WRONG_ANSWER_TYPE")
	ErrOutOfRange      = errors.New("ANSWER_OUT_OF_RANGE")
	ErrUnknownOption   = errors.New("UNKNOWN_OPTION")
)

// Option is one selectable answer of a choice question.
type Option struct {
	Key    string
	Labels map[models.Language]string
}

// Narrative turns a raw answer into a clinical sentence. It is either a fixed
// option-to-sentence mapping or a function of the value; the zero value has
// no template.
type Narrative struct {
	fixed    map[string]string
	computed func(models.AnswerValue) string
}

func FixedNarrative(sentences map[string]string) Narrative {
	return Narrative{fixed: sentences}
}

func ComputedNarrative(fn func(models.AnswerValue) string) Narrative {
	return Narrative{computed: fn}
}

func (n Narrative) describe(v models.AnswerValue) (string, bool) {
	switch {
	case n.computed != nil:
		return n.computed(v), true
	case n.fixed != nil:
		s, ok := n.fixed[v.String()]
		return s, ok
	default:
		return "", false
	}
}

// Question is a single catalog entry.
type Question struct {
	ID        string
	Category  string
	Labels    map[models.Language]string
	Kind      Kind
	Min, Max  float64
	Options   []Option
	Critical  bool
	Narrative Narrative
}

// Label returns the label in lang, falling back to English and then the id.
func (q *Question) Label(lang models.Language) string {
	if l, ok := q.Labels[lang]; ok && l != "" {
		return l
	}
	if l, ok := q.Labels[models.LangEnglish]; ok && l != "" {
		return l
	}
	return q.ID
}

func (q *Question) option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is an ordered, read-only registry of questions.
type Catalog struct {
	categories []string
	byCategory map[string][]*Question
	byID       map[string]*Question
}

// New builds a catalog. Categories and questions keep the order given.
func New(questions ...Question) (*Catalog, error) {
	c := &Catalog{
		byCategory: make(map[string][]*Question),
		byID:       make(map[string]*Question, len(questions)),
	}
	for i := range questions {
		q := questions[i]
		if q.ID == "" {
			return nil, fmt.Errorf("question #%d has no id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		switch q.Kind {
		case KindChoice:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("choice question %q has no options", q.ID)
			}
		case KindNumber:
			if q.Min > q.Max {
				return nil, fmt.Errorf("numeric question %q has min > max", q.ID)
			}
		default:
			return nil, fmt.Errorf("question %q has unknown kind %q", q.ID, q.Kind)
		}

		if _, seen := c.byCategory[q.Category]; !seen {
			c.categories = append(c.categories, q.Category)
		}
		c.byCategory[q.Category] = append(c.byCategory[q.Category], &q)
		c.byID[q.ID] = &q
	}
	return c, nil
}

// Categories returns category names in insertion order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Questions returns the questions of a category in insertion order.
func (c *Catalog) Questions(category string) []*Question {
	qs := c.byCategory[category]
	out := make([]*Question, len(qs))
	copy(out, qs)
	return out
}

func (c *Catalog) Question(id string) (*Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

func (c *Catalog) Len() int { return len(c.byID) }

// Describe resolves the narrative sentence for an answer. Unknown values
// and questions without a template fall back to "<label>: <value>".
func (c *Catalog) Describe(id string, v models.AnswerValue) string {
	q, ok := c.byID[id]
	if !ok {
		return fmt.Sprintf("%s: %s", id, v)
	}
	if s, ok := q.Narrative.describe(v); ok {
		return s
	}
	return fmt.Sprintf("%s: %s", q.Label(models.LangEnglish), v)
}

// Check reports whether v is an acceptable answer to question id.
func (c *Catalog) Check(id string, v models.AnswerValue) error {
	q, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	switch q.Kind {
	case KindNumber:
		f, ok := v.Float()
		if !ok {
			return fmt.Errorf("%w: %s expects a number", ErrWrongType, id)
		}
		if f < q.Min || f > q.Max {
			return fmt.Errorf("%w: %s=%s not in [%s, %s]", ErrOutOfRange, id, v,
				models.Number(q.Min), models.Number(q.Max))
		}
	case KindChoice:
		if v.IsNumber() {
			return fmt.Errorf("%w: %s expects an option key", ErrWrongType, id)
		}
		if _, ok := q.option(v.String()); !ok {
			return fmt.Errorf("%w: %s=%q", ErrUnknownOption, id, v.String())
		}
	}
	return nil
}

// MarshalJSON emits {category: {id: question}} preserving catalog order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	root := make(orderedObject, 0, len(c.categories))
	for _, cat := range c.categories {
		qs := make(orderedObject, 0, len(c.byCategory[cat]))
		for _, q := range c.byCategory[cat] {
			qs = append(qs, member{q.ID, q})
		}
		root = append(root, member{cat, qs})
	}
	return json.Marshal(root)
}

// MarshalJSON emits the wire shape the UI renders from.
func (q *Question) MarshalJSON() ([]byte, error) {
	obj := orderedObject{
		{"en", q.Labels[models.LangEnglish]},
		{"ml", q.Labels[models.LangMalayalam]},
		{"type", q.Kind},
	}
	switch q.Kind {
	case KindNumber:
		obj = append(obj, member{"min", q.Min}, member{"max", q.Max})
	case KindChoice:
		opts := make(orderedObject, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, member{o.Key, o.Labels})
		}
		obj = append(obj, member{"options", opts})
	}
	obj = append(obj, member{"is_critical", q.Critical})
	return json.Marshal(obj)
}

type member struct {
	key   string
	value interface{}
}

// orderedObject is a JSON object whose keys keep insertion order.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", m.key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
