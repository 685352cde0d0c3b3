package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["level", "tags"],
  "properties": {
    "level": {"type": "string", "enum": ["RED", "GREEN"]},
    "tags":  {"type": "array", "items": {"type": "string"}}
  }
}`

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(testSchema)

	tests := []struct {
		name      string
		doc       map[string]interface{}
		valid     bool
		badFields []string
	}{
		{
			name:  "valid document",
			doc:   map[string]interface{}{"level": "RED", "tags": []interface{}{"a"}},
			valid: true,
		},
		{
			name: "missing required",
			doc:  map[string]interface{}{"level": "RED"},
		},
		{
			name:      "enum violation",
			doc:       map[string]interface{}{"level": "BLUE", "tags": []interface{}{}},
			badFields: []string{"level"},
		},
		{
			name:      "array item type",
			doc:       map[string]interface{}{"level": "GREEN", "tags": []interface{}{1.0}},
			badFields: []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.valid, len(res.Errors) == 0)
			for _, f := range tt.badFields {
				assert.True(t, res.HasErrors(f), "expected error on %s, got %v", f, res.GetErrorMessages())
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
}
