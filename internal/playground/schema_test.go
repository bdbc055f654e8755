package playground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchemas(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	for _, name := range []string{SchemaUsers, SchemaUserTasks, SchemaTask} {
		_, ok := schemas.byName[name]
		assert.True(t, ok, name)
	}
}

func TestSchemas_Validate(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	tests := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{"users ok", SchemaUsers, `{"users":[{"name":"ana","id":1}],"pagination":{}}`, false},
		{"users empty", SchemaUsers, `{"users":[]}`, false},
		{"user without name", SchemaUsers, `{"users":[{"id":1}]}`, true},
		{"todos ok", SchemaUserTasks, `{"name":"ana","todos":[{"id":1,"label":"a","is_done":true}]}`, false},
		{"todo fractional id", SchemaUserTasks, `{"todos":[{"id":1.5,"label":"a"}]}`, true},
		{"todo negative id", SchemaUserTasks, `{"todos":[{"id":-1,"label":"a"}]}`, true},
		{"task ok", SchemaTask, `{"id":3,"label":"buy milk","is_done":false}`, false},
		{"task missing label", SchemaTask, `{"id":3}`, true},
		{"task done not bool", SchemaTask, `{"id":3,"label":"x","is_done":"no"}`, true},
		{"bad json", SchemaTask, `{`, true},
		{"unknown schema", "nope.json", `{}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.Validate(tt.schema, []byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchemas_ValidateReportsLocation(t *testing.T) {
	schemas, err := LoadSchemas()
	require.NoError(t, err)

	err = schemas.Validate(SchemaUsers, []byte(`{"users":[{"name":"ana"},{"name":false}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/users/1/name")
}
