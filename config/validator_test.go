package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatal(err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("Generated schema is not valid JSON: %v", err)
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("expected properties to be defined")
	}

	for _, want := range []string{"version", "workspaces", "autosave", "daemon", "editor"} {
		if _, ok := props[want]; !ok {
			t.Errorf("expected property %q in schema", want)
		}
	}
}

func TestSchemaValidation(t *testing.T) {
	validator, err := NewSchemaValidator()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		yaml      string
		wantError bool
	}{
		{
			name: "valid config",
			yaml: `
version: "1.0"
workspaces:
  - /home/me/notes
autosave:
  mode: short-delay
`,
			wantError: false,
		},
		{
			name: "valid config with extensions",
			yaml: `
version: "1.0"
logging:
  level: debug
`,
			wantError: false,
		},
		{
			name: "workspaces must be a list",
			yaml: `
version: "1.0"
workspaces: /home/me/notes
`,
			wantError: true,
		},
		{
			name: "debounce must be a number",
			yaml: `
version: "1.0"
daemon:
  debounce_ms: soon
`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromBytes([]byte(tt.yaml), ".yml")
			if tt.wantError {
				// Type errors may surface at parse time or at validation.
				if err != nil {
					return
				}
				if err := validator.Validate(cfg); err == nil {
					t.Error("expected validation error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if err := validator.Validate(cfg); err != nil {
				t.Errorf("expected valid config, got: %v", err)
			}
		})
	}
}
