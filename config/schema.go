package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the core draft configuration.
// It reflects the Config struct from types.go but excludes the 'Extensions'
// field, which holds free-form extension sections.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Extension sections are validated by their owners, not here.
		AllowAdditionalProperties: true,
		// Expand struct references instead of using $ref for a flatter schema.
		ExpandedStruct: true,
		// Use YAML field names for property names.
		FieldNameTag: "yaml",
	}

	type baseConfig struct {
		Name       string          `yaml:"name,omitempty" jsonschema:"description=Name of the project"`
		Version    string          `yaml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
		Workspaces []string        `yaml:"workspaces,omitempty" jsonschema:"description=Directories whose files are tracked for unsaved changes"`
		AutoSave   *AutoSaveConfig `yaml:"autosave,omitempty" jsonschema:"description=Document save policy"`
		Daemon     *DaemonConfig   `yaml:"daemon,omitempty" jsonschema:"description=Configuration for the draft daemon"`
		Editor     *EditorConfig   `yaml:"editor,omitempty" jsonschema:"description=Editor host connection settings"`
	}

	schema := r.Reflect(&baseConfig{})
	schema.Title = "Draft Configuration"
	schema.Description = "Schema for core draft.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
