package config

import (
	"strings"
	"sync"

	"github.com/grovetools/draft/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// SchemaValidator validates configuration against the generated JSON Schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator. The schema is generated
// from the Config struct and compiled once per process.
func NewSchemaValidator() (*SchemaValidator, error) {
	compileSchemaOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			compileSchemaError = errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to generate config schema")
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("draft.json", strings.NewReader(string(data))); err != nil {
			compileSchemaError = errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to add schema resource")
			return
		}

		compiledSchema, compileSchemaError = compiler.Compile("draft.json")
	})
	if compileSchemaError != nil {
		return nil, compileSchemaError
	}
	return &SchemaValidator{schema: compiledSchema}, nil
}

// Validate validates configuration data against the schema. The config is
// round-tripped through YAML so property names match the schema, which is
// reflected from the yaml struct tags.
func (v *SchemaValidator) Validate(cfg *Config) error {
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to marshal config for validation")
	}

	var dataToValidate interface{}
	if err := yaml.Unmarshal(yamlData, &dataToValidate); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "failed to unmarshal config for validation")
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		return errors.ConfigValidation(err)
	}
	return nil
}
