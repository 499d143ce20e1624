package config

import (
	"encoding/json"

	"github.com/grovetools/catalogd/schema"
	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for catalogd.yml. Unknown top-level
// keys are allowed since they carry extension sections such as logging.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "catalogd Configuration"
	s.Description = "Schema for catalogd.yml and catalogd.toml."

	return json.MarshalIndent(s, "", "  ")
}

// SchemaValidator validates configuration documents against GenerateSchema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator compiles the configuration schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator("catalogd.json", data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// ValidateValue validates a decoded configuration document.
func (v *SchemaValidator) ValidateValue(doc interface{}) error {
	return v.validator.ValidateValue(doc)
}
