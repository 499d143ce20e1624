package schema

import (
	"encoding/json"

	"github.com/grovetools/catalogd/pkg/models"
	"github.com/invopop/jsonschema"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// requestDocument mirrors models.OperationRequest with the known argument
// shapes spelled out so the schema can check them.
type requestDocument struct {
	OperationName string            `json:"operationName" jsonschema:"required,minLength=1,description=Name of the query or mutation to run"`
	Arguments     *requestArguments `json:"arguments,omitempty" jsonschema:"description=Operation arguments keyed by name"`
}

type requestArguments struct {
	Cat *models.Cat `json:"cat,omitempty" jsonschema:"description=Entry to append (addCat)"`
}

// RequestSchema generates the JSON Schema for operation request bodies.
func RequestSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		Anonymous: true,
		// Inline every definition so the document validates standalone.
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		// GraphQL clients routinely send extra keys such as "query" or "variables".
		AllowAdditionalProperties: true,
	}

	s := r.Reflect(&requestDocument{})
	s.Title = "Catalog Operation Request"
	s.Description = "Body accepted by POST /graphql."

	return json.MarshalIndent(s, "", "  ")
}
