package schema

import (
	_ "embed"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed metaschema.json
var metaSchemaData []byte

// MetaValidator checks that a document is a well-formed schema in the
// compiler's dialect before any of the pipeline runs on it. It validates
// against the embedded dialect meta-schema, so malformed keyword usage is
// reported in schema terms rather than as downstream parse failures.
type MetaValidator struct {
	schema *jsonschema.Schema
}

// NewMetaValidator compiles the embedded dialect meta-schema.
func NewMetaValidator() (*MetaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("tsgen.schema.json", strings.NewReader(string(metaSchemaData))); err != nil {
		return nil, fmt.Errorf("add meta-schema resource: %w", err)
	}
	compiled, err := compiler.Compile("tsgen.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile meta-schema: %w", err)
	}
	return &MetaValidator{schema: compiled}, nil
}

// Validate checks a raw schema document against the dialect meta-schema.
// All leaf violations are reported together, one per line.
func (v *MetaValidator) Validate(document []byte) error {
	var instance any
	if err := json.Unmarshal(document, &instance); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := v.schema.Validate(instance); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			var messages []string
			collectLeafErrors(verr, &messages)
			return fmt.Errorf("not a valid schema document:\n%s", strings.Join(messages, "\n"))
		}
		return fmt.Errorf("not a valid schema document: %w", err)
	}
	return nil
}

// collectLeafErrors flattens a validation error tree into its leaf
// messages, which carry the most specific locations.
func collectLeafErrors(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "#"
		}
		*out = append(*out, fmt.Sprintf("  %s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectLeafErrors(cause, out)
	}
}
