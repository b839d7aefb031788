package blocks

import (
	_ "embed"
	"sync"

	"github.com/goliatone/go-storefront/internal/schemacheck"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var documentSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled JSON schema for raw block documents.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = schemacheck.Compile("blocks.json", documentSchema)
	})
	return compiledSchema, schemaErr
}

// SchemaSource returns the raw JSON schema document.
func SchemaSource() []byte {
	out := make([]byte, len(documentSchema))
	copy(out, documentSchema)
	return out
}

// ValidateJSON checks a raw block array against the document schema before it
// is decoded. Blocks with unknown types only need a `type` field.
func ValidateJSON(raw []byte) error {
	schema, err := Schema()
	if err != nil {
		return err
	}
	return schemacheck.Check(schema, raw)
}

// ParseStrict validates raw against the schema, decodes it, and applies
// Validate to the result.
func ParseStrict(raw []byte) (Document, error) {
	if err := ValidateJSON(raw); err != nil {
		return nil, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
