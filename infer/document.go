package infer

import "github.com/reoring/schemasynth/jsonschema"

const (
	DraftURI           = "https://json-schema.org/draft-07/schema"
	DocumentTitle      = "Generated Schema"
	DocumentDesc       = "Generated from JSON data"
	PrimitiveRootTitle = "Generated Schema (Primitive Root)"
	PrimitiveRootDesc  = "Input was a primitive value, wrapped in an object."
)

// CreateSchemaFromJSON infers a complete schema document for v. The root is
// always object- or array-shaped: a primitive root is wrapped into an
// object with a single required property "value".
func CreateSchemaFromJSON(v any, opts Options) (*jsonschema.Object, error) {
	inferred, err := Infer(v, opts)
	if err != nil {
		return nil, err
	}
	root := jsonschema.AsObject(inferred)
	doc := &jsonschema.Object{
		SchemaURI:   DraftURI,
		Title:       DocumentTitle,
		Description: DocumentDesc,
	}

	switch {
	case root.Type.Is(jsonschema.TypeObject) || root.Properties != nil:
		doc.Type = jsonschema.Types(jsonschema.TypeObject)
		doc.Properties = root.Properties
		doc.Required = root.Required
	case root.Type.Is(jsonschema.TypeArray) || root.Items != nil:
		doc.Type = jsonschema.Types(jsonschema.TypeArray)
		doc.Items = root.Items
		doc.MinItems = root.MinItems
		doc.MaxItems = root.MaxItems
	case len(root.Type) > 0:
		doc.Type = jsonschema.Types(jsonschema.TypeObject)
		doc.Properties = map[string]jsonschema.Schema{"value": root}
		doc.Required = []string{"value"}
		doc.Title = PrimitiveRootTitle
		doc.Description = PrimitiveRootDesc
	default:
		doc.Type = jsonschema.Types(jsonschema.TypeObject)
	}
	return doc, nil
}
