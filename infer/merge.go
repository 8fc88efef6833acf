package infer

import "github.com/reoring/schemasynth/jsonschema"

// MergeSchemas unifies two schema fragments:
//
//  1. structurally equal schemas return a unchanged;
//  2. integer and number widen to number;
//  3. anything else becomes a oneOf of the distinct alternatives, starting
//     from a's own oneOf list when it has one. A single remaining
//     alternative is returned as is.
//
// MergeSchemas(s, s) returns s.
func MergeSchemas(a, b jsonschema.Schema) jsonschema.Schema {
	if jsonschema.Equal(a, b) {
		return a
	}

	at := jsonschema.AsObject(a).Type
	bt := jsonschema.AsObject(b).Type
	if (at.Is(jsonschema.TypeInteger) && bt.Is(jsonschema.TypeNumber)) ||
		(at.Is(jsonschema.TypeNumber) && bt.Is(jsonschema.TypeInteger)) {
		return jsonschema.Typed(jsonschema.TypeNumber)
	}

	existing := []jsonschema.Schema{a}
	ao, hasOneOf := a.(*jsonschema.Object)
	hasOneOf = hasOneOf && ao != nil && ao.OneOf != nil
	if hasOneOf {
		existing = ao.OneOf
	}
	for _, s := range existing {
		if jsonschema.Equal(s, b) {
			if hasOneOf {
				return a
			}
			return &jsonschema.Object{OneOf: []jsonschema.Schema{a}}
		}
	}

	merged := make([]jsonschema.Schema, 0, len(existing)+1)
	merged = append(merged, existing...)
	merged = append(merged, b)
	unique := jsonschema.Dedupe(merged)
	if len(unique) == 1 {
		return unique[0]
	}
	return &jsonschema.Object{OneOf: unique}
}
