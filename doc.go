// Package schemasynth provides:
//
// - Schema synthesis: infer a Draft-07 compatible JSON Schema from example JSON (package infer)
// - Self-consistency checks of a schema's own constraints, folded into a tree with cumulative error counts (packages rules, tree)
// - Mapping of instance-validation errors (JSON Pointers) and parse errors back to line/column positions (packages locate, validator)
// - A stable error model via Issues (JSON Pointer, code, message) shared by every package
//
// Design policy:
// - Keep only shared types in the root package (Issues, parse options, limits); features live in subpackages.
// - The schema model lives under jsonschema/, the offset-aware tokenizer under internal/engine, the CLI under cmd/schemasynth.
// - All operations are pure functions over immutable inputs; every recursive walk is bounded by Limits.
//
// Typical usage:
//
//	v, err := schemasynth.ParseJSON(data)
//	doc, err := infer.CreateSchemaFromJSON(v, infer.DefaultOptions())
//	root, err := tree.Build(doc, tree.Options{})
//	res := validator.MustCompile(doc).ValidateText(string(data), validator.Options{})
package schemasynth
