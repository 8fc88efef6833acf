package tree_test

import (
	"errors"
	"testing"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/rules"
	"github.com/reoring/schemasynth/tree"
)

func build(t *testing.T, doc string) *tree.Node {
	t.Helper()
	s, err := jsonschema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := tree.Build(s, tree.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return n
}

func TestBuild_SelfConsistency(t *testing.T) {
	n := build(t, `{"type":"string","minLength":10,"maxLength":5}`)
	if n.OwnErrors() != 1 || n.Validation.Errors[0].Path != rules.PathLength {
		t.Fatalf("expected one length error, got %+v", n.Validation)
	}
	if n.CumulativeErrors != 1 {
		t.Fatalf("cumulative: %d", n.CumulativeErrors)
	}
}

func TestBuild_Aggregation(t *testing.T) {
	n := build(t, `{"type":"object","properties":{"a":{"type":"number","minimum":5,"maximum":1}}}`)
	if !n.Validation.Success {
		t.Fatalf("root must be valid itself: %+v", n.Validation)
	}
	a := n.Children["a"]
	if a == nil || a.OwnErrors() != 1 || a.Validation.Errors[0].Path != rules.PathMinMax {
		t.Fatalf("child a: %+v", a)
	}
	if n.CumulativeErrors != 1 {
		t.Fatalf("root cumulative: %d", n.CumulativeErrors)
	}
}

func TestBuild_BooleanSchemas(t *testing.T) {
	n, err := tree.Build(jsonschema.False, tree.Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if n.Name != "false" || n.Validation.Success || n.CumulativeErrors != 1 {
		t.Fatalf("false schema: %+v", n)
	}
	n, _ = tree.Build(jsonschema.True, tree.Options{})
	if n.Name != "true" || !n.Validation.Success || n.CumulativeErrors != 0 {
		t.Fatalf("true schema: %+v", n)
	}
}

func TestBuild_ChildKeys(t *testing.T) {
	n := build(t, `{
		"type": "object",
		"properties": {"p": {"type": "array", "items": [{"type":"string"}, false], "prefixItems": [true], "contains": {"type":"integer"}}},
		"patternProperties": {"^x-": {"type": "string"}},
		"additionalProperties": false,
		"allOf": [{"type":"object"}],
		"anyOf": [true, true],
		"oneOf": [{"type":"string"}],
		"not": {"type":"null"},
		"if": true, "then": true, "else": true,
		"$defs": {"d": {"type":"integer"}},
		"definitions": {"old": {"type":"boolean"}}
	}`)
	for _, k := range []string{"p", "pattern:^x-", "additionalProperties", "allOf:0", "anyOf:0", "anyOf:1", "oneOf:0", "not", "if", "then", "else", "$defs:d", "definitions:old"} {
		if n.Children[k] == nil {
			t.Fatalf("missing child %q (have %v)", k, n.ChildNames())
		}
	}
	p := n.Children["p"]
	for _, k := range []string{"items[0]", "items[1]", "prefixItems[0]", "contains"} {
		if p.Children[k] == nil {
			t.Fatalf("missing array child %q (have %v)", k, p.ChildNames())
		}
	}
	// additionalProperties:false and items[1]:false contribute one error each.
	if n.CumulativeErrors != 2 {
		t.Fatalf("cumulative: %d", n.CumulativeErrors)
	}
}

func TestBuild_AbsentTypeIsObject(t *testing.T) {
	n := build(t, `{"minProperties":3,"maxProperties":1,"properties":{"s":{"type":"string","minLength":4,"maxLength":2}}}`)
	if n.Name != "object" || n.OwnErrors() != 1 {
		t.Fatalf("absent type must be checked as object: %+v", n)
	}
	if n.Children["s"] == nil || n.CumulativeErrors != 2 {
		t.Fatalf("properties of untyped nodes must be visited: %+v", n)
	}
}

func TestBuild_TypeListUsesFirst(t *testing.T) {
	n := build(t, `{"type":["string","null"],"minLength":3,"maxLength":1}`)
	if n.Name != "string" || n.OwnErrors() != 1 {
		t.Fatalf("got %+v", n)
	}
}

func TestNode_Issues(t *testing.T) {
	n := build(t, `{"type":"object","properties":{"a~b":{"type":"array","minItems":3,"maxItems":1},"c":{"type":"string"}}}`)
	iss := n.Issues()
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got %v", iss)
	}
	if iss[0].Path != "/properties/a~0b" || iss[0].Rule != rules.PathItemsMinMax || iss[0].Code != schemasynth.CodeInconsistentConstraint {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestBuild_Limits(t *testing.T) {
	var s jsonschema.Schema = jsonschema.Typed("string")
	for i := 0; i < 30; i++ {
		s = &jsonschema.Object{Not: s}
	}
	_, err := tree.Build(s, tree.Options{Limits: schemasynth.Limits{MaxDepth: 10}})
	if !errors.Is(err, schemasynth.ErrLimitExceeded) {
		t.Fatalf("expected limit error, got %v", err)
	}
	if _, err := tree.Build(s, tree.Options{}); err != nil {
		t.Fatalf("default limits: %v", err)
	}
}

func TestBuild_RequiredProperties(t *testing.T) {
	n := build(t, `{"type":"object","properties":{"a":{"type":"string"},"b":{"type":"integer"}},"required":["a","ghost"]}`)
	if len(n.Children) != 2 || n.Children["ghost"] != nil {
		t.Fatalf("required names without a property must not create children: %v", n.ChildNames())
	}
	if !n.Children["a"].Required || n.Children["b"].Required {
		t.Fatalf("required flags: a=%v b=%v", n.Children["a"].Required, n.Children["b"].Required)
	}
	if n.CumulativeErrors != 0 {
		t.Fatalf("dangling required names are not errors: %d", n.CumulativeErrors)
	}
}
