package rules_test

import (
	"testing"

	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/rules"
)

func num(v float64) *float64 { return &v }

func TestRefineRangeConsistency(t *testing.T) {
	cases := []struct {
		min, max         *float64
		minExcl, maxExcl bool
		want             bool
	}{
		{num(5), num(3), false, false, false},
		{num(1), num(2), true, true, false},
		{num(1), num(3), true, true, true},
		{num(3), num(3), false, false, true},
		{num(3), num(3), true, false, false},
		{num(3), num(4), false, true, true},
		{num(3.5), num(4), true, false, false},
		{nil, num(4), true, true, true},
		{num(9), nil, false, false, true},
	}
	for i, c := range cases {
		if got := rules.RefineRangeConsistency(c.min, c.minExcl, c.max, c.maxExcl); got != c.want {
			t.Fatalf("case %d: got %v want %v", i, got, c.want)
		}
	}
}

func paths(r rules.Result) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Path)
	}
	return out
}

func TestValidate_String(t *testing.T) {
	r := rules.Validate(&jsonschema.Object{MinLength: num(10), MaxLength: num(5)}, "string", rules.Options{})
	if r.Success || len(r.Errors) != 1 || r.Errors[0].Path != rules.PathLength {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Errors[0].Message != i18n.English[i18n.KeyStringLengthRange] {
		t.Fatalf("unexpected message: %q", r.Errors[0].Message)
	}
	if r := rules.Validate(&jsonschema.Object{MinLength: num(1), MaxLength: num(5)}, "string", rules.Options{}); !r.Success {
		t.Fatalf("consistent lengths must pass: %+v", r)
	}
}

func TestValidate_NumberAccumulates(t *testing.T) {
	o := &jsonschema.Object{
		Minimum:          num(5),
		ExclusiveMinimum: num(4),
		Maximum:          num(1),
		ExclusiveMaximum: num(2),
		Enum:             []any{3.0},
	}
	r := rules.Validate(o, "number", rules.Options{})
	got := paths(r)
	want := []string{rules.PathMinMax, rules.PathRedundantMinimum, rules.PathRedundantMaximum, rules.PathEnum}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestValidate_IntegerUsesNumberRules(t *testing.T) {
	r := rules.Validate(&jsonschema.Object{Minimum: num(5), Maximum: num(1)}, "integer", rules.Options{})
	if r.Success || r.Errors[0].Path != rules.PathMinMax {
		t.Fatalf("integer must be range checked: %+v", r)
	}
}

func TestValidate_EnumOutOfRange(t *testing.T) {
	o := &jsonschema.Object{ExclusiveMinimum: num(0), Enum: []any{1.0, 0.0}}
	r := rules.Validate(o, "number", rules.Options{})
	if r.Success || r.Errors[0].Path != rules.PathEnum {
		t.Fatalf("enum 0 violates exclusiveMinimum 0: %+v", r)
	}
	o = &jsonschema.Object{Maximum: num(10), Enum: []any{"x"}}
	if r := rules.Validate(o, "number", rules.Options{}); r.Success {
		t.Fatalf("non-numeric enum values fail the range rule")
	}
	if r := rules.Validate(&jsonschema.Object{Enum: []any{1, 2.5}}, "number", rules.Options{}); !r.Success {
		t.Fatalf("unbounded numeric enum must pass: %+v", r)
	}
}

func TestValidate_ArrayAndObject(t *testing.T) {
	a := &jsonschema.Object{MinItems: num(3), MaxItems: num(1), MinContains: num(2), MaxContains: num(1)}
	got := paths(rules.Validate(a, "array", rules.Options{}))
	if len(got) != 2 || got[0] != rules.PathItemsMinMax || got[1] != rules.PathContainsMinMax {
		t.Fatalf("array: %v", got)
	}
	o := &jsonschema.Object{MinProperties: num(2), MaxProperties: num(1)}
	got = paths(rules.Validate(o, "object", rules.Options{}))
	if len(got) != 1 || got[0] != rules.PathPropertiesMinMax {
		t.Fatalf("object: %v", got)
	}
}

func TestValidate_FieldChecksGateCrossRules(t *testing.T) {
	o := &jsonschema.Object{MinLength: num(-1.5), MaxLength: num(-3)}
	r := rules.Validate(o, "string", rules.Options{})
	got := paths(r)
	want := []string{"minLength", "minLength", "maxLength"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if r.Errors[0].Key != i18n.KeyIntValue || r.Errors[1].Key != i18n.KeyNegativeLength {
		t.Fatalf("unexpected keys: %+v", r.Errors)
	}

	r = rules.Validate(&jsonschema.Object{MultipleOf: num(0)}, "number", rules.Options{})
	if r.Success || r.Errors[0].Path != "multipleOf" || r.Errors[0].Key != i18n.KeyPositive {
		t.Fatalf("multipleOf 0: %+v", r)
	}
}

func TestValidate_UnknownTypes(t *testing.T) {
	o := &jsonschema.Object{MinLength: num(10), MaxLength: num(5)}
	for _, typ := range []string{"boolean", "null", "color"} {
		if r := rules.Validate(o, typ, rules.Options{}); !r.Success {
			t.Fatalf("%s must be permissive: %+v", typ, r)
		}
	}
	r := rules.Validate(o, "color", rules.Options{StrictTypes: true})
	if r.Success || r.Errors[0].Path != rules.PathType || r.Errors[0].Message != "Unknown type 'color'." {
		t.Fatalf("strict unknown type: %+v", r)
	}
	if r := rules.Validate(o, "boolean", rules.Options{StrictTypes: true}); !r.Success {
		t.Fatalf("boolean is a known type")
	}
}

func TestValidate_Translator(t *testing.T) {
	r := rules.Validate(&jsonschema.Object{MinItems: num(2), MaxItems: num(1)}, "array", rules.Options{Translator: i18n.Japanese})
	if r.Errors[0].Message != i18n.Japanese[i18n.KeyArrayMinMax] {
		t.Fatalf("expected japanese message, got %q", r.Errors[0].Message)
	}
}
