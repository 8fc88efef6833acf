package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/infer"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/validator"
)

func roundTripSamples() []string {
	var orders []string
	for i := 0; i < 12; i++ {
		note := ""
		if i%3 == 0 {
			note = fmt.Sprintf(`, "note": "n%d"`, i)
		}
		orders = append(orders, fmt.Sprintf(
			`{"id": %q, "qty": %d, "price": %s, "status": %q, "coords": [%d.5, %d.25]%s}`,
			uuid.NewString(), i, []string{"1", "2.5"}[i%2], []string{"open", "closed", "held"}[i%3], i, i, note))
	}
	return []string{
		`null`,
		`true`,
		`42`,
		`"plain"`,
		`{}`,
		`[]`,
		`{"a": null, "b": [], "c": {}}`,
		`{"email": "ops@example.com", "site": "https://example.com/x", "day": "2024-01-02", "at": "2024-01-02T03:04:05Z"}`,
		`{"local": "2024-01-15T10:20:30", "bad": "2024-13-45"}`,
		`{"id": "` + uuid.NewString() + `", "tags": ["a", "b"], "n": 1.5}`,
		`["a", 1, null, true]`,
		`[{"a": 1}, {"a": 2, "b": "x"}, {"a": 3.5}]`,
		`[[1, 2], [3]]`,
		`{"deep": {"deeper": {"deepest": [{"k": "v"}]}}}`,
		`[` + strings.Join(orders, ",") + `]`,
	}
}

func TestRoundTrip_InferredSchemaAcceptsItsSample(t *testing.T) {
	for _, text := range roundTripSamples() {
		v, err := schemasynth.ParseJSONString(text)
		if err != nil {
			t.Fatalf("parse %s: %v", text, err)
		}
		s, err := infer.Infer(v, infer.DefaultOptions())
		if err != nil {
			t.Fatalf("infer %s: %v", text, err)
		}
		val, err := validator.Compile(s)
		if err != nil {
			t.Fatalf("compile %s: %v", text, err)
		}
		if errs := val.Validate(v); len(errs) != 0 {
			doc, _ := jsonschema.Marshal(s)
			t.Fatalf("sample %s rejected by %s: %+v", text, doc, errs)
		}
	}
}

func TestRoundTrip_Document(t *testing.T) {
	for _, text := range roundTripSamples() {
		v, _ := schemasynth.ParseJSONString(text)
		doc, err := infer.CreateSchemaFromJSON(v, infer.DefaultOptions())
		if err != nil {
			t.Fatalf("create %s: %v", text, err)
		}
		val := validator.MustCompile(doc)
		// A primitive root is wrapped as {"value": ...}.
		instance := v
		if doc.Title == infer.PrimitiveRootTitle {
			instance = map[string]any{"value": v}
		}
		if errs := val.Validate(instance); len(errs) != 0 {
			t.Fatalf("document for %s rejected its sample: %+v", text, errs)
		}
	}
}

const personSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["name"]
}`

func TestValidateText_PositionsErrors(t *testing.T) {
	val, err := validator.CompileBytes([]byte(personSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	text := "{\n  \"name\": \"ann\",\n  \"age\": -1,\n  \"tags\": [\"a\", 2]\n}"
	res := val.ValidateText(text, validator.Options{})
	if res.Valid || res.ParseFailed {
		t.Fatalf("expected validation errors: %+v", res)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %+v", res.Errors)
	}
	age, tag := res.Errors[0], res.Errors[1]
	if age.Path != "/age" || age.Line != 3 || age.Column != 3 {
		t.Fatalf("age: %+v", age)
	}
	if tag.Path != "/tags/1" || tag.Line != 4 || tag.Column != 17 {
		t.Fatalf("tag: %+v", tag)
	}
	if age.Message == "" {
		t.Fatalf("empty message")
	}
}

func TestValidateText_RootError(t *testing.T) {
	val, _ := validator.CompileBytes([]byte(personSchema))
	res := val.ValidateText("{\n  \"age\": 3\n}", validator.Options{})
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if e := res.Errors[0]; e.Path != "/" || e.Line != 1 || e.Column != 1 {
		t.Fatalf("root error: %+v", e)
	}
}

func TestValidateText_Valid(t *testing.T) {
	val, _ := validator.CompileBytes([]byte(personSchema))
	res := val.ValidateText(`{"name": "ann", "tags": []}`, validator.Options{})
	if !res.Valid || len(res.Errors) != 0 {
		t.Fatalf("expected valid: %+v", res)
	}
}

func TestValidateText_ParseFailure(t *testing.T) {
	val, _ := validator.CompileBytes([]byte(personSchema))
	res := val.ValidateText("{\n  \"name\": }", validator.Options{Translator: i18n.English})
	if !res.ParseFailed || res.Valid || len(res.Errors) != 1 {
		t.Fatalf("expected a single parse failure: %+v", res)
	}
	e := res.Errors[0]
	if e.Path != "/" || e.Line != 2 {
		t.Fatalf("parse failure: %+v", e)
	}
	if !strings.HasPrefix(e.Message, "Invalid JSON syntax: ") {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	if _, err := validator.CompileBytes([]byte(`{"type": 12}`)); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := validator.CompileBytes([]byte(`{`)); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestCompile_IgnoresSchemaURIOnModel(t *testing.T) {
	doc := jsonschema.Typed(jsonschema.TypeString)
	doc.SchemaURI = infer.DraftURI
	val := validator.MustCompile(doc)
	if errs := val.Validate("x"); len(errs) != 0 {
		t.Fatalf("errs = %+v", errs)
	}
	if errs := val.Validate(false); len(errs) != 1 || errs[0].InstancePath != "" {
		t.Fatalf("errs = %+v", errs)
	}
	if doc.SchemaURI != infer.DraftURI {
		t.Fatalf("input mutated")
	}
}
