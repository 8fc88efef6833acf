package infer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/infer"
	"github.com/reoring/schemasynth/jsonschema"
)

func mustInferText(t *testing.T, text string) string {
	t.Helper()
	v, err := schemasynth.ParseJSONString(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s, err := infer.Infer(v, infer.DefaultOptions())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	b, err := jsonschema.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestInfer_Primitives(t *testing.T) {
	cases := map[string]string{
		`null`:   `{"type":"null"}`,
		`true`:   `{"type":"boolean"}`,
		`3`:      `{"type":"integer"}`,
		`3.0`:    `{"type":"integer"}`,
		`1e3`:    `{"type":"integer"}`,
		`3.25`:   `{"type":"number"}`,
		`"text"`: `{"type":"string"}`,
	}
	for in, want := range cases {
		if got := mustInferText(t, in); got != want {
			t.Fatalf("%s: got %s want %s", in, got, want)
		}
	}
}

func TestDetectFormat_Priority(t *testing.T) {
	cases := map[string]string{
		"2024-01-15":                  "date",
		"2024-01-15T10:20:30Z":        "date-time",
		"2024-01-15T10:20:30.5+09:00": "date-time",
		"dev@example.com":             "email",
		uuid.NewString():              "uuid",
		"https://example.com/a?b=1":   "uri",
		"FTP://files.example.org":     "uri",
		"hello world":                 "",
		"2024-1-15":                   "",
		"2024-02-30":                  "",
		"2024-01-15T10:20:30":         "",
	}
	for in, want := range cases {
		if got := infer.DetectFormat(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
	if got := infer.DetectFormat(strings.ToUpper(uuid.NewString())); got != "uuid" {
		t.Fatalf("upper-case uuid: got %q", got)
	}
}

func TestInfer_ObjectRequiredSkipsNull(t *testing.T) {
	got := mustInferText(t, `{"b":null,"a":"x@y.io","c":[1,2]}`)
	want := `{"type":"object","properties":{"a":{"type":"string","format":"email"},"b":{"type":"null"},"c":{"type":"array","items":{"type":"integer"},"minItems":0}},"required":["a","c"]}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestInfer_EmptyContainers(t *testing.T) {
	if got := mustInferText(t, `[]`); got != `{"type":"array","items":{}}` {
		t.Fatalf("empty array: %s", got)
	}
	if got := mustInferText(t, `{}`); got != `{"type":"object","properties":{}}` {
		t.Fatalf("empty object: %s", got)
	}
}

func TestInfer_HomogeneousArrayKeepsFirst(t *testing.T) {
	got := mustInferText(t, `["2024-01-15","plain"]`)
	want := `{"type":"array","items":{"type":"string","format":"date"},"minItems":0}`
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestInfer_MixedArrayOneOf(t *testing.T) {
	got := mustInferText(t, `[1,"a",2,"b"]`)
	want := `{"type":"array","items":{"oneOf":[{"type":"integer"},{"type":"string"}]},"minItems":0}`
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestInfer_ObjectArrayRequiredIntersection(t *testing.T) {
	got := mustInferText(t, `[{"id":1,"name":"a"},{"id":2.5}]`)
	want := `{"type":"array","items":{"type":"object","properties":{"id":{"type":"number"},"name":{"type":"string"}},"required":["id"]},"minItems":0}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestInfer_Limits(t *testing.T) {
	text := strings.Repeat("[", 40) + strings.Repeat("]", 40)
	v, err := schemasynth.ParseJSONString(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts := infer.DefaultOptions()
	opts.Limits = schemasynth.Limits{MaxDepth: 16}
	if _, err := infer.Infer(v, opts); !errors.Is(err, schemasynth.ErrLimitExceeded) {
		t.Fatalf("expected depth limit, got %v", err)
	}
	opts.Limits = schemasynth.Limits{MaxNodes: 10}
	if _, err := infer.Infer(v, opts); !errors.Is(err, schemasynth.ErrLimitExceeded) {
		t.Fatalf("expected node limit, got %v", err)
	}
	if _, err := infer.Infer(v, infer.DefaultOptions()); err != nil {
		t.Fatalf("default limits: %v", err)
	}
}

func TestInfer_UnknownGoTypeIsEmptySchema(t *testing.T) {
	s, err := infer.Infer(struct{}{}, infer.Options{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if b, _ := jsonschema.Marshal(s); string(b) != "{}" {
		t.Fatalf("got %s", b)
	}
}
