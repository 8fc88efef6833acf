package infer_test

import (
	"testing"
	"time"

	"github.com/reoring/schemasynth/infer"
	"github.com/reoring/schemasynth/jsonschema"
)

func itemsProperty(t *testing.T, arr []any, opts infer.Options, name string) *jsonschema.Object {
	t.Helper()
	s, err := infer.Infer(arr, opts)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	items := jsonschema.AsObject(jsonschema.AsObject(s).Items)
	p, ok := items.Properties[name]
	if !ok {
		t.Fatalf("property %q missing", name)
	}
	return jsonschema.AsObject(p)
}

func statusRecords(n int) []any {
	out := make([]any, n)
	for i := range out {
		status := "closed"
		if i%2 == 0 {
			status = "open"
		}
		out[i] = map[string]any{"id": float64(i), "status": status}
	}
	return out
}

func TestEnrich_EnumDetection(t *testing.T) {
	arr := statusRecords(10)
	status := itemsProperty(t, arr, infer.DefaultOptions(), "status")
	want := &jsonschema.Object{Type: jsonschema.Types("string"), Enum: []any{"closed", "open"}}
	if !jsonschema.Equal(status, want) {
		b, _ := jsonschema.Marshal(status)
		t.Fatalf("status: got %s", b)
	}
	id := itemsProperty(t, arr, infer.DefaultOptions(), "id")
	if id.Enum != nil || !id.Type.Is("integer") {
		t.Fatalf("id must stay a plain integer: %+v", id)
	}
}

func TestEnrich_EnumNeedsMinimumSample(t *testing.T) {
	status := itemsProperty(t, statusRecords(9), infer.DefaultOptions(), "status")
	if status.Enum != nil {
		t.Fatalf("enum must not be detected below the sample threshold")
	}
}

func TestEnrich_EnumNumbersSortedNumerically(t *testing.T) {
	arr := make([]any, 12)
	for i := range arr {
		arr[i] = map[string]any{"level": float64([]int{10, 9, 2}[i%3])}
	}
	level := itemsProperty(t, arr, infer.DefaultOptions(), "level")
	b, _ := jsonschema.Marshal(level)
	if string(b) != `{"type":"integer","enum":[2,9,10]}` {
		t.Fatalf("got %s", b)
	}
}

func TestEnrich_Coordinates(t *testing.T) {
	arr := make([]any, 10)
	for i := range arr {
		arr[i] = map[string]any{"coordinates": []any{35.5 + float64(i), 139.25}}
	}
	c := itemsProperty(t, arr, infer.DefaultOptions(), "coordinates")
	b, _ := jsonschema.Marshal(c)
	if string(b) != `{"type":"array","items":{"type":"number"},"minItems":2,"maxItems":2}` {
		t.Fatalf("got %s", b)
	}
}

func TestEnrich_CoordinatesInconsistentLength(t *testing.T) {
	arr := make([]any, 10)
	for i := range arr {
		coords := []any{1.5, 2.5}
		if i == 7 {
			coords = []any{1.5, 2.5, 3.5}
		}
		arr[i] = map[string]any{"point": coords}
	}
	c := itemsProperty(t, arr, infer.DefaultOptions(), "point")
	if c.MaxItems != nil {
		t.Fatalf("a single inconsistent element must disable the rewrite")
	}
}

func TestEnrich_Timestamp(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := infer.DefaultOptions()
	opts.Now = func() time.Time { return now }
	arr := make([]any, 10)
	for i := range arr {
		arr[i] = map[string]any{"createdAt": float64(now.Add(-time.Duration(i) * time.Hour).UnixMilli())}
	}
	ts := itemsProperty(t, arr, opts, "createdAt")
	if ts.Format != "unix-timestamp" || !ts.Type.Is("integer") || ts.Description != infer.TimestampDescription {
		t.Fatalf("unexpected timestamp schema: %+v", ts)
	}

	arr[3] = map[string]any{"createdAt": float64(12345)}
	ts = itemsProperty(t, arr, opts, "createdAt")
	if ts.Format != "" {
		t.Fatalf("an old value must disable the rewrite")
	}
}

func TestEnrich_CustomDetectorsOnly(t *testing.T) {
	opts := infer.DefaultOptions()
	opts.Detectors = []infer.Detector{}
	arr := make([]any, 10)
	for i := range arr {
		arr[i] = map[string]any{"coords": []any{float64(i) + 0.5, 1.5}}
	}
	c := itemsProperty(t, arr, opts, "coords")
	if c.MaxItems != nil {
		t.Fatalf("detectors disabled, got %+v", c)
	}
}

func TestCreateSchemaFromJSON(t *testing.T) {
	doc, err := infer.CreateSchemaFromJSON(map[string]any{"a": "x"}, infer.DefaultOptions())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if doc.SchemaURI != infer.DraftURI || doc.Title != infer.DocumentTitle || !doc.Type.Is("object") {
		t.Fatalf("object root: %+v", doc)
	}
	if len(doc.Required) != 1 || doc.Required[0] != "a" {
		t.Fatalf("required: %v", doc.Required)
	}

	doc, _ = infer.CreateSchemaFromJSON([]any{"x", "y"}, infer.DefaultOptions())
	if !doc.Type.Is("array") || doc.MinItems == nil || *doc.MinItems != 0 || doc.Items == nil {
		t.Fatalf("array root: %+v", doc)
	}

	doc, _ = infer.CreateSchemaFromJSON("hello", infer.DefaultOptions())
	if doc.Title != infer.PrimitiveRootTitle || !doc.Type.Is("object") {
		t.Fatalf("primitive root: %+v", doc)
	}
	if !jsonschema.Equal(doc.Properties["value"], jsonschema.Typed("string")) || doc.Required[0] != "value" {
		t.Fatalf("primitive root must wrap the value schema")
	}
}
