package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"

	schemasynth "github.com/reoring/schemasynth"
)

// Parse decodes a JSON Schema document from JSON text. Anything but
// whitespace after the document is a parse error.
func Parse(data []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		off := int64(-1)
		var se *json.SyntaxError
		if errors.As(err, &se) {
			off = se.Offset
		}
		return nil, schemasynth.Issues{{Path: "/", Code: schemasynth.CodeParseError, Message: err.Error(), Offset: off, Cause: err}}
	}
	end := dec.InputOffset()
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, schemasynth.Issues{{Path: "/", Code: schemasynth.CodeParseError, Message: "trailing data after schema document", Offset: end, Cause: err}}
	}
	return FromValue(v)
}

// FromValue converts a generic decoded value (as produced by encoding/json,
// go-json or yaml.v3) into a Schema using the default limits.
func FromValue(v any) (Schema, error) {
	return FromValueWithLimits(v, schemasynth.DefaultLimits())
}

// FromValueWithLimits is FromValue with an explicit traversal budget.
//
// Known keywords with a value of the wrong JSON type are reported as
// invalid_keyword Issues pointing at the keyword; all such problems are
// collected before returning. Unknown keywords are kept in Extra.
func FromValueWithLimits(v any, limits schemasynth.Limits) (Schema, error) {
	d := &decoder{budget: schemasynth.NewBudget(limits)}
	s, err := d.schema(v, "", 0)
	if err != nil {
		return nil, err
	}
	if len(d.issues) > 0 {
		return nil, d.issues
	}
	return s, nil
}

type decoder struct {
	budget *schemasynth.Budget
	issues schemasynth.Issues
}

func (d *decoder) fail(path, keyword, msg string) {
	it := schemasynth.At(path).Issue(schemasynth.CodeInvalidKeyword, msg)
	it.Hint = keyword
	d.issues = schemasynth.AppendIssues(d.issues, it)
}

func (d *decoder) schema(v any, path string, depth int) (Schema, error) {
	if err := d.budget.Enter(path, depth); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case bool:
		return Bool(t), nil
	case map[string]any:
		return d.object(t, path, depth)
	case map[any]any:
		return d.object(stringKeys(t), path, depth)
	}
	d.fail(path, "", fmt.Sprintf("schema must be an object or a boolean, got %s", jsonKind(v)))
	return nil, nil
}

func (d *decoder) object(m map[string]any, path string, depth int) (*Object, error) {
	o := &Object{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := m[key]
		kp := schemasynth.JoinPointer(path, key)
		var err error
		switch key {
		case "$schema":
			o.SchemaURI = d.str(val, kp, key)
		case "$id":
			o.ID = d.str(val, kp, key)
		case "title":
			o.Title = d.str(val, kp, key)
		case "description":
			o.Description = d.str(val, kp, key)
		case "format":
			o.Format = d.str(val, kp, key)
		case "pattern":
			o.Pattern = d.str(val, kp, key)
		case "type":
			o.Type = d.types(val, kp)
		case "enum":
			if arr, ok := val.([]any); ok {
				o.Enum = normalizeValue(arr).([]any)
			} else {
				d.fail(kp, key, "enum must be an array")
			}
		case "multipleOf":
			o.MultipleOf = d.num(val, kp, key)
		case "minimum":
			o.Minimum = d.num(val, kp, key)
		case "maximum":
			o.Maximum = d.num(val, kp, key)
		case "exclusiveMinimum":
			o.ExclusiveMinimum = d.num(val, kp, key)
		case "exclusiveMaximum":
			o.ExclusiveMaximum = d.num(val, kp, key)
		case "minLength":
			o.MinLength = d.num(val, kp, key)
		case "maxLength":
			o.MaxLength = d.num(val, kp, key)
		case "minItems":
			o.MinItems = d.num(val, kp, key)
		case "maxItems":
			o.MaxItems = d.num(val, kp, key)
		case "minContains":
			o.MinContains = d.num(val, kp, key)
		case "maxContains":
			o.MaxContains = d.num(val, kp, key)
		case "minProperties":
			o.MinProperties = d.num(val, kp, key)
		case "maxProperties":
			o.MaxProperties = d.num(val, kp, key)
		case "uniqueItems":
			if b, ok := val.(bool); ok {
				o.UniqueItems = &b
			} else {
				d.fail(kp, key, "uniqueItems must be a boolean")
			}
		case "required":
			o.Required = d.strs(val, kp, key)
		case "items":
			if arr, ok := val.([]any); ok {
				o.TupleItems, err = d.list(arr, kp, depth)
				if o.TupleItems == nil && err == nil {
					o.TupleItems = []Schema{}
				}
			} else {
				o.Items, err = d.schema(val, kp, depth+1)
			}
		case "prefixItems":
			o.PrefixItems, err = d.listValue(val, kp, key, depth)
		case "allOf":
			o.AllOf, err = d.listValue(val, kp, key, depth)
		case "anyOf":
			o.AnyOf, err = d.listValue(val, kp, key, depth)
		case "oneOf":
			o.OneOf, err = d.listValue(val, kp, key, depth)
		case "contains":
			o.Contains, err = d.schema(val, kp, depth+1)
		case "additionalProperties":
			o.AdditionalProperties, err = d.schema(val, kp, depth+1)
		case "not":
			o.Not, err = d.schema(val, kp, depth+1)
		case "if":
			o.If, err = d.schema(val, kp, depth+1)
		case "then":
			o.Then, err = d.schema(val, kp, depth+1)
		case "else":
			o.Else, err = d.schema(val, kp, depth+1)
		case "properties":
			o.Properties, err = d.named(val, kp, key, depth)
		case "patternProperties":
			o.PatternProperties, err = d.named(val, kp, key, depth)
		case "$defs":
			o.Defs, err = d.named(val, kp, key, depth)
		case "definitions":
			o.Definitions, err = d.named(val, kp, key, depth)
		default:
			if o.Extra == nil {
				o.Extra = make(map[string]any)
			}
			o.Extra[key] = normalizeValue(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (d *decoder) str(v any, path, keyword string) string {
	s, ok := v.(string)
	if !ok {
		d.fail(path, keyword, keyword+" must be a string")
	}
	return s
}

func (d *decoder) strs(v any, path, keyword string) []string {
	arr, ok := v.([]any)
	if !ok {
		d.fail(path, keyword, keyword+" must be an array of strings")
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, it := range arr {
		s, ok := it.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s/%d", path, i), keyword, keyword+" entries must be strings")
			continue
		}
		out = append(out, s)
	}
	return out
}

func (d *decoder) num(v any, path, keyword string) *float64 {
	f, ok := toFloat(v)
	if !ok {
		d.fail(path, keyword, keyword+" must be a number")
		return nil
	}
	return &f
}

func (d *decoder) types(v any, path string) TypeSet {
	switch t := v.(type) {
	case string:
		return TypeSet{t}
	case []any:
		out := make(TypeSet, 0, len(t))
		for i, it := range t {
			s, ok := it.(string)
			if !ok {
				d.fail(fmt.Sprintf("%s/%d", path, i), "type", "type entries must be strings")
				continue
			}
			out = append(out, s)
		}
		return out
	}
	d.fail(path, "type", "type must be a string or an array of strings")
	return nil
}

func (d *decoder) listValue(v any, path, keyword string, depth int) ([]Schema, error) {
	arr, ok := v.([]any)
	if !ok {
		d.fail(path, keyword, keyword+" must be an array of schemas")
		return nil, nil
	}
	out, err := d.list(arr, path, depth)
	if out == nil && err == nil {
		out = []Schema{}
	}
	return out, err
}

func (d *decoder) list(arr []any, path string, depth int) ([]Schema, error) {
	var out []Schema
	for i, it := range arr {
		s, err := d.schema(it, fmt.Sprintf("%s/%d", path, i), depth+1)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (d *decoder) named(v any, path, keyword string, depth int) (map[string]Schema, error) {
	var m map[string]any
	switch t := v.(type) {
	case map[string]any:
		m = t
	case map[any]any:
		m = stringKeys(t)
	default:
		d.fail(path, keyword, keyword+" must be an object of schemas")
		return nil, nil
	}
	out := make(map[string]Schema, len(m))
	for name, raw := range m {
		s, err := d.schema(raw, schemasynth.JoinPointer(path, name), depth+1)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out[name] = s
		}
	}
	return out, nil
}

type floater interface {
	Float64() (float64, error)
}

// toFloat accepts the number representations produced by the JSON and YAML
// decoders used in this module.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint:
		return float64(n), true
	case floater:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// normalizeValue turns decoder-specific numbers into float64 and YAML maps
// into map[string]any so that stored values compare and encode uniformly.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		return normalizeValue(stringKeys(t))
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	case string, bool, nil:
		return t
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if ks, ok := k.(string); ok {
			out[ks] = v
		}
	}
	return out
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []any:
		return "array"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// NumberValue returns v as a float64 when it is any of the numeric
// representations produced by the supported decoders.
func NumberValue(v any) (float64, bool) { return toFloat(v) }
