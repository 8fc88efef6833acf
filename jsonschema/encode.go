package jsonschema

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// entry is one emitted keyword. Keywords are emitted in a fixed order so the
// encoded form is stable and reads like a hand-written schema.
type entry struct {
	key string
	val any
}

func (o *Object) entries() []entry {
	var es []entry
	str := func(k, v string) {
		if v != "" {
			es = append(es, entry{k, v})
		}
	}
	num := func(k string, v *float64) {
		if v != nil {
			es = append(es, entry{k, *v})
		}
	}
	sch := func(k string, v Schema) {
		if v != nil {
			es = append(es, entry{k, v})
		}
	}
	list := func(k string, v []Schema) {
		if v != nil {
			es = append(es, entry{k, v})
		}
	}
	named := func(k string, v map[string]Schema) {
		if v != nil {
			es = append(es, entry{k, v})
		}
	}

	str("$schema", o.SchemaURI)
	str("$id", o.ID)
	str("title", o.Title)
	str("description", o.Description)
	if len(o.Type) > 0 {
		es = append(es, entry{"type", o.Type})
	}
	str("format", o.Format)
	if o.Enum != nil {
		es = append(es, entry{"enum", o.Enum})
	}

	num("multipleOf", o.MultipleOf)
	num("minimum", o.Minimum)
	num("exclusiveMinimum", o.ExclusiveMinimum)
	num("maximum", o.Maximum)
	num("exclusiveMaximum", o.ExclusiveMaximum)

	num("minLength", o.MinLength)
	num("maxLength", o.MaxLength)
	str("pattern", o.Pattern)

	if o.Items != nil {
		sch("items", o.Items)
	} else {
		list("items", o.TupleItems)
	}
	list("prefixItems", o.PrefixItems)
	sch("contains", o.Contains)
	num("minItems", o.MinItems)
	num("maxItems", o.MaxItems)
	num("minContains", o.MinContains)
	num("maxContains", o.MaxContains)
	if o.UniqueItems != nil {
		es = append(es, entry{"uniqueItems", *o.UniqueItems})
	}

	named("properties", o.Properties)
	named("patternProperties", o.PatternProperties)
	sch("additionalProperties", o.AdditionalProperties)
	if o.Required != nil {
		es = append(es, entry{"required", o.Required})
	}
	num("minProperties", o.MinProperties)
	num("maxProperties", o.MaxProperties)

	list("allOf", o.AllOf)
	list("anyOf", o.AnyOf)
	list("oneOf", o.OneOf)
	sch("not", o.Not)
	sch("if", o.If)
	sch("then", o.Then)
	sch("else", o.Else)

	named("$defs", o.Defs)
	named("definitions", o.Definitions)

	for _, k := range sortedKeys(o.Extra) {
		es = append(es, entry{k, o.Extra[k]})
	}
	return es
}

// MarshalJSON encodes the schema with keywords in a fixed order and nested
// maps sorted by key.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML emits the same keyword order as MarshalJSON.
func (o *Object) MarshalYAML() (any, error) {
	return yamlNode(o)
}

// Marshal encodes any Schema (boolean or object) as compact JSON. A nil
// schema encodes as null.
func Marshal(s Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal followed by indentation.
func MarshalIndent(s Schema, prefix, indent string) ([]byte, error) {
	b, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalYAML encodes any Schema as a YAML document.
func MarshalYAML(s Schema) ([]byte, error) {
	n, err := yamlNode(s)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, e := range t.entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(buf, e.key); err != nil {
				return err
			}
			if err := writeJSON(buf, e.val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []Schema:
		buf.WriteByte('[')
		for i, s := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, s); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]Schema:
		buf.WriteByte('{')
		for i, k := range sortedKeys(t) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(buf, k); err != nil {
				return err
			}
			if err := writeJSON(buf, t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case TypeSet:
		if len(t) == 1 {
			return writeJSON(buf, t[0])
		}
		return writeJSON(buf, []string(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func writeKey(buf *bytes.Buffer, k string) error {
	b, err := json.Marshal(k)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return scalarNode(nil)
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range t.entries() {
			vn, err := yamlNode(e.val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode(e.key), vn)
		}
		return n, nil
	case Bool:
		return scalarNode(bool(t))
	case []Schema:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			sn, err := yamlNode(s)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, sn)
		}
		return n, nil
	case map[string]Schema:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range sortedKeys(t) {
			vn, err := yamlNode(t[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode(k), vn)
		}
		return n, nil
	case TypeSet:
		if len(t) == 1 {
			return scalarNode(t[0])
		}
		return scalarNode([]string(t))
	}
	return scalarNode(v)
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

func scalarNode(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
