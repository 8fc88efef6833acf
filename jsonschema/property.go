package jsonschema

import "sort"

// Property is a flattened view of one entry of an object schema's
// properties. Required is derived from membership in the schema's required
// list; names in required without a matching property are ignored.
type Property struct {
	Name     string
	Schema   Schema
	Required bool
}

// Properties lists the properties of s sorted by name. Boolean schemas have
// no properties.
func Properties(s Schema) []Property {
	o, ok := s.(*Object)
	if !ok || o == nil || len(o.Properties) == 0 {
		return nil
	}
	req := make(map[string]struct{}, len(o.Required))
	for _, r := range o.Required {
		req[r] = struct{}{}
	}
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Property, 0, len(names))
	for _, name := range names {
		_, isReq := req[name]
		out = append(out, Property{Name: name, Schema: o.Properties[name], Required: isReq})
	}
	return out
}
