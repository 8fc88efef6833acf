package infer

import (
	"sort"

	"github.com/reoring/schemasynth/jsonschema"
)

// mergeObjectArray folds the per-element schemas of an array of objects
// into one item schema. A property is required when every element declares
// it. Large enough samples are then enriched using the raw element values.
func (in *inferrer) mergeObjectArray(items []jsonschema.Schema, raw []any) *jsonschema.Object {
	merged := make(map[string]jsonschema.Schema)
	counts := make(map[string]int)
	for _, s := range items {
		props := jsonschema.AsObject(s).Properties
		for _, name := range sortedNames(props) {
			counts[name]++
			if prev, ok := merged[name]; ok {
				merged[name] = MergeSchemas(prev, props[name])
			} else {
				merged[name] = props[name]
			}
		}
	}

	var required []string
	for name, n := range counts {
		if n == len(items) {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	if len(items) >= in.opts.MinSample {
		elems := objectElements(raw)
		detectEnums(merged, elems, len(items), in.opts.EnumMaxValues)
		in.detectFormats(merged, elems)
	}

	out := jsonschema.Typed(jsonschema.TypeObject)
	out.Properties = merged
	out.Required = required
	return out
}

// detectEnums replaces string, number and integer properties whose observed
// values form a small closed set with {type, enum}. The rewrite discards any
// other constraint the property had.
func detectEnums(props map[string]jsonschema.Schema, elems []map[string]any, total, maxValues int) {
	for _, name := range sortedNames(props) {
		cur := jsonschema.AsObject(props[name])
		t := cur.DeclaredType()
		if len(cur.Type) != 1 || (t != jsonschema.TypeString && t != jsonschema.TypeNumber && t != jsonschema.TypeInteger) {
			continue
		}
		values := distinctScalars(elems, name)
		n := len(values)
		if n > 1 && n <= maxValues && float64(n) < float64(total)/2 {
			props[name] = &jsonschema.Object{Type: jsonschema.Types(t), Enum: values}
		}
	}
}

// distinctScalars collects the distinct string and number values observed
// for key, numbers first (ascending) then strings (lexical).
func distinctScalars(elems []map[string]any, key string) []any {
	seen := make(map[any]struct{})
	var nums []float64
	var strs []string
	for _, el := range elems {
		v, ok := el[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				strs = append(strs, s)
			}
			continue
		}
		if f, _, ok := numberOf(v); ok {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				nums = append(nums, f)
			}
		}
	}
	sort.Float64s(nums)
	sort.Strings(strs)
	out := make([]any, 0, len(nums)+len(strs))
	for _, f := range nums {
		out = append(out, f)
	}
	for _, s := range strs {
		out = append(out, s)
	}
	return out
}

func objectElements(raw []any) []map[string]any {
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func sortedNames(m map[string]jsonschema.Schema) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
