package jsonschema

// Schema is a JSON Schema node: either a boolean schema (Bool) or an object
// schema (*Object). Consumers switch on the concrete type first:
//
//	switch s := s.(type) {
//	case jsonschema.Bool:
//	case *jsonschema.Object:
//	}
//
// A nil Schema means "absent" wherever a field is optional.
type Schema interface {
	isSchema()
}

// Bool is a boolean schema: true accepts every instance, false none.
type Bool bool

func (Bool) isSchema() {}

const (
	True  Bool = true
	False Bool = false
)

// Simple type names of the Draft-07 vocabulary.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeString  = "string"
)

// Object is an object-shaped schema. Only the keywords this module reasons
// about get fields; every other keyword is preserved in Extra.
//
// Numeric keywords are stored as *float64 so that malformed values such as
// a fractional minLength survive decoding and can be reported by the rule
// checks instead of being rejected outright.
type Object struct {
	// Core / annotations
	SchemaURI   string // $schema
	ID          string // $id
	Title       string
	Description string
	Type        TypeSet
	Format      string
	Enum        []any

	// Number
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64

	// String
	MinLength *float64
	MaxLength *float64
	Pattern   string

	// Array
	Items       Schema   // single-schema form
	TupleItems  []Schema // legacy array form of items
	PrefixItems []Schema
	Contains    Schema
	MinItems    *float64
	MaxItems    *float64
	MinContains *float64
	MaxContains *float64
	UniqueItems *bool

	// Object
	Properties           map[string]Schema
	PatternProperties    map[string]Schema
	AdditionalProperties Schema
	Required             []string
	MinProperties        *float64
	MaxProperties        *float64

	// Combinators
	AllOf []Schema
	AnyOf []Schema
	OneOf []Schema
	Not   Schema
	If    Schema
	Then  Schema
	Else  Schema

	// Definitions
	Defs        map[string]Schema // $defs
	Definitions map[string]Schema // legacy definitions

	// Extra keeps unrecognized keywords verbatim.
	Extra map[string]any
}

func (*Object) isSchema() {}

// TypeSet is the value of the "type" keyword: a single name or a list.
type TypeSet []string

// Types builds a TypeSet from names.
func Types(names ...string) TypeSet { return TypeSet(names) }

// First returns the first declared type, or "" when none is declared.
func (t TypeSet) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Is reports whether the set is exactly the single type name.
func (t TypeSet) Is(name string) bool { return len(t) == 1 && t[0] == name }

// Equal reports element-wise equality.
func (t TypeSet) Equal(o TypeSet) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

// Num returns a pointer to v, for populating numeric keywords.
func Num(v float64) *float64 { return &v }

// Typed returns a fresh object schema declaring a single type.
func Typed(name string) *Object { return &Object{Type: Types(name)} }

// IsBool reports whether s is a boolean schema and, if so, its value.
func IsBool(s Schema) (value bool, ok bool) {
	b, ok := s.(Bool)
	return bool(b), ok
}

// AsObject returns the object view of s. Boolean and absent schemas map to
// an empty object; callers must not mutate the result.
func AsObject(s Schema) *Object {
	if o, ok := s.(*Object); ok && o != nil {
		return o
	}
	return &Object{}
}

// DeclaredType returns the first declared type or "" when type is absent.
func (o *Object) DeclaredType() string { return o.Type.First() }

// EffectiveType is DeclaredType with the module-wide default applied: a node
// without "type" is treated as an object.
func (o *Object) EffectiveType() string {
	if t := o.DeclaredType(); t != "" {
		return t
	}
	return TypeObject
}

// Clone returns a shallow copy whose top-level slices and maps may be
// modified without affecting o. Nested schemas are shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := *o
	c.Type = append(TypeSet(nil), o.Type...)
	c.Enum = cloneSlice(o.Enum)
	c.TupleItems = cloneSlice(o.TupleItems)
	c.PrefixItems = cloneSlice(o.PrefixItems)
	c.Required = cloneSlice(o.Required)
	c.AllOf = cloneSlice(o.AllOf)
	c.AnyOf = cloneSlice(o.AnyOf)
	c.OneOf = cloneSlice(o.OneOf)
	c.Properties = cloneMap(o.Properties)
	c.PatternProperties = cloneMap(o.PatternProperties)
	c.Defs = cloneMap(o.Defs)
	c.Definitions = cloneMap(o.Definitions)
	c.Extra = cloneMap(o.Extra)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
