// Package rules checks a schema node's own constraint keywords for internal
// consistency, independent of any data instance.
//
// Each type has a rule table. Field checks (integer, non-negative and
// positive keyword values) run first; the cross-field rules of a type run
// only when all of its field checks pass. Every violation carries a rule
// tag in Path, such as "minMax" or "redundantMinimum", rather than a JSON
// Pointer.
package rules

import (
	"math"

	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/jsonschema"
)

// Rule tags.
const (
	PathLength           = "length"
	PathMinMax           = "minMax"
	PathRedundantMinimum = "redundantMinimum"
	PathRedundantMaximum = "redundantMaximum"
	PathEnum             = "enum"
	PathItemsMinMax      = "minmax"
	PathContainsMinMax   = "minmaxContains"
	PathPropertiesMinMax = "minmax"
	PathType             = "type"
)

// Violation is one failed rule.
type Violation struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	// Key is the message key the text was rendered from.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Result is the outcome of validating one schema node.
type Result struct {
	Success bool        `json:"success" yaml:"success"`
	Errors  []Violation `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// OK is the successful Result.
var OK = Result{Success: true}

// Options configures validation.
type Options struct {
	// Translator renders messages; nil uses i18n.Current().
	Translator i18n.Translator
	// StrictTypes reports type names outside the Draft-07 vocabulary instead
	// of accepting them.
	StrictTypes bool
}

// Validate checks o against the rule table of typ. Types without a table
// (boolean, null and unrecognized names) are valid unless StrictTypes
// rejects an unrecognized name.
func Validate(o *jsonschema.Object, typ string, opts Options) Result {
	if o == nil {
		o = &jsonschema.Object{}
	}
	tr := i18n.Or(opts.Translator)
	set, ok := tables[typ]
	if !ok {
		if opts.StrictTypes && !knownType(typ) {
			return fail([]Violation{{
				Path:    PathType,
				Key:     i18n.KeyUnknownType,
				Message: tr.Message(i18n.KeyUnknownType, map[string]string{"type": typ}),
			}})
		}
		return OK
	}

	var errs []Violation
	for _, f := range set.fields {
		errs = f.check(o, tr, errs)
	}
	if len(errs) == 0 {
		for _, r := range set.cross {
			if !r.ok(o) {
				errs = append(errs, Violation{Path: r.path, Key: r.key, Message: tr.Message(r.key, nil)})
			}
		}
	}
	if len(errs) == 0 {
		return OK
	}
	return fail(errs)
}

func fail(errs []Violation) Result { return Result{Success: false, Errors: errs} }

func knownType(t string) bool {
	switch t {
	case jsonschema.TypeNull, jsonschema.TypeBoolean, jsonschema.TypeObject, jsonschema.TypeArray,
		jsonschema.TypeNumber, jsonschema.TypeInteger, jsonschema.TypeString:
		return true
	}
	return false
}

type ruleSet struct {
	fields []field
	cross  []rule
}

// rule is a cross-field consistency rule.
type rule struct {
	path string
	key  string
	ok   func(o *jsonschema.Object) bool
}

type fieldKind int

const (
	countField    fieldKind = iota // integer and >= 0
	positiveField                  // > 0
)

// field is a check on a single keyword's value; path is the keyword name.
type field struct {
	keyword string
	kind    fieldKind
	get     func(o *jsonschema.Object) *float64
}

func (f field) check(o *jsonschema.Object, tr i18n.Translator, errs []Violation) []Violation {
	v := f.get(o)
	if v == nil {
		return errs
	}
	add := func(key string) {
		errs = append(errs, Violation{Path: f.keyword, Key: key, Message: tr.Message(key, nil)})
	}
	switch f.kind {
	case countField:
		if math.Trunc(*v) != *v || math.IsInf(*v, 0) {
			add(i18n.KeyIntValue)
		}
		if *v < 0 {
			add(i18n.KeyNegativeLength)
		}
	case positiveField:
		if !(*v > 0) {
			add(i18n.KeyPositive)
		}
	}
	return errs
}
