package rules

import (
	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/jsonschema"
)

var tables = map[string]ruleSet{
	jsonschema.TypeString:  stringRules,
	jsonschema.TypeNumber:  numberRules,
	jsonschema.TypeInteger: numberRules,
	jsonschema.TypeArray:   arrayRules,
	jsonschema.TypeObject:  objectRules,
}

var stringRules = ruleSet{
	fields: []field{
		{"minLength", countField, func(o *jsonschema.Object) *float64 { return o.MinLength }},
		{"maxLength", countField, func(o *jsonschema.Object) *float64 { return o.MaxLength }},
	},
	cross: []rule{
		{PathLength, i18n.KeyStringLengthRange, func(o *jsonschema.Object) bool {
			return RefineRangeConsistency(o.MinLength, false, o.MaxLength, false)
		}},
	},
}

var numberRules = ruleSet{
	fields: []field{
		{"multipleOf", positiveField, func(o *jsonschema.Object) *float64 { return o.MultipleOf }},
	},
	cross: []rule{
		{PathMinMax, i18n.KeyNumberMinMax, numberBoundsConsistent},
		{PathRedundantMinimum, i18n.KeyNumberRedundantMinimum, func(o *jsonschema.Object) bool {
			return o.Minimum == nil || o.ExclusiveMinimum == nil
		}},
		{PathRedundantMaximum, i18n.KeyNumberRedundantMaximum, func(o *jsonschema.Object) bool {
			return o.Maximum == nil || o.ExclusiveMaximum == nil
		}},
		{PathEnum, i18n.KeyNumberEnumOutOfRange, enumWithinBounds},
	},
}

var arrayRules = ruleSet{
	fields: []field{
		{"minItems", countField, func(o *jsonschema.Object) *float64 { return o.MinItems }},
		{"maxItems", countField, func(o *jsonschema.Object) *float64 { return o.MaxItems }},
		{"minContains", countField, func(o *jsonschema.Object) *float64 { return o.MinContains }},
		{"maxContains", countField, func(o *jsonschema.Object) *float64 { return o.MaxContains }},
	},
	cross: []rule{
		{PathItemsMinMax, i18n.KeyArrayMinMax, func(o *jsonschema.Object) bool {
			return RefineRangeConsistency(o.MinItems, false, o.MaxItems, false)
		}},
		{PathContainsMinMax, i18n.KeyArrayContainsMinMax, func(o *jsonschema.Object) bool {
			return RefineRangeConsistency(o.MinContains, false, o.MaxContains, false)
		}},
	},
}

var objectRules = ruleSet{
	fields: []field{
		{"minProperties", countField, func(o *jsonschema.Object) *float64 { return o.MinProperties }},
		{"maxProperties", countField, func(o *jsonschema.Object) *float64 { return o.MaxProperties }},
	},
	cross: []rule{
		{PathPropertiesMinMax, i18n.KeyObjectMinMax, func(o *jsonschema.Object) bool {
			return RefineRangeConsistency(o.MinProperties, false, o.MaxProperties, false)
		}},
	},
}

// numberBoundsConsistent checks every pairing of an inclusive or exclusive
// lower bound with an inclusive or exclusive upper bound.
func numberBoundsConsistent(o *jsonschema.Object) bool {
	return RefineRangeConsistency(o.Minimum, false, o.Maximum, false) &&
		RefineRangeConsistency(o.Minimum, false, o.ExclusiveMaximum, true) &&
		RefineRangeConsistency(o.ExclusiveMinimum, true, o.Maximum, false) &&
		RefineRangeConsistency(o.ExclusiveMinimum, true, o.ExclusiveMaximum, true)
}

// enumWithinBounds requires every enum value to be a number satisfying all
// declared bounds. An empty or absent enum passes.
func enumWithinBounds(o *jsonschema.Object) bool {
	for _, v := range o.Enum {
		f, ok := jsonschema.NumberValue(v)
		if !ok {
			return false
		}
		if o.Minimum != nil && f < *o.Minimum {
			return false
		}
		if o.Maximum != nil && f > *o.Maximum {
			return false
		}
		if o.ExclusiveMinimum != nil && f <= *o.ExclusiveMinimum {
			return false
		}
		if o.ExclusiveMaximum != nil && f >= *o.ExclusiveMaximum {
			return false
		}
	}
	return true
}
