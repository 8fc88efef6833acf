// Package infer synthesizes JSON Schema documents from example JSON values.
//
// Inference is structural: every value maps to a schema fragment by its
// runtime shape, arrays of objects are merged into one item schema, and
// sufficiently large object arrays are post-processed by heuristics that
// detect enumerations and semantic formats. All functions are pure; the
// only configurable inputs are carried by Options.
package infer

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/jsonschema"
)

// Options tunes inference. The zero value is usable: missing fields take
// the values of DefaultOptions.
type Options struct {
	Limits schemasynth.Limits
	// Now is the clock used by time-relative detectors.
	Now func() time.Time
	// Detectors run in order over merged object-array properties. nil selects
	// DefaultDetectors; an empty non-nil slice disables format detection.
	Detectors []Detector
	// MinSample is the number of array elements required before any
	// heuristic enrichment is attempted.
	MinSample int
	// EnumMaxValues caps the distinct values of a detected enum.
	EnumMaxValues int
}

const (
	defaultMinSample     = 10
	defaultEnumMaxValues = 10
)

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Limits:        schemasynth.DefaultLimits(),
		Now:           time.Now,
		Detectors:     DefaultDetectors(),
		MinSample:     defaultMinSample,
		EnumMaxValues: defaultEnumMaxValues,
	}
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Detectors == nil {
		o.Detectors = DefaultDetectors()
	}
	if o.MinSample <= 0 {
		o.MinSample = defaultMinSample
	}
	if o.EnumMaxValues <= 0 {
		o.EnumMaxValues = defaultEnumMaxValues
	}
	return o
}

// Infer returns the schema fragment describing v. v is a value as produced
// by decoding JSON: nil, bool, string, a number (float64, an integer kind,
// or a json.Number-like type), []any or map[string]any. Values of any other
// Go type infer to the empty schema.
//
// The only error is a resource-limit error wrapping
// schemasynth.ErrLimitExceeded.
func Infer(v any, opts Options) (jsonschema.Schema, error) {
	in := newInferrer(opts)
	return in.value(v, "", 0)
}

type inferrer struct {
	opts   Options
	budget *schemasynth.Budget
}

func newInferrer(opts Options) *inferrer {
	opts = opts.withDefaults()
	return &inferrer{opts: opts, budget: schemasynth.NewBudget(opts.Limits)}
}

func (in *inferrer) value(v any, path string, depth int) (jsonschema.Schema, error) {
	if err := in.budget.Enter(path, depth); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return jsonschema.Typed(jsonschema.TypeNull), nil
	case bool:
		return jsonschema.Typed(jsonschema.TypeBoolean), nil
	case string:
		return stringSchema(t), nil
	case map[string]any:
		return in.object(t, path, depth)
	case []any:
		return in.array(t, path, depth)
	}
	if _, integer, ok := numberOf(v); ok {
		if integer {
			return jsonschema.Typed(jsonschema.TypeInteger), nil
		}
		return jsonschema.Typed(jsonschema.TypeNumber), nil
	}
	return &jsonschema.Object{}, nil
}

func (in *inferrer) object(m map[string]any, path string, depth int) (jsonschema.Schema, error) {
	out := jsonschema.Typed(jsonschema.TypeObject)
	out.Properties = make(map[string]jsonschema.Schema, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var required []string
	for _, k := range keys {
		s, err := in.value(m[k], schemasynth.JoinPointer(path, k), depth+1)
		if err != nil {
			return nil, err
		}
		out.Properties[k] = s
		if m[k] != nil {
			required = append(required, k)
		}
	}
	out.Required = required
	return out, nil
}

func (in *inferrer) array(arr []any, path string, depth int) (jsonschema.Schema, error) {
	out := jsonschema.Typed(jsonschema.TypeArray)
	if len(arr) == 0 {
		out.Items = &jsonschema.Object{}
		return out, nil
	}

	items := make([]jsonschema.Schema, len(arr))
	for i, el := range arr {
		s, err := in.value(el, schemasynth.JoinPointer(path, strconv.Itoa(i)), depth+1)
		if err != nil {
			return nil, err
		}
		items[i] = s
	}
	out.MinItems = jsonschema.Num(0)

	first := jsonschema.AsObject(items[0]).DeclaredType()
	same := true
	for _, s := range items[1:] {
		if jsonschema.AsObject(s).DeclaredType() != first {
			same = false
			break
		}
	}

	switch {
	case same && first == jsonschema.TypeObject:
		out.Items = in.mergeObjectArray(items, arr)
	case same:
		// Homogeneous primitive arrays keep the first element's schema; the
		// siblings are not merged, so differing string formats are lost.
		out.Items = items[0]
	default:
		unique := jsonschema.Dedupe(items)
		if len(unique) == 1 {
			out.Items = unique[0]
		} else {
			out.Items = &jsonschema.Object{OneOf: unique}
		}
	}
	return out, nil
}

// numberOf reports the float value of a JSON number and whether it is
// mathematically an integer.
func numberOf(v any) (f float64, integer bool, ok bool) {
	switch n := v.(type) {
	case float64:
		return n, isIntegral(n), true
	case float32:
		return float64(n), isIntegral(float64(n)), true
	case int:
		return float64(n), true, true
	case int8:
		return float64(n), true, true
	case int16:
		return float64(n), true, true
	case int32:
		return float64(n), true, true
	case int64:
		return float64(n), true, true
	case uint:
		return float64(n), true, true
	case uint8:
		return float64(n), true, true
	case uint16:
		return float64(n), true, true
	case uint32:
		return float64(n), true, true
	case uint64:
		return float64(n), true, true
	case jsonNumber:
		s := n.String()
		f, err := n.Float64()
		if !strings.ContainsAny(s, ".eE") {
			// Plain integer literal; exact even when beyond float precision.
			return f, true, true
		}
		if err != nil {
			return f, false, true
		}
		return f, isIntegral(f), true
	}
	return 0, false, false
}

// jsonNumber matches encoding/json.Number and go-json's Number.
type jsonNumber interface {
	String() string
	Float64() (float64, error)
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
}
