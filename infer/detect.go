package infer

import (
	"regexp"
	"time"

	"github.com/reoring/schemasynth/jsonschema"
)

// Detector recognizes a semantic format from a property's name and the
// values observed for it across an object array.
//
// Name is a label for diagnostics. Property selects candidate properties by
// name. Detect receives the merged property schema and the raw value of
// every element that has the property; it returns the replacement schema,
// or false to leave the property alone. A single non-conforming value must
// disable the rewrite.
type Detector struct {
	Name     string
	Property *regexp.Regexp
	Detect   func(current *jsonschema.Object, observed []any, now time.Time) (jsonschema.Schema, bool)
}

// DefaultDetectors returns the built-in detectors: coordinates, then
// timestamps.
func DefaultDetectors() []Detector {
	return []Detector{CoordinatesDetector(), TimestampDetector()}
}

// CoordinatesDetector rewrites numeric arrays of one consistent length (2 or
// 3) under coordinate-like names to a fixed-length array of numbers.
func CoordinatesDetector() Detector {
	return Detector{
		Name:     "coordinates",
		Property: regexp.MustCompile(`(?i)coordinates?|coords?|latLon|lonLat|point`),
		Detect:   detectCoordinates,
	}
}

func detectCoordinates(cur *jsonschema.Object, observed []any, _ time.Time) (jsonschema.Schema, bool) {
	if !cur.Type.Is(jsonschema.TypeArray) {
		return nil, false
	}
	it := jsonschema.AsObject(cur.Items).Type
	if !it.Is(jsonschema.TypeNumber) && !it.Is(jsonschema.TypeInteger) {
		return nil, false
	}
	length := -1
	for _, v := range observed {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		if length < 0 {
			length = len(arr)
		}
		if len(arr) != length || (length != 2 && length != 3) {
			return nil, false
		}
		for _, el := range arr {
			if _, _, ok := numberOf(el); !ok {
				return nil, false
			}
		}
	}
	if length < 0 {
		return nil, false
	}
	out := jsonschema.Typed(jsonschema.TypeArray)
	out.Items = jsonschema.Typed(jsonschema.TypeNumber)
	out.MinItems = jsonschema.Num(float64(length))
	out.MaxItems = jsonschema.Num(float64(length))
	return out, true
}

// timestampWindow is how far back a value may lie and still be read as a
// Unix timestamp in milliseconds.
const timestampWindow = 50 * 365 * 24 * time.Hour

// TimestampDescription annotates detected timestamp properties.
const TimestampDescription = "Unix timestamp (likely milliseconds)"

// TimestampDetector marks integer properties with timestamp-like names as
// format unix-timestamp when every value is at most fifty years old in
// milliseconds.
func TimestampDetector() Detector {
	return Detector{
		Name:     "timestamp",
		Property: regexp.MustCompile(`(?i)timestamp|createdAt|updatedAt|occurredAt`),
		Detect:   detectTimestamp,
	}
}

func detectTimestamp(cur *jsonschema.Object, observed []any, now time.Time) (jsonschema.Schema, bool) {
	if !cur.Type.Is(jsonschema.TypeInteger) {
		return nil, false
	}
	floor := float64(now.Add(-timestampWindow).UnixMilli())
	for _, v := range observed {
		f, integer, ok := numberOf(v)
		if !ok || !integer || f < floor {
			return nil, false
		}
	}
	return &jsonschema.Object{
		Type:        jsonschema.Types(jsonschema.TypeInteger),
		Format:      "unix-timestamp",
		Description: TimestampDescription,
	}, true
}

func (in *inferrer) detectFormats(props map[string]jsonschema.Schema, elems []map[string]any) {
	now := in.opts.Now()
	for _, name := range sortedNames(props) {
		var observed []any
		collected := false
		for _, d := range in.opts.Detectors {
			if d.Property == nil || d.Detect == nil || !d.Property.MatchString(name) {
				continue
			}
			if !collected {
				observed = observedValues(elems, name)
				collected = true
			}
			if s, ok := d.Detect(jsonschema.AsObject(props[name]), observed, now); ok {
				props[name] = s
			}
		}
	}
}

func observedValues(elems []map[string]any, key string) []any {
	var out []any
	for _, el := range elems {
		if v, ok := el[key]; ok {
			out = append(out, v)
		}
	}
	return out
}
