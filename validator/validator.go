// Package validator runs a Draft-07 instance validator against JSON text
// and returns errors positioned in that text.
//
// The instance validator itself is github.com/santhosh-tekuri/jsonschema/v5;
// this package adapts its error tree to the flat {instancePath, message}
// list consumed by package locate.
package validator

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	sjs "github.com/santhosh-tekuri/jsonschema/v5"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/locate"
)

const resourceURL = "schema.json"

// Validator is a compiled schema. It is safe for concurrent use.
type Validator struct {
	compiled *sjs.Schema
}

// Compile compiles s as a Draft-07 schema. Any "$schema" on the root is
// ignored.
func Compile(s jsonschema.Schema) (*Validator, error) {
	if o, ok := s.(*jsonschema.Object); ok && o != nil && o.SchemaURI != "" {
		o = o.Clone()
		o.SchemaURI = ""
		s = o
	}
	data, err := jsonschema.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return CompileBytes(data)
}

// CompileBytes compiles a JSON schema document. Documents without
// "$schema" are read as Draft-07.
func CompileBytes(data []byte) (*Validator, error) {
	c := sjs.NewCompiler()
	c.Draft = sjs.Draft7
	if err := c.AddResource(resourceURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(s jsonschema.Schema) *Validator {
	v, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a decoded instance (as produced by schemasynth.ParseJSON)
// and returns the leaf errors in instance-path order. A nil result means
// the instance is valid.
func (v *Validator) Validate(instance any) []locate.RawError {
	err := v.compiled.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *sjs.ValidationError
	if !errors.As(err, &ve) {
		return []locate.RawError{{InstancePath: "", Message: err.Error()}}
	}
	var out []locate.RawError
	collectLeaves(ve, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].InstancePath < out[j].InstancePath })
	return out
}

func collectLeaves(ve *sjs.ValidationError, out *[]locate.RawError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, locate.RawError{InstancePath: ve.InstanceLocation, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}

// Options configures ValidateText.
type Options struct {
	// Translator renders the parse failure message; nil uses i18n.Current().
	Translator i18n.Translator
	// Parse controls instance parsing (limits, duplicate keys).
	Parse schemasynth.ParseOpt
}

// Result is the outcome of validating instance text.
type Result struct {
	Valid  bool                     `json:"valid" yaml:"valid"`
	Errors []locate.PositionedError `json:"errors,omitempty" yaml:"errors,omitempty"`
	// ParseFailed reports that the text was not JSON; Errors then holds a
	// single root error.
	ParseFailed bool `json:"parseFailed,omitempty" yaml:"parseFailed,omitempty"`
}

// ValidateText parses text and validates it. A parse failure is returned as
// a single positioned error at the root rather than as an error value.
func (v *Validator) ValidateText(text string, opts Options) Result {
	instance, err := schemasynth.ParseJSONString(text, opts.Parse)
	if err != nil {
		return Result{
			ParseFailed: true,
			Errors:      []locate.PositionedError{locate.ParseFailure(err, text, opts.Translator)},
		}
	}
	raw := v.Validate(instance)
	if len(raw) == 0 {
		return Result{Valid: true}
	}
	return Result{Errors: locate.Locate(text, raw)}
}
