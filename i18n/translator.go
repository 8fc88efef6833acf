package i18n

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Translator retrieves localized messages by key. data fills {name}
// placeholders in the template.
type Translator interface {
	Message(key string, data map[string]string) string
}

// Table is a flat key to template map. Keys missing from a Table fall back
// to English, then to the key itself.
type Table map[string]string

// Message implements Translator.
func (t Table) Message(key string, data map[string]string) string {
	tmpl, ok := t[key]
	if !ok {
		tmpl, ok = English[key]
	}
	if !ok {
		return key
	}
	return Render(tmpl, data)
}

// With returns a copy of t overlaid with the entries of other.
func (t Table) With(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Render substitutes {name} placeholders. Unknown placeholders are kept.
func Render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// LoadYAML reads a flat key: message YAML mapping. Nested mappings are
// rejected.
func LoadYAML(data []byte) (Table, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: invalid YAML table: %w", err)
	}
	out := make(Table, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		case map[string]any, []any:
			return nil, fmt.Errorf("i18n: key %q: expected a string, got a nested value", k)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out, nil
}

// Lookup returns the built-in table for a language tag such as "ja" or
// "en-US". Unknown languages resolve to English with ok=false.
func Lookup(lang string) (Table, bool) {
	base := strings.ToLower(lang)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "ja":
		return Japanese, true
	case "en":
		return English, true
	}
	return English, false
}

// current holds the package-level Translator. It is safe to switch it while
// other goroutines render messages.
var current atomic.Value

type holder struct{ tr Translator }

func init() { current.Store(holder{English}) }

// SetLanguage switches the current Translator to a built-in table.
func SetLanguage(lang string) {
	t, _ := Lookup(lang)
	current.Store(holder{t})
}

// SetTranslator replaces the current Translator; nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = English
	}
	current.Store(holder{tr})
}

// Current returns the Translator used by T.
func Current() Translator { return current.Load().(holder).tr }

// T fetches a message for key using the current Translator.
func T(key string, data map[string]string) string { return Current().Message(key, data) }

// Or returns tr, or the current Translator when tr is nil.
func Or(tr Translator) Translator {
	if tr == nil {
		return Current()
	}
	return tr
}
