// Package tree folds the self-consistency checks of every node of a schema
// into a tree with cumulative error counts, for rendering per-field error
// badges.
package tree

import (
	"fmt"
	"sort"
	"strconv"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/rules"
)

// Node is one schema node's validation outcome. CumulativeErrors is the
// number of the node's own violations plus the cumulative counts of all
// children. Nodes are built fresh by Build and never modified afterwards.
type Node struct {
	Name             string           `json:"name" yaml:"name"`
	Validation       rules.Result     `json:"validation" yaml:"validation"`
	Children         map[string]*Node `json:"children" yaml:"children"`
	CumulativeErrors int              `json:"cumulativeChildrenErrors" yaml:"cumulativeChildrenErrors"`
	// Required is set on property children named in the parent's required
	// list.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Pointer is the JSON Pointer of the node within the schema document.
	Pointer string `json:"-" yaml:"-"`
	order   []string
}

// Options configures Build.
type Options struct {
	Rules  rules.Options
	Limits schemasynth.Limits
}

// Build walks s and validates every node. Boolean true is a valid leaf,
// boolean false a leaf with one error. A node without "type" is treated as
// an object. Child keys are:
//
//	properties            <name>
//	patternProperties     pattern:<name>
//	additionalProperties  additionalProperties
//	items                 items, or items[<i>] for the tuple form
//	prefixItems           prefixItems[<i>]
//	contains              contains
//	allOf/anyOf/oneOf     <combinator>:<i>
//	not/if/then/else      the keyword
//	$defs                 $defs:<name>
//	definitions           definitions:<name>
//
// The only error is a resource-limit error wrapping
// schemasynth.ErrLimitExceeded.
func Build(s jsonschema.Schema, opts Options) (*Node, error) {
	b := &builder{opts: opts, budget: schemasynth.NewBudget(opts.Limits)}
	return b.node(s, "", 0)
}

type builder struct {
	opts   Options
	budget *schemasynth.Budget
}

func (b *builder) node(s jsonschema.Schema, ptr string, depth int) (*Node, error) {
	if err := b.budget.Enter(ptr, depth); err != nil {
		return nil, err
	}
	if v, ok := jsonschema.IsBool(s); ok {
		n := &Node{Name: strconv.FormatBool(v), Validation: rules.OK, Children: map[string]*Node{}, Pointer: ptr}
		if !v {
			tr := i18n.Or(b.opts.Rules.Translator)
			n.Validation = rules.Result{Errors: []rules.Violation{{
				Key:     i18n.KeySchemaValidation,
				Message: tr.Message(i18n.KeySchemaValidation, nil),
			}}}
			n.CumulativeErrors = 1
		}
		return n, nil
	}

	o := jsonschema.AsObject(s)
	typ := o.EffectiveType()
	n := &Node{
		Name:       typ,
		Validation: rules.Validate(o, typ, b.opts.Rules),
		Children:   map[string]*Node{},
		Pointer:    ptr,
	}

	c := childAdder{b: b, n: n, base: ptr, depth: depth + 1}
	switch typ {
	case jsonschema.TypeObject:
		c.properties(o)
		c.named("pattern:", "patternProperties", o.PatternProperties)
		c.one("additionalProperties", "/additionalProperties", o.AdditionalProperties)
	case jsonschema.TypeArray:
		if o.Items != nil {
			c.one("items", "/items", o.Items)
		} else {
			c.list("items[%d]", "items", o.TupleItems)
		}
		c.list("prefixItems[%d]", "prefixItems", o.PrefixItems)
		c.one("contains", "/contains", o.Contains)
	}
	c.list("allOf:%d", "allOf", o.AllOf)
	c.list("anyOf:%d", "anyOf", o.AnyOf)
	c.list("oneOf:%d", "oneOf", o.OneOf)
	c.one("not", "/not", o.Not)
	c.one("if", "/if", o.If)
	c.one("then", "/then", o.Then)
	c.one("else", "/else", o.Else)
	c.named("$defs:", "$defs", o.Defs)
	c.named("definitions:", "definitions", o.Definitions)
	if c.err != nil {
		return nil, c.err
	}

	n.CumulativeErrors = len(n.Validation.Errors)
	for _, child := range n.Children {
		n.CumulativeErrors += child.CumulativeErrors
	}
	return n, nil
}

// childAdder attaches children in traversal order and stops at the first
// error.
type childAdder struct {
	b     *builder
	n     *Node
	base  string
	depth int
	err   error
}

func (c *childAdder) add(key, ptr string, s jsonschema.Schema) *Node {
	if c.err != nil || s == nil {
		return nil
	}
	child, err := c.b.node(s, ptr, c.depth)
	if err != nil {
		c.err = err
		return nil
	}
	if _, dup := c.n.Children[key]; !dup {
		c.n.order = append(c.n.order, key)
	}
	c.n.Children[key] = child
	return child
}

// properties attaches one child per property. Required names without a
// property are ignored.
func (c *childAdder) properties(o *jsonschema.Object) {
	for _, p := range jsonschema.Properties(o) {
		if child := c.add(p.Name, schemasynth.JoinPointer(c.base+"/properties", p.Name), p.Schema); child != nil {
			child.Required = p.Required
		}
	}
}

func (c *childAdder) one(key, suffix string, s jsonschema.Schema) {
	c.add(key, c.base+suffix, s)
}

func (c *childAdder) list(keyFormat, keyword string, ss []jsonschema.Schema) {
	for i, s := range ss {
		idx := strconv.Itoa(i)
		c.add(fmt.Sprintf(keyFormat, i), c.base+"/"+keyword+"/"+idx, s)
	}
}

func (c *childAdder) named(prefix, keyword string, m map[string]jsonschema.Schema) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.add(prefix+name, schemasynth.JoinPointer(c.base+"/"+keyword, name), m[name])
	}
}

// ChildNames returns the child keys in traversal order.
func (n *Node) ChildNames() []string {
	if len(n.order) != len(n.Children) {
		names := make([]string, 0, len(n.Children))
		for k := range n.Children {
			names = append(names, k)
		}
		sort.Strings(names)
		return names
	}
	return append([]string(nil), n.order...)
}

// OwnErrors returns the number of violations of the node itself.
func (n *Node) OwnErrors() int { return len(n.Validation.Errors) }

// Issues flattens the tree depth-first into Issues. Path is the schema
// pointer of the offending node ("/" for the root), Rule the rule tag and
// Hint the message key.
func (n *Node) Issues() schemasynth.Issues {
	var out schemasynth.Issues
	n.Walk(func(node *Node) {
		for _, v := range node.Validation.Errors {
			ptr := node.Pointer
			if ptr == "" {
				ptr = "/"
			}
			out = append(out, schemasynth.Issue{
				Path:    ptr,
				Code:    schemasynth.CodeInconsistentConstraint,
				Message: v.Message,
				Hint:    v.Key,
				Rule:    v.Path,
				Offset:  -1,
			})
		}
	})
	return out
}

// Walk visits n and its descendants depth-first in traversal order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, k := range n.ChildNames() {
		n.Children[k].Walk(fn)
	}
}
