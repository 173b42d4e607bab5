// Package ontology implements the meta-model level of the two-level graph
// system: class declarations (MetaNode), typed edge relations between classes
// (MetaEdge), the compiled Model holding both, and the schema compiler that
// builds a Model from a declarative meta-model document while deriving the
// structural validator for instance documents.
package ontology

import (
	"sort"
	"strings"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/predicate"
)

// MetaNode is a class declaration: a unique class name plus the scalar
// attributes instances of the class may carry, each bound to its validator.
type MetaNode struct {
	name  string
	attrs map[string]predicate.Validator
}

var _ ontograph.Entity = (*MetaNode)(nil)

// ID returns the class name; classes are unique by name within a Model.
func (n *MetaNode) ID() string { return n.name }

// Name returns the class name.
func (n *MetaNode) Name() string { return n.name }

// Attributes returns the declared attribute names in sorted order.
func (n *MetaNode) Attributes() []string {
	out := make([]string, 0, len(n.attrs))
	for a := range n.attrs {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Validator returns the validator bound to the named attribute.
func (n *MetaNode) Validator(attr string) (predicate.Validator, bool) {
	v, ok := n.attrs[attr]
	return v, ok
}

// setAttribute binds an attribute validator. Attribute names are unique within
// a class; a repeated name overwrites, matching the mapping shape of the
// meta-document where duplicate keys cannot survive decoding anyway.
func (n *MetaNode) setAttribute(name string, v predicate.Validator) {
	n.attrs[name] = v
}

// DisplayLabel renders the Graphviz record label: class name over the sorted
// attribute rows.
func (n *MetaNode) DisplayLabel() string {
	b := &strings.Builder{}
	b.WriteString("<{<b>" + n.name + "</b>|")
	b.WriteString(strings.Join(n.Attributes(), "<br />"))
	b.WriteString("}>")
	return b.String()
}

// MetaEdge is a relation declaration between two classes. At most one MetaEdge
// exists per (source class, label) pair.
type MetaEdge struct {
	source *MetaNode
	dest   *MetaNode
	label  string
	// attrs is nil when the declaration carried no attribute mapping at all
	// ("no attributes allowed"), as opposed to an explicit empty mapping.
	attrs map[string]predicate.Validator
}

var _ ontograph.Entity = (*MetaEdge)(nil)

// ID returns the stable identifier source_destination_label.
func (e *MetaEdge) ID() string {
	return e.source.ID() + "_" + e.dest.ID() + "_" + e.label
}

// Source returns the source class.
func (e *MetaEdge) Source() *MetaNode { return e.source }

// Destination returns the destination class.
func (e *MetaEdge) Destination() *MetaNode { return e.dest }

// Label returns the relation name.
func (e *MetaEdge) Label() string { return e.label }

// AllowsAttributes reports whether the declaration carried an attribute
// mapping (possibly empty). When false, instance edges must not carry
// attribute values.
func (e *MetaEdge) AllowsAttributes() bool { return e.attrs != nil }

// Attributes returns the declared edge attribute names in sorted order.
func (e *MetaEdge) Attributes() []string {
	out := make([]string, 0, len(e.attrs))
	for a := range e.attrs {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Validator returns the validator bound to the named edge attribute.
func (e *MetaEdge) Validator(attr string) (predicate.Validator, bool) {
	v, ok := e.attrs[attr]
	return v, ok
}

// DisplayLabel renders the Graphviz edge label: relation name plus one row per
// attribute with its validator spec.
func (e *MetaEdge) DisplayLabel() string {
	b := &strings.Builder{}
	b.WriteString("<<b>" + e.label + "</b>")
	for _, a := range e.Attributes() {
		b.WriteString(`<br align="left"/>` + a)
		if v, ok := e.attrs[a]; ok && v != nil {
			b.WriteString(" = " + v.String())
		}
	}
	b.WriteString(">")
	return b.String()
}

// Model is the compiled meta-model: the class registry, the edge registry
// keyed by (source class, label), and the derived instance-document validator.
// A Model is produced once by Compile and is immutable afterwards; it is the
// shared read-only input to any number of topology loads.
type Model struct {
	classes map[string]*MetaNode
	edges   map[string]map[string]*MetaEdge // source class name -> label -> edge
	derived *DerivedValidator
}

func newModel() *Model {
	return &Model{
		classes: map[string]*MetaNode{},
		edges:   map[string]map[string]*MetaEdge{},
	}
}

// Class returns the class with the given name.
func (m *Model) Class(name string) (*MetaNode, bool) {
	n, ok := m.classes[name]
	return n, ok
}

// getOrCreateClass registers the class on first sight and returns the existing
// instance on every later sight; redeclaration never produces a duplicate.
func (m *Model) getOrCreateClass(name string) *MetaNode {
	if n, ok := m.classes[name]; ok {
		return n
	}
	n := &MetaNode{name: name, attrs: map[string]predicate.Validator{}}
	m.classes[name] = n
	return n
}

// Classes returns all classes sorted by name.
func (m *Model) Classes() []*MetaNode {
	out := make([]*MetaNode, 0, len(m.classes))
	for _, n := range m.classes {
		out = append(out, n)
	}
	ontograph.SortEntities(out)
	return out
}

// Edge returns the relation declared on the source class under the label.
func (m *Model) Edge(sourceClass, label string) (*MetaEdge, bool) {
	e, ok := m.edges[sourceClass][label]
	return e, ok
}

// Edges returns all relations sorted by ID.
func (m *Model) Edges() []*MetaEdge {
	var out []*MetaEdge
	for _, byLabel := range m.edges {
		for _, e := range byLabel {
			out = append(out, e)
		}
	}
	ontograph.SortEntities(out)
	return out
}

// addEdge registers the relation under (source class, label). A later
// declaration for the same key overwrites the earlier one; last write wins.
func (m *Model) addEdge(e *MetaEdge) {
	byLabel, ok := m.edges[e.source.Name()]
	if !ok {
		byLabel = map[string]*MetaEdge{}
		m.edges[e.source.Name()] = byLabel
	}
	byLabel[e.label] = e
}

// Validator returns the instance-document validator derived during compile.
func (m *Model) Validator() *DerivedValidator { return m.derived }
