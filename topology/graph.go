// Package topology implements the instance level of the two-level graph
// system: concrete nodes and edges conforming to a compiled ontology.Model,
// the identity-deduplicating Graph registry, and the loader that builds a
// Graph from a validated instance document.
package topology

import (
	"fmt"
	"sort"
	"strings"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/ontology"
)

// Identity is the node identity pair. The Graph guarantees at most one Node
// object per Identity.
type Identity struct {
	Class string
	Name  string
}

// Node is a concrete instance of a class. Its outgoing edges are exclusively
// owned by the node; an edge lives as long as its source node does.
type Node struct {
	cls   *ontology.MetaNode
	name  string
	attrs map[string]any
	edges []*Edge
}

var _ ontograph.Entity = (*Node)(nil)

// NewNode constructs a detached node for the explicit Graph.Add path. The
// loader never uses this; it goes through GetOrCreate.
func NewNode(cls *ontology.MetaNode, name string) *Node {
	return &Node{cls: cls, name: name, attrs: map[string]any{}}
}

// ID returns the stable identifier class_name.
func (n *Node) ID() string { return n.cls.Name() + "_" + n.name }

// Class returns the class the node instantiates.
func (n *Node) Class() *ontology.MetaNode { return n.cls }

// Name returns the instance name.
func (n *Node) Name() string { return n.name }

// Identity returns the (class, name) identity pair.
func (n *Node) Identity() Identity { return Identity{Class: n.cls.Name(), Name: n.name} }

// AttributeValues returns the live attribute mapping. Callers must treat it
// as read-only once the load that produced the node has completed.
func (n *Node) AttributeValues() map[string]any { return n.attrs }

// Attribute returns the value stored under the attribute name.
func (n *Node) Attribute(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) setAttribute(name string, v any) { n.attrs[name] = v }

// OutgoingEdges returns the node's edges in attachment order.
func (n *Node) OutgoingEdges() []*Edge {
	out := make([]*Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

func (n *Node) addEdge(e *Edge) { n.edges = append(n.edges, e) }

// DisplayLabel renders the Graphviz record label: class in italics, instance
// name in bold, then sorted attribute rows.
func (n *Node) DisplayLabel() string {
	b := &strings.Builder{}
	b.WriteString("<{<i>" + n.cls.Name() + "</i><br /><b>" + n.name + "</b>|")
	b.WriteString(strings.Join(attributeRows(n.attrs), `<br align="left"/>`))
	b.WriteString("}>")
	return b.String()
}

// Edge is a concrete relation instance. The destination reference exists for
// traversal only; ownership stays with the source node.
type Edge struct {
	source *Node
	dest   *Node
	label  string
	attrs  map[string]any
}

var _ ontograph.Entity = (*Edge)(nil)

// ID returns the stable identifier source_destination_label.
func (e *Edge) ID() string { return e.source.ID() + "_" + e.dest.ID() + "_" + e.label }

// Source returns the owning node.
func (e *Edge) Source() *Node { return e.source }

// Destination returns the destination node.
func (e *Edge) Destination() *Node { return e.dest }

// Label returns the relation name.
func (e *Edge) Label() string { return e.label }

// AttributeValues returns the live edge attribute mapping; read-only after
// load.
func (e *Edge) AttributeValues() map[string]any { return e.attrs }

// DisplayLabel renders the Graphviz edge label: relation name plus one row
// per attribute value.
func (e *Edge) DisplayLabel() string {
	b := &strings.Builder{}
	b.WriteString("<<b>" + e.label + "</b>")
	for _, row := range attributeRows(e.attrs) {
		b.WriteString(`<br align="left"/>` + row)
	}
	b.WriteString(">")
	return b.String()
}

func attributeRows(attrs map[string]any) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, fmt.Sprintf("%s = %v", k, attrs[k]))
	}
	return rows
}

// Graph owns the instance registry for the lifetime of one load operation.
// Nodes live in an insertion-ordered arena addressed through an identity
// index, so "first created" is well-defined and iteration is stable.
type Graph struct {
	nodes []*Node
	index map[Identity]int
}

// NewGraph returns an empty instance graph.
func NewGraph() *Graph {
	return &Graph{index: map[Identity]int{}}
}

// GetOrCreate returns the node for (cls, name), creating and registering it on
// first sight. Later calls reuse the same object, which is what lets an edge
// reference its destination before that destination's own top-level entry has
// been processed.
func (g *Graph) GetOrCreate(cls *ontology.MetaNode, name string) *Node {
	id := Identity{Class: cls.Name(), Name: name}
	if i, ok := g.index[id]; ok {
		return g.nodes[i]
	}
	n := NewNode(cls, name)
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n
}

// Add registers a caller-constructed node and fails fast when the identity is
// already taken; it never silently overwrites. Use GetOrCreate for the
// reusing path.
func (g *Graph) Add(n *Node) error {
	id := n.Identity()
	if _, ok := g.index[id]; ok {
		return ontograph.Issues{{
			Path:    "/" + id.Class + "/" + id.Name,
			Code:    ontograph.CodeDuplicateIdentity,
			Message: "an instance with this identity is already registered",
		}}
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// Node returns the registered node for the identity pair.
func (g *Graph) Node(class, name string) (*Node, bool) {
	i, ok := g.index[Identity{Class: class, Name: name}]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns all registered nodes sorted by ID.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	ontograph.SortEntities(out)
	return out
}

// Len returns the number of distinct node identities in the graph.
func (g *Graph) Len() int { return len(g.nodes) }
