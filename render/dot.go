// Package render is a read-only collaborator that draws a compiled meta-model
// or a loaded instance graph as Graphviz DOT text. It consumes the Entity
// capability (stable ID plus display label) and never mutates the graphs;
// turning the DOT into an image stays outside this module.
package render

import (
	"strings"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/ontology"
	"github.com/ontoplex/ontograph/topology"
)

// ModelDOT renders the class-level graph: one record node per class, one
// labeled edge per relation. Output is deterministic (ID-sorted).
func ModelDOT(m *ontology.Model) string {
	d := newDigraph()
	for _, cls := range m.Classes() {
		d.node(cls)
	}
	for _, e := range m.Edges() {
		d.edge(e.Source(), e.Destination(), e)
	}
	return d.String()
}

// GraphDOT renders the instance-level graph: one record node per instance and
// its outgoing edges. Output is deterministic (ID-sorted).
func GraphDOT(g *topology.Graph) string {
	d := newDigraph()
	for _, n := range g.Nodes() {
		d.node(n)
	}
	for _, n := range g.Nodes() {
		edges := n.OutgoingEdges()
		ontograph.SortEntities(edges)
		for _, e := range edges {
			d.edge(e.Source(), e.Destination(), e)
		}
	}
	return d.String()
}

// digraph accumulates DOT statements with the record node shape the original
// diagrams use.
type digraph struct {
	b strings.Builder
}

func newDigraph() *digraph {
	d := &digraph{}
	d.b.WriteString("digraph {\n")
	d.b.WriteString("\tnode [shape=record];\n")
	return d
}

func (d *digraph) node(e ontograph.Entity) {
	d.b.WriteString("\t" + quoteID(e.ID()) + " [label=" + e.DisplayLabel() + "];\n")
}

func (d *digraph) edge(from, to, label ontograph.Entity) {
	d.b.WriteString("\t" + quoteID(from.ID()) + " -> " + quoteID(to.ID()) + " [label=" + label.DisplayLabel() + "];\n")
}

func (d *digraph) String() string { return d.b.String() + "}\n" }

// quoteID wraps an ID in double quotes so names with punctuation stay valid
// DOT identifiers.
func quoteID(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `\"`) + `"`
}
