package ontograph

import "sort"

// Entity is the capability shared by meta-level and instance-level graph
// members: a stable identifier and a display label. Class declarations, edge
// relations, concrete nodes and concrete edges all implement it, which lets
// read-only consumers such as the DOT renderer treat both levels uniformly.
type Entity interface {
	// ID returns the stable identifier. IDs are unique within one graph level
	// and are usable as Graphviz node names.
	ID() string
	// DisplayLabel returns the Graphviz HTML-like label text. The name leaves
	// Label free for the edge types, where it means the relation name.
	DisplayLabel() string
}

// SortEntities orders entities by ID in place. Iteration over the model and
// graph registries is map-based; sorting by the stable ID keeps rendering and
// comparison deterministic.
func SortEntities[E Entity](es []E) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID() < es[j].ID() })
}
