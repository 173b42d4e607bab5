package topology

import (
	"sort"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/ontology"
)

// Load validates an instance document against the model's derived validator
// and, on success, walks it into a fresh Graph. The whole document is
// validated before any node is created; a failure anywhere aborts the load
// and no partial graph is exposed.
//
// Within the single pass, the only live mutation is back-filling attribute
// values onto a node that was first created as a forward-referenced edge
// destination.
func Load(doc map[string]any, model *ontology.Model) (*Graph, error) {
	if model == nil || model.Validator() == nil {
		return nil, ontograph.Issues{{
			Path:    "/",
			Code:    ontograph.CodeParseError,
			Message: "nil or uncompiled meta-model",
		}}
	}
	if err := model.Validator().Validate(doc); err != nil {
		return nil, err
	}

	g := NewGraph()
	for _, className := range sortedKeys(doc) {
		cls, ok := model.Class(className)
		if !ok {
			// unreachable after validation; kept as a hard stop rather than a
			// silent skip
			return nil, ontograph.Issues{{
				Path:    "/" + className,
				Code:    ontograph.CodeUnknownClass,
				Message: "class is not declared in the meta-model",
			}}
		}
		section, _ := doc[className].(map[string]any)
		for _, instName := range sortedKeys(section) {
			node := g.GetOrCreate(cls, instName)
			body, _ := section[instName].(map[string]any)
			for _, key := range sortedKeys(body) {
				if me, ok := model.Edge(className, key); ok {
					attachEdges(g, node, me, body[key])
					continue
				}
				node.setAttribute(key, body[key])
			}
		}
	}
	return g, nil
}

// attachEdges creates one Edge per destination instance under an edge label,
// resolving each destination through the shared registry so repeated
// references collapse onto one node object.
func attachEdges(g *Graph, source *Node, me *ontology.MetaEdge, section any) {
	dests, _ := section.(map[string]any)
	for _, destName := range sortedKeys(dests) {
		dest := g.GetOrCreate(me.Destination(), destName)
		attrs := map[string]any{}
		if am, ok := dests[destName].(map[string]any); ok {
			for k, v := range am {
				attrs[k] = v
			}
		}
		source.addEdge(&Edge{source: source, dest: dest, label: me.Label(), attrs: attrs})
	}
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
