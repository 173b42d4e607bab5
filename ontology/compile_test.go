package ontology_test

import (
	"reflect"
	"testing"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/ontology"
)

func hostServiceMeta() map[string]any {
	return map[string]any{
		"Host": map[string]any{
			"attributes": map[string]any{
				"cpu": "integer",
				"env": nil,
			},
			"runs": map[string]any{
				"Service": map[string]any{
					"port": "integer and >= 1 and <= 65535",
				},
			},
		},
		"Service": map[string]any{
			"attributes": map[string]any{
				"version": "string",
			},
		},
	}
}

func TestCompile_BuildsModel(t *testing.T) {
	model, err := ontology.Compile(hostServiceMeta())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	host, ok := model.Class("Host")
	if !ok {
		t.Fatalf("class Host missing")
	}
	if got := host.Attributes(); !reflect.DeepEqual(got, []string{"cpu", "env"}) {
		t.Fatalf("Host attributes = %v", got)
	}
	if v, ok := host.Validator("cpu"); !ok || !v.Check(int64(4)) || v.Check("4") {
		t.Fatalf("cpu validator not bound to integer check")
	}
	if v, ok := host.Validator("env"); !ok || !v.Check(nil) || !v.Check("prod") {
		t.Fatalf("nil spec must accept any value")
	}

	edge, ok := model.Edge("Host", "runs")
	if !ok {
		t.Fatalf("edge (Host, runs) missing")
	}
	if edge.Destination().Name() != "Service" || edge.Label() != "runs" {
		t.Fatalf("edge = %s -> %s (%s)", edge.Source().Name(), edge.Destination().Name(), edge.Label())
	}
	if !edge.AllowsAttributes() {
		t.Fatalf("runs declares an attribute mapping")
	}
	if v, ok := edge.Validator("port"); !ok || !v.Check(int64(80)) || v.Check(int64(0)) {
		t.Fatalf("port validator not enforcing the declared range")
	}
}

func TestCompile_Deterministic(t *testing.T) {
	a, err := ontology.Compile(hostServiceMeta())
	if err != nil {
		t.Fatalf("compile a: %v", err)
	}
	b, err := ontology.Compile(hostServiceMeta())
	if err != nil {
		t.Fatalf("compile b: %v", err)
	}

	classNames := func(m *ontology.Model) []string {
		var out []string
		for _, c := range m.Classes() {
			out = append(out, c.Name())
		}
		return out
	}
	if !reflect.DeepEqual(classNames(a), classNames(b)) {
		t.Fatalf("class sets differ: %v vs %v", classNames(a), classNames(b))
	}
	for _, c := range a.Classes() {
		bc, ok := b.Class(c.Name())
		if !ok || !reflect.DeepEqual(c.Attributes(), bc.Attributes()) {
			t.Fatalf("attribute sets differ for %s", c.Name())
		}
	}
	edgeTriples := func(m *ontology.Model) [][3]string {
		var out [][3]string
		for _, e := range m.Edges() {
			out = append(out, [3]string{e.Source().Name(), e.Label(), e.Destination().Name()})
		}
		return out
	}
	if !reflect.DeepEqual(edgeTriples(a), edgeTriples(b)) {
		t.Fatalf("edge mappings differ")
	}
}

func TestCompile_ImplicitDestinationClass(t *testing.T) {
	model, err := ontology.Compile(map[string]any{
		"Host": map[string]any{
			"connects": map[string]any{"Switch": nil},
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	sw, ok := model.Class("Switch")
	if !ok {
		t.Fatalf("destination class must be implicitly declared")
	}
	if len(sw.Attributes()) != 0 {
		t.Fatalf("implicit class must be empty, got %v", sw.Attributes())
	}
	edge, _ := model.Edge("Host", "connects")
	if edge.AllowsAttributes() {
		t.Fatalf("null attribute section means no attributes allowed")
	}
}

func TestCompile_NullClassBodyRegistersEmptyClass(t *testing.T) {
	model, err := ontology.Compile(map[string]any{"Tag": nil})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := model.Class("Tag"); !ok {
		t.Fatalf("null-bodied class must still be registered")
	}
}

func TestCompile_NilDocumentYieldsEmptyModel(t *testing.T) {
	model, err := ontology.Compile(nil)
	if err != nil {
		t.Fatalf("compile nil: %v", err)
	}
	if len(model.Classes()) != 0 || len(model.Edges()) != 0 {
		t.Fatalf("empty document must yield an empty model")
	}
	if model.Validator() == nil {
		t.Fatalf("even the empty model carries a derived validator")
	}
}

func TestCompile_MalformedEdgeTwoDestinations(t *testing.T) {
	model, err := ontology.Compile(map[string]any{
		"Host": map[string]any{
			"runs": map[string]any{
				"Service": nil,
				"Backup":  nil,
			},
		},
	})
	if model != nil {
		t.Fatalf("no usable model may survive a malformed meta-document")
	}
	iss, ok := ontograph.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != ontograph.CodeMalformedEdge || iss[0].Path != "/Host/runs" {
		t.Fatalf("expected malformed_edge at /Host/runs, got %+v", iss[0])
	}
}

func TestCompile_MalformedEdgeZeroDestinations(t *testing.T) {
	_, err := ontology.Compile(map[string]any{
		"Host": map[string]any{"runs": map[string]any{}},
	})
	iss, ok := ontograph.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != ontograph.CodeMalformedEdge {
		t.Fatalf("expected malformed_edge, got %v", err)
	}
}

func TestCompile_InvalidPredicatePathQualified(t *testing.T) {
	_, err := ontology.Compile(map[string]any{
		"Host": map[string]any{
			"attributes": map[string]any{"cpu": "integer and and"},
		},
	})
	iss, ok := ontograph.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != ontograph.CodeInvalidPredicate {
		t.Fatalf("expected invalid_predicate, got %+v", iss[0])
	}
	if iss[0].Path != "/Host/attributes/cpu" {
		t.Fatalf("issue path = %q", iss[0].Path)
	}
}

func TestCompile_CollectsEveryStructuralIssue(t *testing.T) {
	_, err := ontology.Compile(map[string]any{
		"A": "not a mapping",
		"B": map[string]any{"edge": map[string]any{}},
	})
	iss, ok := ontograph.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected both issues collected, got %v", err)
	}
	if iss[0].Path != "/A" || iss[1].Path != "/B/edge" {
		t.Fatalf("issue order not deterministic: %v", iss.Messages())
	}
}
