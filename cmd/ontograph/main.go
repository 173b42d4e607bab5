package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/document"
	"github.com/ontoplex/ontograph/ontology"
	"github.com/ontoplex/ontograph/render"
	"github.com/ontoplex/ontograph/topology"
)

// Exit codes: 0 success, 1 meta-model compile failure, 2 instance validation
// failure.
const (
	exitUsage    = 64
	exitCompile  = 1
	exitInstance = 2
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "dot":
		dotCmd(os.Args[2:])
	default:
		usage()
		os.Exit(exitUsage)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "ontograph CLI\n\nUsage:\n  ontograph check -ontology meta.yaml [-topology instances.yaml]\n  ontograph dot   -ontology meta.yaml [-topology instances.yaml] [-o out.dot]\n\nNotes:\n  - check compiles the ontology and, when given, validates the topology against it.\n  - dot prints Graphviz DOT for the ontology, or for the topology when one is given.\n  - .json inputs are decoded as JSON; everything else as YAML.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var ontologyPath, topologyPath string
	fs.StringVar(&ontologyPath, "ontology", "", "meta-model document")
	fs.StringVar(&topologyPath, "topology", "", "instance document (optional)")
	_ = fs.Parse(args)
	if ontologyPath == "" {
		fs.Usage()
		os.Exit(exitUsage)
	}

	model := compileOrExit(ontologyPath)
	fmt.Printf("ontology %s: %d classes, %d relations\n", ontologyPath, len(model.Classes()), len(model.Edges()))

	if topologyPath == "" {
		return
	}
	graph := loadOrExit(topologyPath, model)
	fmt.Printf("topology %s: %d instances\n", topologyPath, graph.Len())
}

func dotCmd(args []string) {
	fs := flag.NewFlagSet("dot", flag.ExitOnError)
	var ontologyPath, topologyPath, out string
	fs.StringVar(&ontologyPath, "ontology", "", "meta-model document")
	fs.StringVar(&topologyPath, "topology", "", "instance document (optional)")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if ontologyPath == "" {
		fs.Usage()
		os.Exit(exitUsage)
	}

	model := compileOrExit(ontologyPath)
	var dot string
	if topologyPath != "" {
		dot = render.GraphDOT(loadOrExit(topologyPath, model))
	} else {
		dot = render.ModelDOT(model)
	}

	if out == "" {
		fmt.Print(dot)
		return
	}
	if err := os.WriteFile(out, []byte(dot), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing output: %v\n", err)
		os.Exit(exitUsage)
	}
	fmt.Fprintln(os.Stderr, "graph saved in", out)
}

func compileOrExit(path string) *ontology.Model {
	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCompile)
	}
	model, err := ontology.Compile(doc)
	if err != nil {
		reportIssues(path, err)
		os.Exit(exitCompile)
	}
	return model
}

func loadOrExit(path string, model *ontology.Model) *topology.Graph {
	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInstance)
	}
	graph, err := topology.Load(doc, model)
	if err != nil {
		reportIssues(path, err)
		os.Exit(exitInstance)
	}
	return graph
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return document.FromJSON(data)
	}
	return document.FromYAML(data)
}

// reportIssues prints every collected issue as one path-qualified line.
func reportIssues(path string, err error) {
	if iss, ok := ontograph.AsIssues(err); ok {
		for _, line := range iss.Messages() {
			fmt.Fprintf(os.Stderr, "%s%s\n", path, line)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
