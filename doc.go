package ontograph

// Package ontograph provides:
//
// - A two-level graph model: a meta-model (ontology) of classes and typed edge
//   relations, and instance models (topologies) that must conform to it
// - A schema compiler that walks a declarative meta-model document, builds the
//   typed meta-graph, and derives a structural validator for instance documents
// - An instance loader that validates an instance document in full and builds a
//   deduplicated in-memory graph of nodes and edges
// - A stable error model via Issues (slash-separated path, code, message)
//
// Design policy:
// - Keep only the shared error model, value kinds, and the Entity capability in
//   the root package.
// - Place attribute validators under predicate/, the meta-model and compiler
//   under ontology/, the instance graph and loader under topology/.
// - Document ingestion (document/), DOT rendering (render/) and the CLI
//   (cmd/ontograph) are collaborators around the core; the core consumes
//   already-parsed nested mappings and never touches files.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	meta, err := document.FromYAML(metaBytes)
//	model, err := ontology.Compile(meta)
//
//	doc, err := document.FromYAML(instanceBytes)
//	graph, err := topology.Load(doc, model)
