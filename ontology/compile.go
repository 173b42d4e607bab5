package ontology

import (
	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/predicate"
)

// attributesKey is the reserved class-body key naming the scalar attribute
// section; every other class-body key is an edge label.
const attributesKey = "attributes"

// Compile consumes a meta-model document (an already-parsed nested mapping)
// and produces the compiled Model with its derived instance validator
// attached. A nil document compiles to an empty Model.
//
// Failures are collected as path-qualified Issues and returned once; on error
// the returned Model is nil and nothing partial is exposed.
func Compile(doc map[string]any) (*Model, error) {
	if iss := checkStructure(doc); len(iss) > 0 {
		return nil, iss
	}

	m := newModel()
	dv := newDerivedValidator()
	var iss ontograph.Issues

	for _, className := range sortedKeys(doc) {
		node := m.getOrCreateClass(className)
		rule := dv.classRuleFor(className)
		body := doc[className]
		if body == nil {
			continue
		}
		for _, key := range sortedKeys(body.(map[string]any)) {
			value := body.(map[string]any)[key]
			if key == attributesKey {
				iss = ontograph.AppendIssues(iss, compileAttributes(node, rule, className, value)...)
				continue
			}
			iss = ontograph.AppendIssues(iss, m.compileEdge(dv, node, rule, key, value)...)
		}
	}

	if len(iss) > 0 {
		return nil, iss
	}
	m.derived = dv
	return m, nil
}

// compileAttributes binds each declared attribute to its compiled validator,
// on both the MetaNode and the class's derived-validator fragment.
func compileAttributes(node *MetaNode, rule *classRule, className string, section any) ontograph.Issues {
	if section == nil {
		return nil
	}
	var iss ontograph.Issues
	attrs := section.(map[string]any)
	for _, attr := range sortedKeys(attrs) {
		v, err := predicate.Compile(attrs[attr])
		if err != nil {
			iss = ontograph.AppendIssues(iss, rebaseIssues("/"+className+"/"+attributesKey+"/"+attr, err)...)
			continue
		}
		node.setAttribute(attr, v)
		rule.attrs[attr] = v
	}
	return iss
}

// compileEdge resolves the single destination class (creating it implicitly
// when it was never declared on its own - intentional permissiveness, not an
// error), compiles the edge attribute validators, and registers the MetaEdge.
// A repeated declaration for the same (source class, label) overwrites the
// earlier one; last write wins.
func (m *Model) compileEdge(dv *DerivedValidator, source *MetaNode, rule *classRule, label string, section any) ontograph.Issues {
	dests := section.(map[string]any)
	var destName string
	for k := range dests { // exactly one key, enforced by checkStructure
		destName = k
	}

	var iss ontograph.Issues
	var attrs map[string]predicate.Validator
	er := &edgeRule{attrs: map[string]predicate.Validator{}}
	if attrSection := dests[destName]; attrSection != nil {
		attrs = map[string]predicate.Validator{}
		am := attrSection.(map[string]any)
		for _, attr := range sortedKeys(am) {
			v, err := predicate.Compile(am[attr])
			if err != nil {
				iss = ontograph.AppendIssues(iss, rebaseIssues("/"+source.Name()+"/"+label+"/"+attr, err)...)
				continue
			}
			attrs[attr] = v
			er.attrs[attr] = v
		}
	}
	if len(iss) > 0 {
		return iss
	}

	dest := m.getOrCreateClass(destName)
	dv.classRuleFor(destName)
	m.addEdge(&MetaEdge{source: source, dest: dest, label: label, attrs: attrs})
	rule.edges[label] = er
	return nil
}

// checkStructure pre-validates the meta-document against the fixed structural
// grammar before any compilation happens. All violations are collected.
func checkStructure(doc map[string]any) ontograph.Issues {
	var iss ontograph.Issues
	for _, className := range sortedKeys(doc) {
		path := "/" + className
		body := doc[className]
		if body == nil {
			continue
		}
		bm, ok := body.(map[string]any)
		if !ok {
			iss = ontograph.AppendIssues(iss, ontograph.Issue{
				Path:    path,
				Code:    ontograph.CodeInvalidType,
				Message: "class body must be null or a mapping",
			})
			continue
		}
		for _, key := range sortedKeys(bm) {
			keyPath := path + "/" + key
			if key == attributesKey {
				iss = ontograph.AppendIssues(iss, checkAttributeSection(keyPath, bm[key])...)
				continue
			}
			iss = ontograph.AppendIssues(iss, checkEdgeDeclaration(keyPath, bm[key])...)
		}
	}
	return iss
}

func checkAttributeSection(path string, section any) ontograph.Issues {
	if section == nil {
		return nil
	}
	if _, ok := section.(map[string]any); !ok {
		return ontograph.Issues{{
			Path:    path,
			Code:    ontograph.CodeInvalidType,
			Message: "attributes section must be null or a mapping of attribute specs",
		}}
	}
	return nil
}

// checkEdgeDeclaration enforces the exactly-one-destination rule and the shape
// of the destination's attribute spec mapping.
func checkEdgeDeclaration(path string, section any) ontograph.Issues {
	dests, ok := section.(map[string]any)
	if !ok {
		return ontograph.Issues{{
			Path:    path,
			Code:    ontograph.CodeInvalidType,
			Message: "edge declaration must be a mapping with one destination class",
		}}
	}
	if len(dests) != 1 {
		msg := "edge label is missing a destination"
		if len(dests) > 1 {
			msg = "edge label has more than one destination"
		}
		return ontograph.Issues{{
			Path:    path,
			Code:    ontograph.CodeMalformedEdge,
			Message: msg,
			Hint:    "exactly one destination class is required",
		}}
	}
	var iss ontograph.Issues
	for _, destName := range sortedKeys(dests) {
		attrSection := dests[destName]
		if attrSection == nil {
			continue
		}
		if _, ok := attrSection.(map[string]any); !ok {
			iss = ontograph.AppendIssues(iss, ontograph.Issue{
				Path:    path + "/" + destName,
				Code:    ontograph.CodeInvalidType,
				Message: "edge attribute section must be null or a mapping of attribute specs",
			})
		}
	}
	return iss
}

// rebaseIssues prefixes child issue paths with the position of the offending
// spec in the meta-document, keeping child detail intact.
func rebaseIssues(base string, err error) ontograph.Issues {
	child, ok := ontograph.AsIssues(err)
	if !ok {
		return ontograph.Issues{{Path: base, Code: ontograph.CodeParseError, Message: err.Error(), Cause: err}}
	}
	var out ontograph.Issues
	for _, it := range child {
		p := it.Path
		if p == "" || p == "/" {
			p = base
		} else if p[0] == '/' {
			p = base + p
		} else {
			p = base + "/" + p
		}
		out = ontograph.AppendIssues(out, ontograph.Issue{Path: p, Code: it.Code, Message: it.Message, Hint: it.Hint, Cause: it.Cause})
	}
	return out
}
