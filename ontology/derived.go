package ontology

import (
	"sort"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/predicate"
)

// DerivedValidator is the structural constraint synthesized from a meta-model:
// exactly the instance documents it accepts are loadable against that Model.
// Top level maps optional class names to instance sections; each instance body
// combines the class's plain-attribute validators with its edge-label
// sub-validators.
type DerivedValidator struct {
	classes map[string]*classRule
}

type classRule struct {
	attrs map[string]predicate.Validator
	edges map[string]*edgeRule
}

type edgeRule struct {
	// attrs holds the per-destination edge attribute validators. A relation
	// declared without an attribute mapping validates like an empty mapping:
	// destinations may appear, attribute values may not.
	attrs map[string]predicate.Validator
}

func newDerivedValidator() *DerivedValidator {
	return &DerivedValidator{classes: map[string]*classRule{}}
}

func (dv *DerivedValidator) classRuleFor(name string) *classRule {
	if r, ok := dv.classes[name]; ok {
		return r
	}
	r := &classRule{
		attrs: map[string]predicate.Validator{},
		edges: map[string]*edgeRule{},
	}
	dv.classes[name] = r
	return r
}

// Validate checks an instance document in full and returns every violation as
// path-qualified Issues, or nil when the document conforms. A nil document is
// the empty instance model and always conforms.
func (dv *DerivedValidator) Validate(doc map[string]any) error {
	var iss ontograph.Issues
	for _, className := range sortedKeys(doc) {
		path := "/" + className
		rule, ok := dv.classes[className]
		if !ok {
			iss = ontograph.AppendIssues(iss, ontograph.Issue{
				Path:    path,
				Code:    ontograph.CodeUnknownClass,
				Message: "class is not declared in the meta-model",
			})
			continue
		}
		section := doc[className]
		if section == nil {
			continue
		}
		instances, ok := section.(map[string]any)
		if !ok {
			iss = ontograph.AppendIssues(iss, ontograph.Issue{
				Path:    path,
				Code:    ontograph.CodeInvalidType,
				Message: "expected mapping of instance names",
			})
			continue
		}
		for _, instName := range sortedKeys(instances) {
			iss = ontograph.AppendIssues(iss, rule.checkInstance(path+"/"+instName, className, instances[instName])...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// checkInstance validates one instance body: every key must be a declared
// scalar attribute or a declared edge label of the class.
func (r *classRule) checkInstance(path, className string, body any) ontograph.Issues {
	if body == nil {
		return nil
	}
	bm, ok := body.(map[string]any)
	if !ok {
		return ontograph.Issues{{
			Path:    path,
			Code:    ontograph.CodeInvalidType,
			Message: "expected mapping of attributes and edge labels",
		}}
	}
	var iss ontograph.Issues
	for _, key := range sortedKeys(bm) {
		keyPath := path + "/" + key
		if er, ok := r.edges[key]; ok {
			iss = ontograph.AppendIssues(iss, er.checkEdgeSection(keyPath, bm[key])...)
			continue
		}
		if av, ok := r.attrs[key]; ok {
			if !av.Check(bm[key]) {
				iss = ontograph.AppendIssues(iss, ontograph.Issue{
					Path:    keyPath,
					Code:    ontograph.CodeConstraint,
					Message: "value rejected by attribute validator",
					Hint:    "validator: " + av.String(),
				})
			}
			continue
		}
		iss = ontograph.AppendIssues(iss, ontograph.Issue{
			Path:    keyPath,
			Code:    ontograph.CodeUnknownKey,
			Message: "key is neither an attribute nor an edge label of class " + className,
		})
	}
	return iss
}

// checkEdgeSection validates the destination mapping of one edge label.
func (er *edgeRule) checkEdgeSection(path string, section any) ontograph.Issues {
	dests, ok := section.(map[string]any)
	if !ok {
		return ontograph.Issues{{
			Path:    path,
			Code:    ontograph.CodeInvalidType,
			Message: "expected mapping of destination instance names",
		}}
	}
	var iss ontograph.Issues
	for _, destName := range sortedKeys(dests) {
		destPath := path + "/" + destName
		attrVal := dests[destName]
		if attrVal == nil {
			continue
		}
		am, ok := attrVal.(map[string]any)
		if !ok {
			iss = ontograph.AppendIssues(iss, ontograph.Issue{
				Path:    destPath,
				Code:    ontograph.CodeInvalidType,
				Message: "expected mapping of edge attribute values",
			})
			continue
		}
		for _, attr := range sortedKeys(am) {
			attrPath := destPath + "/" + attr
			av, ok := er.attrs[attr]
			if !ok {
				iss = ontograph.AppendIssues(iss, ontograph.Issue{
					Path:    attrPath,
					Code:    ontograph.CodeUnknownKey,
					Message: "edge attribute is not declared on this relation",
				})
				continue
			}
			if !av.Check(am[attr]) {
				iss = ontograph.AppendIssues(iss, ontograph.Issue{
					Path:    attrPath,
					Code:    ontograph.CodeConstraint,
					Message: "value rejected by edge attribute validator",
					Hint:    "validator: " + av.String(),
				})
			}
		}
	}
	return iss
}

// sortedKeys returns map keys in ascending order for deterministic issue
// ordering and walk order.
func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
