// Package predicate implements the attribute validator layer: the mapping from
// a validator spec found in a meta-document (nil, a type token, a predicate
// expression, or a literal) to a callable check over candidate values.
//
// Predicate expressions form a small, closed mini-language (type tokens plus
// comparison and boolean combinators) parsed into an expression tree and
// evaluated by a dedicated interpreter. There is deliberately no escape hatch
// into a general-purpose evaluator.
package predicate

import (
	"reflect"

	ontograph "github.com/ontoplex/ontograph"
)

// Validator accepts or rejects a candidate attribute value.
type Validator interface {
	// Check reports whether the candidate value satisfies the validator.
	Check(v any) bool
	// String returns the canonical spec text, suitable for display labels.
	String() string
}

// Compile maps a validator spec to a Validator:
//
//   - nil accepts any value
//   - a bare type token ("integer", "string", ...) constrains the runtime kind
//   - any other string is compiled as a predicate expression
//   - any other literal (number, boolean, list, mapping) requires equality
//     with that literal
//
// A string that cannot be compiled fails with Issues carrying code
// invalid_predicate; the compile call owning the spec must treat that as
// fatal.
func Compile(spec any) (Validator, error) {
	switch s := spec.(type) {
	case nil:
		return Any(), nil
	case string:
		if s == "any" {
			return Any(), nil
		}
		if k, ok := typeTokens[s]; ok {
			return Type(k), nil
		}
		e, err := parse(s)
		if err != nil {
			return nil, ontograph.Issues{{
				Path:    "/",
				Code:    ontograph.CodeInvalidPredicate,
				Message: "cannot compile predicate expression",
				Hint:    err.Error(),
				Cause:   err,
			}}
		}
		return exprValidator{src: s, e: e}, nil
	default:
		return Literal(spec), nil
	}
}

// MustCompile is like Compile but panics on error. Intended for fixed specs in
// tests and examples.
func MustCompile(spec any) Validator {
	v, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return v
}

// Any returns the validator that accepts every value (the nil spec).
func Any() Validator { return anyValidator{} }

type anyValidator struct{}

func (anyValidator) Check(any) bool { return true }
func (anyValidator) String() string { return "any" }

// Type returns the validator accepting only values of the given runtime kind.
// The "number" token is expressed as Type(KindInt) or'd with KindFloat by the
// expression layer; Type itself matches one kind exactly.
func Type(k ontograph.Kind) Validator { return typeValidator{kind: k} }

type typeValidator struct{ kind ontograph.Kind }

func (t typeValidator) Check(v any) bool {
	if t.kind == kindNumber {
		k := ontograph.KindOf(v)
		return k == ontograph.KindInt || k == ontograph.KindFloat
	}
	return ontograph.KindOf(v) == t.kind
}

func (t typeValidator) String() string {
	if t.kind == kindNumber {
		return "number"
	}
	return t.kind.String()
}

// kindNumber is the pseudo-kind behind the "number" token: integer or float.
const kindNumber ontograph.Kind = -1

// typeTokens maps bare type-token specs to kinds. "any" is handled before the
// lookup because it is a token without a kind of its own.
var typeTokens = map[string]ontograph.Kind{
	"null":    ontograph.KindNull,
	"boolean": ontograph.KindBool,
	"integer": ontograph.KindInt,
	"float":   ontograph.KindFloat,
	"number":  kindNumber,
	"string":  ontograph.KindString,
	"list":    ontograph.KindList,
	"mapping": ontograph.KindMapping,
}

// Literal returns the validator requiring deep equality with the given value.
// This mirrors the meta-document convention that a bare literal in validator
// position means "exactly this value".
func Literal(want any) Validator { return literalValidator{want: want} }

type literalValidator struct{ want any }

func (l literalValidator) Check(v any) bool {
	if eq, ok := numericEqual(v, l.want); ok {
		return eq
	}
	return reflect.DeepEqual(v, l.want)
}

func (l literalValidator) String() string { return formatLiteral(l.want) }

// exprValidator wraps a compiled predicate expression.
type exprValidator struct {
	src string
	e   expr
}

func (x exprValidator) Check(v any) bool { return x.e.eval(v) }
func (x exprValidator) String() string   { return x.src }
