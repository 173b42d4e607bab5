package predicate_test

import (
	"testing"

	"github.com/ontoplex/ontograph/predicate"
)

func TestExpression_Comparisons(t *testing.T) {
	cases := []struct {
		spec   string
		accept []any
		reject []any
	}{
		{">= 0", []any{int64(0), int64(7), 3.2}, []any{int64(-1), "0", nil}},
		{"< 10", []any{int64(9), 9.99}, []any{int64(10), int64(11)}},
		{"== 4", []any{int64(4), 4.0}, []any{int64(5)}},
		{"!= 4", []any{int64(5), 3.9}, []any{int64(4)}},
		{`== "prod"`, []any{"prod"}, []any{"dev", int64(1)}},
		{`>= "b"`, []any{"b", "c"}, []any{"a", int64(2)}},
		{"== true", []any{true}, []any{false, "true"}},
	}
	for _, tc := range cases {
		v, err := predicate.Compile(tc.spec)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.spec, err)
		}
		for _, c := range tc.accept {
			if !v.Check(c) {
				t.Fatalf("%q rejected %#v", tc.spec, c)
			}
		}
		for _, c := range tc.reject {
			if v.Check(c) {
				t.Fatalf("%q accepted %#v", tc.spec, c)
			}
		}
	}
}

func TestExpression_BooleanCombinators(t *testing.T) {
	port := predicate.MustCompile("integer and >= 1 and <= 65535")
	if !port.Check(int64(80)) || !port.Check(int64(65535)) {
		t.Fatalf("port range rejected a valid port")
	}
	if port.Check(int64(0)) || port.Check(int64(70000)) || port.Check(80.5) {
		t.Fatalf("port range accepted an invalid port")
	}

	either := predicate.MustCompile("string or list")
	if !either.Check("x") || !either.Check([]any{}) {
		t.Fatalf("or combinator rejected a matching kind")
	}
	if either.Check(int64(1)) {
		t.Fatalf("or combinator accepted a non-matching kind")
	}

	noBool := predicate.MustCompile("not boolean")
	if noBool.Check(true) || !noBool.Check("x") {
		t.Fatalf("not combinator misbehaved")
	}

	grouped := predicate.MustCompile(`(integer and >= 0) or == "unset"`)
	if !grouped.Check(int64(3)) || !grouped.Check("unset") {
		t.Fatalf("grouped expression rejected a valid candidate")
	}
	if grouped.Check(int64(-1)) || grouped.Check("set") {
		t.Fatalf("grouped expression accepted an invalid candidate")
	}
}

func TestExpression_OperatorPrecedence(t *testing.T) {
	// and binds tighter than or: accepts any string, or integers >= 10.
	v := predicate.MustCompile("string or integer and >= 10")
	if !v.Check("s") || !v.Check(int64(12)) {
		t.Fatalf("precedence: rejected valid candidate")
	}
	if v.Check(int64(5)) {
		t.Fatalf("precedence: accepted integer below the and-guard")
	}
}

func TestExpression_BooleanOrderingRejectedAtCompile(t *testing.T) {
	if _, err := predicate.Compile("> true"); err == nil {
		t.Fatalf("expected compile error for ordered comparison on boolean")
	}
}

func TestExpression_StringRendersSource(t *testing.T) {
	src := "integer and >= 1"
	v := predicate.MustCompile(src)
	if v.String() != src {
		t.Fatalf("String() = %q, want %q", v.String(), src)
	}
}
