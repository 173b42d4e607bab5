package predicate_test

import (
	"testing"

	ontograph "github.com/ontoplex/ontograph"
	"github.com/ontoplex/ontograph/predicate"
)

func TestCompile_NilSpecAcceptsEverything(t *testing.T) {
	v, err := predicate.Compile(nil)
	if err != nil {
		t.Fatalf("compile nil spec: %v", err)
	}
	for _, candidate := range []any{nil, true, int64(3), 1.5, "x", []any{1}, map[string]any{}} {
		if !v.Check(candidate) {
			t.Fatalf("nil spec rejected %#v", candidate)
		}
	}
}

func TestCompile_TypeTokens(t *testing.T) {
	cases := []struct {
		token  string
		accept []any
		reject []any
	}{
		{"integer", []any{int64(1), 4}, []any{1.5, "1", true}},
		{"float", []any{1.5}, []any{int64(1), "1.5"}},
		{"number", []any{int64(1), 2.5}, []any{"1", nil}},
		{"string", []any{"hello"}, []any{int64(1), nil}},
		{"boolean", []any{true, false}, []any{"true", int64(0)}},
		{"list", []any{[]any{1, 2}}, []any{map[string]any{}, "[]"}},
		{"mapping", []any{map[string]any{"a": 1}}, []any{[]any{}, nil}},
		{"null", []any{nil}, []any{int64(0), ""}},
	}
	for _, tc := range cases {
		v, err := predicate.Compile(tc.token)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.token, err)
		}
		for _, c := range tc.accept {
			if !v.Check(c) {
				t.Fatalf("%q rejected %#v", tc.token, c)
			}
		}
		for _, c := range tc.reject {
			if v.Check(c) {
				t.Fatalf("%q accepted %#v", tc.token, c)
			}
		}
	}
}

func TestCompile_AnyToken(t *testing.T) {
	v, err := predicate.Compile("any")
	if err != nil {
		t.Fatalf("compile any: %v", err)
	}
	if !v.Check(nil) || !v.Check("x") || !v.Check(int64(9)) {
		t.Fatalf("any token must accept every value")
	}
}

func TestCompile_LiteralSpecRequiresEquality(t *testing.T) {
	v, err := predicate.Compile(int64(8080))
	if err != nil {
		t.Fatalf("compile literal: %v", err)
	}
	if !v.Check(int64(8080)) {
		t.Fatalf("literal rejected its own value")
	}
	if !v.Check(8080) {
		t.Fatalf("literal must match numerically across int widths")
	}
	if v.Check(int64(8081)) || v.Check("8080") {
		t.Fatalf("literal accepted a different value")
	}
}

func TestCompile_InvalidPredicateSpec(t *testing.T) {
	for _, spec := range []string{">=", "integer and", "wibble", "== ]", "(integer", "integer integer"} {
		_, err := predicate.Compile(spec)
		if err == nil {
			t.Fatalf("expected error for spec %q", spec)
		}
		iss, ok := ontograph.AsIssues(err)
		if !ok || len(iss) == 0 || iss[0].Code != ontograph.CodeInvalidPredicate {
			t.Fatalf("expected invalid_predicate for %q, got %v", spec, err)
		}
	}
}

func TestMustCompile_PanicsOnBadSpec(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	predicate.MustCompile("not a ( predicate")
}
