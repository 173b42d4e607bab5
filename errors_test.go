package ontograph_test

import (
	"fmt"
	"strings"
	"testing"

	ontograph "github.com/ontoplex/ontograph"
)

func TestIssues_ErrorSummarizesFirstThree(t *testing.T) {
	iss := ontograph.Issues{
		{Path: "/A", Code: ontograph.CodeUnknownClass},
		{Path: "/B/x", Code: ontograph.CodeConstraint},
	}
	got := iss.Error()
	if got != "unknown_class at /A; constraint at /B/x" {
		t.Fatalf("Error() = %q", got)
	}

	for i := 0; i < 3; i++ {
		iss = append(iss, ontograph.Issue{Path: fmt.Sprintf("/C/%d", i), Code: ontograph.CodeUnknownKey})
	}
	got = iss.Error()
	if !strings.HasSuffix(got, "... (total 5)") {
		t.Fatalf("Error() = %q, want truncation suffix", got)
	}
	if strings.Count(got, " at ") != 3 {
		t.Fatalf("Error() must show only the first three issues: %q", got)
	}
}

func TestIssues_MessagesIncludeHint(t *testing.T) {
	iss := ontograph.Issues{
		{Path: "/Host/h1/cpu", Code: ontograph.CodeConstraint, Message: "value rejected", Hint: "validator: integer"},
		{Path: "/Router", Code: ontograph.CodeUnknownClass, Message: "class is not declared"},
	}
	got := iss.Messages()
	want := []string{
		"/Host/h1/cpu: constraint: value rejected (validator: integer)",
		"/Router: unknown_class: class is not declared",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Messages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAsIssues(t *testing.T) {
	iss := ontograph.Issues{{Path: "/", Code: ontograph.CodeParseError}}
	wrapped := fmt.Errorf("loading: %w", iss)
	got, ok := ontograph.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Code != ontograph.CodeParseError {
		t.Fatalf("AsIssues through wrapping failed: %v %v", got, ok)
	}
	if _, ok := ontograph.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract")
	}
	if _, ok := ontograph.AsIssues(fmt.Errorf("plain")); ok {
		t.Fatalf("unrelated error must not extract")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		v    any
		want ontograph.Kind
	}{
		{nil, ontograph.KindNull},
		{true, ontograph.KindBool},
		{int64(1), ontograph.KindInt},
		{2, ontograph.KindInt},
		{1.5, ontograph.KindFloat},
		{"s", ontograph.KindString},
		{[]any{}, ontograph.KindList},
		{map[string]any{}, ontograph.KindMapping},
		{struct{}{}, ontograph.KindUnknown},
	}
	for _, tc := range cases {
		if got := ontograph.KindOf(tc.v); got != tc.want {
			t.Fatalf("KindOf(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestKind_StringMatchesMetaTokens(t *testing.T) {
	pairs := map[ontograph.Kind]string{
		ontograph.KindNull:    "null",
		ontograph.KindBool:    "boolean",
		ontograph.KindInt:     "integer",
		ontograph.KindFloat:   "float",
		ontograph.KindString:  "string",
		ontograph.KindList:    "list",
		ontograph.KindMapping: "mapping",
	}
	for k, want := range pairs {
		if k.String() != want {
			t.Fatalf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
