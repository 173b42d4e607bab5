package ontograph

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType       = "invalid_type"
	CodeUnknownKey        = "unknown_key"
	CodeUnknownClass      = "unknown_class"
	CodeConstraint        = "constraint"
	CodeMalformedEdge     = "malformed_edge"
	CodeInvalidPredicate  = "invalid_predicate"
	CodeDuplicateIdentity = "duplicate_identity"
	CodeParseError        = "parse_error"
)

// Issue represents a single compile or validation entry.
type Issue struct {
	Path    string // Slash-separated document path (for example: /Host/h1/cpu).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of compile/validation errors that implements error.
// Compile and load operations collect every issue they find and return the
// whole list once; a non-empty Issues means the result must be discarded.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. malformed_edge at /Host/runs
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages renders every issue as an ordered, human-readable,
// path-qualified line. Callers surfacing errors to users (for example the
// CLI) print these rather than the compact Error summary.
func (iss Issues) Messages() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		line := fmt.Sprintf("%s: %s: %s", it.Path, it.Code, it.Message)
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		out = append(out, line)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates an Issue at the given path with the provided code and
// message. This is a convenience helper to improve readability at call sites.
func IssueAt(path, code, msg string) Issue {
	return Issue{Path: path, Code: code, Message: msg}
}
