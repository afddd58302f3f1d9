package proformamass

import (
	"fmt"
	"strings"
)

// Severity distinguishes a fatal parse/semantic problem from a warning
// that does not abort parsing, per spec.md §7's propagation policy.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Context is the source-excerpt payload of a ParseError: either no
// context, a single-line excerpt with a column pointer, or a multi-line
// range with line numbers, per spec.md §6's error surface.
type Context struct {
	Line       int // 1-based; 0 means "no line information"
	Column     int // 1-based byte offset into Line's text
	Excerpt    string
	MultiLine  []string // set instead of Excerpt for a multi-line range
	StartLine  int
}

func singleLineContext(source string, byteOffset int) *Context {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > len(source) {
		byteOffset = len(source)
	}
	return &Context{Line: 1, Column: byteOffset + 1, Excerpt: source}
}

// ParseError is the structured error every fallible ProForma, formula,
// and glycan operation returns, per spec.md §6/§7: severity, a short
// title, a long description, source context, and up to three
// "did you mean?" suggestions drawn from ontology name matching.
type ParseError struct {
	Severity    Severity
	Title       string
	Detail      string
	Context     *Context
	Suggestions []string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Severity, e.Title)
	if e.Detail != "" {
		fmt.Fprintf(&sb, ": %s", e.Detail)
	}
	if e.Context != nil && e.Context.Excerpt != "" {
		fmt.Fprintf(&sb, "\n  --> line %d, column %d\n  | %s", e.Context.Line, e.Context.Column, e.Context.Excerpt)
		if e.Context.Column > 0 && e.Context.Column <= len(e.Context.Excerpt)+1 {
			fmt.Fprintf(&sb, "\n  | %s^", strings.Repeat(" ", e.Context.Column-1))
		}
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&sb, "\n  did you mean: %s?", strings.Join(e.Suggestions, ", "))
	}
	return sb.String()
}

// Render produces the compiler-style annotated snippet spec.md §6 calls
// for (the same content as Error(), exposed under its own name since
// callers may want the annotated rendering without treating the value
// as a Go error).
func (e *ParseError) Render() string {
	return e.Error()
}

// newSemanticError builds a SeverityError ParseError for the
// "unknown modification name" / "unknown cross-link" family of
// failures, attaching closest-name suggestions when available.
func newSemanticError(title, detail string, ctx *Context, suggestions []string) *ParseError {
	return &ParseError{Severity: SeverityError, Title: title, Detail: detail, Context: ctx, Suggestions: suggestions}
}
