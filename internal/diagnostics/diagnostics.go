// Package diagnostics renders fatal Notifications and syntax errors as
// plain-text reports with a caret snippet pointing into the source.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/amalgam-lang/amalgam/internal/evaluator"
	"github.com/amalgam-lang/amalgam/internal/parser"
)

// Report formats a fatal Notification against the source it came from. The
// header names the innermost trace entry (the generation site); the trace
// below it lists every boundary the Notification crossed, innermost first.
func Report(n *evaluator.Notification, srcName, src string) string {
	var b strings.Builder

	if len(n.Trace) == 0 {
		fmt.Fprintf(&b, "RUNTIME ERROR in %s: %s\n", srcName, n.Payload)
		return b.String()
	}

	origin := n.Trace[0]
	line, column, located := nearestLocation(n)
	if located {
		fmt.Fprintf(&b, "RUNTIME ERROR in %s at %d:%d: %s\n", srcName, line, column, origin.Message)
		writeSnippet(&b, src, line, column)
	} else {
		fmt.Fprintf(&b, "RUNTIME ERROR in %s: %s\n", srcName, origin.Message)
	}

	b.WriteString("\n")
	for _, entry := range n.Trace {
		fmt.Fprintf(&b, "  in %s (%s): %s\n", entry.Node, entry.Env.Name(), entry.Message)
	}
	return b.String()
}

// SyntaxError formats a parser error, with a caret snippet when the error
// carries a position.
func SyntaxError(err error, srcName, src string) string {
	pe, ok := err.(*parser.Error)
	if !ok {
		return fmt.Sprintf("SYNTAX ERROR in %s: %s\n", srcName, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SYNTAX ERROR in %s at %d:%d: %s\n", srcName, pe.Line, pe.Column, pe.Message)
	writeSnippet(&b, src, pe.Line, pe.Column)
	return b.String()
}

// nearestLocation walks the trace innermost first and returns the start of
// the first node that carries a source span.
func nearestLocation(n *evaluator.Notification) (line, column int, ok bool) {
	for _, entry := range n.Trace {
		lines, columns := evaluator.Location(entry.Node)
		if lines[0] >= 0 {
			return lines[0], columns[0], true
		}
	}
	return 0, 0, false
}

// writeSnippet prints the offending line with one line of context on each
// side and a caret under the 1-based column. Coordinates outside the source
// are clamped so rendering never fails.
func writeSnippet(b *strings.Builder, src string, line, column int) {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if column < 1 {
		column = 1
	}

	b.WriteString("\n")
	if line > 1 {
		fmt.Fprintf(b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(b, "     | %s^\n", strings.Repeat(" ", column-1))
	if line < len(lines) {
		fmt.Fprintf(b, "%4d | %s\n", line+1, lines[line])
	}
}
