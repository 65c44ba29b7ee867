package diagnostics

import (
	"errors"
	"strings"
	"testing"

	"github.com/amalgam-lang/amalgam/internal/evaluator"
	"github.com/amalgam-lang/amalgam/internal/parser"
)

func TestReportWithLocation(t *testing.T) {
	src := "(setn y\n  (+ 1 x))"
	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	env := evaluator.NewEnvironment(evaluator.Builtins(), "global")
	result := node.Evaluate(env)
	n, ok := result.(*evaluator.Notification)
	if !ok || !n.Fatal {
		t.Fatalf("got %v, want a fatal notification", result)
	}

	report := Report(n, "script.amlg", src)

	for _, want := range []string{
		"RUNTIME ERROR in script.amlg at 2:8: unbound symbol",
		"(+ 1 x)",
		"^",
		"inherited",
		"(global)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReportCaretColumn(t *testing.T) {
	src := "(+ 1 x)"
	node, _ := parser.Parse(src)
	env := evaluator.NewEnvironment(evaluator.Builtins(), "global")
	n := node.Evaluate(env).(*evaluator.Notification)

	report := Report(n, "repl", src)
	lines := strings.Split(report, "\n")

	var snippetLine, caretLine string
	for i, line := range lines {
		if strings.Contains(line, "| (+ 1 x)") {
			snippetLine, caretLine = line, lines[i+1]
			break
		}
	}
	if snippetLine == "" {
		t.Fatalf("snippet not found in:\n%s", report)
	}
	if strings.Index(caretLine, "^")-strings.Index(snippetLine, "x") != 0 {
		t.Errorf("caret not under the offending symbol:\n%s\n%s", snippetLine, caretLine)
	}
}

func TestReportWithoutLocation(t *testing.T) {
	n := evaluator.NewNotification()
	n.Push(evaluator.NewAtom("synthetic"), evaluator.NewEnvironment(nil, "global"), "boom")

	report := Report(n, "expr", "")
	if !strings.Contains(report, "RUNTIME ERROR in expr: boom") {
		t.Errorf("report = %q", report)
	}
	if strings.Contains(report, "^") {
		t.Error("caret rendered without a source position")
	}
}

func TestSyntaxErrorRendering(t *testing.T) {
	_, err := parser.Parse("(1 2]")
	report := SyntaxError(err, "repl", "(1 2]")
	for _, want := range []string{"SYNTAX ERROR in repl at 1:5", "(1 2]", "^"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestSyntaxErrorFallback(t *testing.T) {
	report := SyntaxError(errors.New("plain failure"), "stdin", "")
	if !strings.Contains(report, "SYNTAX ERROR in stdin: plain failure") {
		t.Errorf("report = %q", report)
	}
}
