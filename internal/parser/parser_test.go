package parser

import (
	"testing"

	"github.com/amalgam-lang/amalgam/internal/evaluator"
)

func mustParse(t *testing.T, input string) evaluator.Amalgam {
	t.Helper()
	node, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return node
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  evaluator.Kind
		text  string
	}{
		{"42", evaluator.NumericKind, "42"},
		{"-3.5", evaluator.NumericKind, "-3.5"},
		{"2/3", evaluator.NumericKind, "2/3"},
		{"4/2", evaluator.NumericKind, "2"},
		{`"hello"`, evaluator.StringKind, `"hello"`},
		{":TRUE", evaluator.AtomKind, ":TRUE"},
		{"foo", evaluator.SymbolKind, "foo"},
		{"'x", evaluator.QuotedKind, "'x"},
		{"(f 1 2)", evaluator.SExpressionKind, "(f 1 2)"},
		{"[1 2 3]", evaluator.VectorKind, "[1 2 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, tt.input)
			if node.Kind() != tt.kind {
				t.Errorf("kind = %s, want %s", node.Kind(), tt.kind)
			}
			if node.String() != tt.text {
				t.Errorf("String() = %s, want %s", node, tt.text)
			}
		})
	}
}

func TestParseNesting(t *testing.T) {
	node := mustParse(t, "(setn f (fn [x] (+ x 1)))")
	sexpr, ok := node.(*evaluator.SExpression)
	if !ok {
		t.Fatalf("node is %T, want *SExpression", node)
	}
	if len(sexpr.Vals) != 3 {
		t.Fatalf("len = %d, want 3", len(sexpr.Vals))
	}
	inner, ok := sexpr.Vals[2].(*evaluator.SExpression)
	if !ok {
		t.Fatalf("third element is %T, want *SExpression", sexpr.Vals[2])
	}
	if _, ok := inner.Vals[1].(*evaluator.Vector); !ok {
		t.Errorf("fn params is %T, want *Vector", inner.Vals[1])
	}
}

func TestParseMultipleFormsWrapInDo(t *testing.T) {
	node := mustParse(t, "(setn x 1) (+ x 1)")
	sexpr, ok := node.(*evaluator.SExpression)
	if !ok {
		t.Fatalf("node is %T, want *SExpression", node)
	}
	head, ok := sexpr.Vals[0].(*evaluator.Symbol)
	if !ok || head.Value != "do" {
		t.Fatalf("head = %v, want do", sexpr.Vals[0])
	}
	if len(sexpr.Vals) != 3 {
		t.Errorf("len = %d, want 3", len(sexpr.Vals))
	}
}

func TestParseLocations(t *testing.T) {
	node := mustParse(t, "(+ 1\n   2)")
	lines, columns := evaluator.Location(node)
	if lines != [2]int{1, 2} {
		t.Errorf("lines = %v, want [1 2]", lines)
	}
	if columns != [2]int{1, 5} {
		t.Errorf("columns = %v, want [1 5]", columns)
	}

	sexpr := node.(*evaluator.SExpression)
	lines, columns = evaluator.Location(sexpr.Vals[2])
	if lines != [2]int{2, 2} || columns[0] != 4 {
		t.Errorf("2 at lines %v columns %v, want line 2 column 4", lines, columns)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		incomplete bool
	}{
		{"unbalanced open paren", "(+ 1 2", true},
		{"unbalanced open bracket", "[1 2", true},
		{"unterminated string", `"abc`, true},
		{"dangling quote", "'", true},
		{"empty input", "", false},
		{"stray close paren", ")", false},
		{"mismatched closer", "(1 2]", false},
		{"lone colon", ":", false},
		{"illegal rune", "@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsIncomplete(err) != tt.incomplete {
				t.Errorf("IsIncomplete = %v, want %v (err: %v)", IsIncomplete(err), tt.incomplete, err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("(+ 1\n2]")
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("err is %T, want *Error", err)
	}
	if pe.Line != 2 || pe.Column != 2 {
		t.Errorf("position = %d:%d, want 2:2", pe.Line, pe.Column)
	}
}
