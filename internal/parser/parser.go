package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/amalgam-lang/amalgam/internal/evaluator"
	"github.com/amalgam-lang/amalgam/internal/lexer"
)

// Error is a syntax error with the position of the offending token.
// Incomplete marks errors caused by running out of input inside an open
// form, which is what the REPL probes for before deciding to keep reading.
type Error struct {
	Message    string
	Line       int
	Column     int
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// IsIncomplete reports whether err means the input is a valid prefix of a
// larger program (unbalanced delimiter or unterminated string at EOF).
func IsIncomplete(err error) bool {
	pe, ok := err.(*Error)
	return ok && pe.Incomplete
}

type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
}

func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.l.NextToken()
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (p *Parser) incomplete(tok lexer.Token, message string) *Error {
	err := p.errorf(tok, "%s", message)
	err.Incomplete = true
	return err
}

// Parse reads every top-level form in the input. A single form is returned
// as is; several are wrapped in one (do ...) so the caller always gets one
// expression to evaluate.
func Parse(input string) (evaluator.Amalgam, error) {
	p := New(input)

	var forms []evaluator.Amalgam
	for p.cur.Type != lexer.EOF {
		form, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}

	switch len(forms) {
	case 0:
		return nil, p.errorf(p.cur, "empty input")
	case 1:
		return forms[0], nil
	default:
		vals := append([]evaluator.Amalgam{evaluator.NewSymbol("do")}, forms...)
		wrapped := evaluator.NewSExpression(vals...)
		firstLines, firstCols := evaluator.Location(forms[0])
		lastLines, lastCols := evaluator.Location(forms[len(forms)-1])
		wrapped.Locate(
			[2]int{firstLines[0], lastLines[1]},
			[2]int{firstCols[0], lastCols[1]},
		)
		return wrapped, nil
	}
}

func (p *Parser) parseExpression() (evaluator.Amalgam, error) {
	tok := p.cur

	switch tok.Type {
	case lexer.LPAREN:
		return p.parseSequence(lexer.RPAREN, tok)
	case lexer.LBRACKET:
		return p.parseSequence(lexer.RBRACKET, tok)
	case lexer.QUOTE:
		p.next()
		if p.cur.Type == lexer.EOF {
			return nil, p.incomplete(p.cur, "unexpected end of input after quote")
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		quoted := evaluator.NewQuoted(inner)
		lines, cols := evaluator.Location(inner)
		quoted.Locate([2]int{tok.Line, lines[1]}, [2]int{tok.Column, cols[1]})
		return quoted, nil
	case lexer.ATOM:
		p.next()
		atom := evaluator.NewAtom(tok.Literal)
		locate(atom, tok)
		return atom, nil
	case lexer.STRING:
		p.next()
		str := evaluator.NewString(tok.Literal)
		locate(str, tok)
		return str, nil
	case lexer.SYMBOL:
		p.next()
		sym := evaluator.NewSymbol(tok.Literal)
		locate(sym, tok)
		return sym, nil
	case lexer.NUMBER:
		p.next()
		num, err := parseNumber(tok)
		if err != nil {
			return nil, err
		}
		locate(num, tok)
		return num, nil
	case lexer.UNTERMINATED:
		return nil, p.incomplete(tok, "unterminated string")
	case lexer.EOF:
		return nil, p.incomplete(tok, "unexpected end of input")
	case lexer.RPAREN, lexer.RBRACKET:
		return nil, p.errorf(tok, "unexpected %q", tok.Literal)
	default:
		return nil, p.errorf(tok, "illegal character %q", tok.Literal)
	}
}

// parseSequence reads forms until the matching closer, producing an
// SExpression for parens and a Vector for brackets. EOF before the closer
// is an incomplete-input error.
func (p *Parser) parseSequence(closer lexer.TokenType, open lexer.Token) (evaluator.Amalgam, error) {
	p.next()

	var vals []evaluator.Amalgam
	for p.cur.Type != closer {
		switch p.cur.Type {
		case lexer.EOF:
			return nil, p.incomplete(p.cur, fmt.Sprintf("expected %q before end of input", string(closer)))
		case lexer.RPAREN, lexer.RBRACKET:
			return nil, p.errorf(p.cur, "expected %q, got %q", string(closer), p.cur.Literal)
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}

	end := p.cur
	p.next()

	lineSpan := [2]int{open.Line, end.EndLine}
	columnSpan := [2]int{open.Column, end.EndColumn}

	if closer == lexer.RBRACKET {
		vec := evaluator.NewVector(vals...)
		vec.Locate(lineSpan, columnSpan)
		return vec, nil
	}
	sexpr := evaluator.NewSExpression(vals...)
	sexpr.Locate(lineSpan, columnSpan)
	return sexpr, nil
}

func parseNumber(tok lexer.Token) (*evaluator.Numeric, error) {
	lit := tok.Literal

	if strings.ContainsRune(lit, '/') {
		r, ok := new(big.Rat).SetString(lit)
		if !ok {
			return nil, &Error{Message: fmt.Sprintf("malformed rational %q", lit), Line: tok.Line, Column: tok.Column}
		}
		return evaluator.NewRat(r), nil
	}

	if strings.ContainsRune(lit, '.') {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("malformed float %q", lit), Line: tok.Line, Column: tok.Column}
		}
		return evaluator.NewFloat(f), nil
	}

	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed integer %q", lit), Line: tok.Line, Column: tok.Column}
	}
	return evaluator.NewInt(i), nil
}

type locatable interface {
	Locate(lineSpan, columnSpan [2]int)
}

func locate(node locatable, tok lexer.Token) {
	node.Locate([2]int{tok.Line, tok.EndLine}, [2]int{tok.Column, tok.EndColumn})
}
