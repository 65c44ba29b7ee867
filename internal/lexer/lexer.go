package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType string

const (
	EOF          TokenType = "EOF"
	LPAREN       TokenType = "("
	RPAREN       TokenType = ")"
	LBRACKET     TokenType = "["
	RBRACKET     TokenType = "]"
	QUOTE        TokenType = "'"
	ATOM         TokenType = "ATOM"
	STRING       TokenType = "STRING"
	NUMBER       TokenType = "NUMBER"
	SYMBOL       TokenType = "SYMBOL"
	ILLEGAL      TokenType = "ILLEGAL"
	UNTERMINATED TokenType = "UNTERMINATED"
)

// Token carries its lexeme and a start/end source position (1-based lines
// and columns). ATOM literals are stored without the leading colon and
// STRING literals without their delimiters, escapes already applied.
type Token struct {
	Type      TokenType
	Literal   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// symbolRune reports whether r may appear in a symbol or atom name:
// letters, digits and + - * / \ & < = > ? ! _
func symbolRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(`+-*/\&<=>?!_`, r)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch != ';' {
			return
		}
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	line, column := l.line, l.column

	switch l.ch {
	case 0:
		return Token{Type: EOF, Line: line, Column: column, EndLine: line, EndColumn: column}
	case '(':
		l.readChar()
		return Token{Type: LPAREN, Literal: "(", Line: line, Column: column, EndLine: line, EndColumn: column}
	case ')':
		l.readChar()
		return Token{Type: RPAREN, Literal: ")", Line: line, Column: column, EndLine: line, EndColumn: column}
	case '[':
		l.readChar()
		return Token{Type: LBRACKET, Literal: "[", Line: line, Column: column, EndLine: line, EndColumn: column}
	case ']':
		l.readChar()
		return Token{Type: RBRACKET, Literal: "]", Line: line, Column: column, EndLine: line, EndColumn: column}
	case '\'':
		l.readChar()
		return Token{Type: QUOTE, Literal: "'", Line: line, Column: column, EndLine: line, EndColumn: column}
	case '"':
		return l.readString(line, column)
	case ':':
		l.readChar()
		if !symbolRune(l.ch) {
			return Token{Type: ILLEGAL, Literal: ":", Line: line, Column: column, EndLine: line, EndColumn: column}
		}
		name, endLine, endColumn := l.readName()
		return Token{Type: ATOM, Literal: name, Line: line, Column: column, EndLine: endLine, EndColumn: endColumn}
	}

	if l.startsNumber() {
		return l.readNumber(line, column)
	}

	if symbolRune(l.ch) {
		name, endLine, endColumn := l.readName()
		return Token{Type: SYMBOL, Literal: name, Line: line, Column: column, EndLine: endLine, EndColumn: endColumn}
	}

	illegal := string(l.ch)
	l.readChar()
	return Token{Type: ILLEGAL, Literal: illegal, Line: line, Column: column, EndLine: line, EndColumn: column}
}

// startsNumber distinguishes numeric literals from symbols like "-" or
// "-inc": a digit, or a leading minus directly followed by a digit.
func (l *Lexer) startsNumber() bool {
	if unicode.IsDigit(l.ch) {
		return true
	}
	return l.ch == '-' && unicode.IsDigit(l.peekChar())
}

func (l *Lexer) readName() (string, int, int) {
	start := l.position
	endLine, endColumn := l.line, l.column
	for symbolRune(l.ch) {
		endLine, endColumn = l.line, l.column
		l.readChar()
	}
	return l.input[start:l.position], endLine, endColumn
}

// readNumber scans -?digits with an optional .digits (float) or /digits
// (rational) tail. A trailing name rune turns the whole lexeme into a
// SYMBOL instead, so identifiers like 1st never half-lex.
func (l *Lexer) readNumber(line, column int) Token {
	start := l.position
	endLine, endColumn := l.line, l.column

	advance := func() {
		endLine, endColumn = l.line, l.column
		l.readChar()
	}

	if l.ch == '-' {
		advance()
	}
	for unicode.IsDigit(l.ch) {
		advance()
	}
	if (l.ch == '.' || l.ch == '/') && unicode.IsDigit(l.peekChar()) {
		advance()
		for unicode.IsDigit(l.ch) {
			advance()
		}
	}

	if symbolRune(l.ch) {
		_, endLine, endColumn = l.readName()
		return Token{
			Type:    SYMBOL,
			Literal: l.input[start:l.position],
			Line:    line, Column: column,
			EndLine: endLine, EndColumn: endColumn,
		}
	}

	return Token{
		Type:    NUMBER,
		Literal: l.input[start:l.position],
		Line:    line, Column: column,
		EndLine: endLine, EndColumn: endColumn,
	}
}

func (l *Lexer) readString(line, column int) Token {
	var b strings.Builder
	l.readChar() // opening quote

	for {
		switch l.ch {
		case 0:
			return Token{
				Type:    UNTERMINATED,
				Literal: b.String(),
				Line:    line, Column: column,
				EndLine: l.line, EndColumn: l.column,
			}
		case '"':
			endLine, endColumn := l.line, l.column
			l.readChar()
			return Token{
				Type:    STRING,
				Literal: b.String(),
				Line:    line, Column: column,
				EndLine: endLine, EndColumn: endColumn,
			}
		case '\\':
			l.readChar()
			switch l.ch {
			case 0:
				continue // unterminated, caught above
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune(l.ch)
			}
			l.readChar()
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}
