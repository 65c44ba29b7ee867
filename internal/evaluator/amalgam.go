package evaluator

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed set of Amalgam variants. Consumers that
// switch on it (the printer, the mapping view, the diagnostics renderer)
// are expected to handle every constant below.
type Kind string

const (
	AtomKind         Kind = "ATOM"
	NumericKind      Kind = "NUMERIC"
	StringKind       Kind = "STRING"
	SymbolKind       Kind = "SYMBOL"
	FunctionKind     Kind = "FUNCTION"
	SExpressionKind  Kind = "S-EXPRESSION"
	VectorKind       Kind = "VECTOR"
	QuotedKind       Kind = "QUOTED"
	InternalKind     Kind = "INTERNAL"
	NotificationKind Kind = "NOTIFICATION"
)

// Amalgam is simultaneously the syntax tree node and the runtime value of
// the language. The unexported loc method seals the variant set to this
// package: every variant embeds Located.
type Amalgam interface {
	Kind() Kind
	// Evaluate reduces the receiver against an environment. Literals
	// return themselves; Symbol resolves a name; SExpression performs a
	// call; Vector rebuilds itself from evaluated items.
	Evaluate(env *Environment) Amalgam
	String() string
	loc() *Located
}

// Located carries best-effort source spans for diagnostics. Spans are
// [start, end] pairs; (-1, -1) means the position is unknown (the node was
// built programmatically rather than parsed).
type Located struct {
	LineSpan   [2]int
	ColumnSpan [2]int
}

var unknownSpan = [2]int{-1, -1}

func unknownLocation() Located {
	return Located{LineSpan: unknownSpan, ColumnSpan: unknownSpan}
}

func (l *Located) loc() *Located { return l }

// Locate records the source span of a node. Used by the parser.
func (l *Located) Locate(lineSpan, columnSpan [2]int) {
	l.LineSpan = lineSpan
	l.ColumnSpan = columnSpan
}

// Known reports whether the node carries a real source position.
func (l *Located) Known() bool { return l.LineSpan[0] >= 0 }

// Location exposes the span of any Amalgam node.
func Location(a Amalgam) ([2]int, [2]int) {
	l := a.loc()
	return l.LineSpan, l.ColumnSpan
}

// Atom is an interned literal tag such as :TRUE or :NIL. It never triggers
// an environment lookup, which is what separates it from Symbol.
type Atom struct {
	Located
	Value string
}

func NewAtom(value string) *Atom {
	return &Atom{Located: unknownLocation(), Value: value}
}

func (a *Atom) Kind() Kind { return AtomKind }
func (a *Atom) Evaluate(_ *Environment) Amalgam { return a }
func (a *Atom) String() string { return ":" + a.Value }

// String wraps a text literal.
type String struct {
	Located
	Value string
}

func NewString(value string) *String {
	return &String{Located: unknownLocation(), Value: value}
}

func (s *String) Kind() Kind { return StringKind }
func (s *String) Evaluate(_ *Environment) Amalgam { return s }
func (s *String) String() string { return "\"" + s.Value + "\"" }

// Symbol is a deferred name reference, resolved against an environment only
// at evaluation time.
type Symbol struct {
	Located
	Value string
}

func NewSymbol(value string) *Symbol {
	return &Symbol{Located: unknownLocation(), Value: value}
}

func (s *Symbol) Kind() Kind { return SymbolKind }

// Evaluate resolves the symbol across the full environment chain. A miss
// yields a fatal Notification whose first trace entry names this symbol.
func (s *Symbol) Evaluate(env *Environment) Amalgam {
	var value Amalgam
	var ok bool
	mustSearchAt(env, -1, func() {
		value, ok = env.Get(s.Value)
	})
	if !ok {
		n := NewNotification()
		n.Push(s, env, "unbound symbol")
		return n
	}
	return value
}

func (s *Symbol) String() string { return s.Value }

// SExpression is a call form: head plus zero or more argument forms.
type SExpression struct {
	Located
	Vals []Amalgam
}

func NewSExpression(vals ...Amalgam) *SExpression {
	return &SExpression{Located: unknownLocation(), Vals: vals}
}

func (s *SExpression) Kind() Kind { return SExpressionKind }

// Func returns the head of the call form.
func (s *SExpression) Func() Amalgam { return s.Vals[0] }

// Args returns the argument forms after the head.
func (s *SExpression) Args() []Amalgam { return s.Vals[1:] }

// Evaluate evaluates the head, requires the result to be callable and
// invokes it with the raw argument forms. A fatal Notification coming out
// of the head or the call gets exactly one "inherited" trace entry naming
// this node; non-fatal Notifications pass through untouched.
func (s *SExpression) Evaluate(env *Environment) Amalgam {
	if len(s.Vals) == 0 {
		n := NewNotification()
		n.Push(s, env, "empty call")
		return n
	}

	head := s.Func().Evaluate(env)
	if n, ok := head.(*Notification); ok {
		if n.Fatal {
			n.Push(s, env, "inherited")
		}
		return n
	}

	fn, ok := head.(*Function)
	if !ok {
		n := NewNotification()
		n.Push(head, env, "not a callable")
		return n
	}

	result := fn.Call(env, s.Args()...)
	if n, ok := result.(*Notification); ok && n.Fatal {
		n.Push(s, env, "inherited")
	}
	return result
}

func (s *SExpression) String() string {
	return "(" + joinAmalgams(s.Vals) + ")"
}

// Vector is an ordered sequence of Amalgams. An even-length, non-empty
// vector whose even-indexed elements are all Atoms doubles as a mapping
// (see Mapping).
type Vector struct {
	Located
	Vals []Amalgam
}

func NewVector(vals ...Amalgam) *Vector {
	return &Vector{Located: unknownLocation(), Vals: vals}
}

func (v *Vector) Kind() Kind { return VectorKind }

// Evaluate evaluates each item left to right into a new Vector. The first
// fatal Notification stops the walk, receives one "inherited" entry and is
// returned. A non-fatal Notification is returned immediately, unmodified.
func (v *Vector) Evaluate(env *Environment) Amalgam {
	vals := make([]Amalgam, 0, len(v.Vals))
	for _, item := range v.Vals {
		result := item.Evaluate(env)
		if n, ok := result.(*Notification); ok {
			if n.Fatal {
				n.Push(v, env, "inherited")
			}
			return n
		}
		vals = append(vals, result)
	}
	return NewVector(vals...)
}

// Mapping derives the read-only mapping view of the vector. It is non-empty
// iff the vector has even, non-zero length and every even-indexed element
// is an Atom; any other shape yields an empty map.
func (v *Vector) Mapping() map[string]Amalgam {
	mapping := map[string]Amalgam{}
	if len(v.Vals) == 0 || len(v.Vals)%2 != 0 {
		return mapping
	}
	for i := 0; i < len(v.Vals); i += 2 {
		key, ok := v.Vals[i].(*Atom)
		if !ok {
			return map[string]Amalgam{}
		}
		mapping[key.Value] = v.Vals[i+1]
	}
	return mapping
}

func (v *Vector) String() string {
	return "[" + joinAmalgams(v.Vals) + "]"
}

// Quoted suppresses evaluation of its inner Amalgam.
type Quoted struct {
	Located
	Value Amalgam
}

func NewQuoted(value Amalgam) *Quoted {
	return &Quoted{Located: unknownLocation(), Value: value}
}

func (q *Quoted) Kind() Kind { return QuotedKind }
func (q *Quoted) Evaluate(_ *Environment) Amalgam { return q }
func (q *Quoted) String() string { return "'" + q.Value.String() }

// Internal is an escape hatch for host values (an engine handle, an output
// writer) that must travel through the environment but are not language
// values.
type Internal struct {
	Located
	Value any
}

func NewInternal(value any) *Internal {
	return &Internal{Located: unknownLocation(), Value: value}
}

func (i *Internal) Kind() Kind { return InternalKind }
func (i *Internal) Evaluate(_ *Environment) Amalgam { return i }
func (i *Internal) String() string { return fmt.Sprintf("~%T~", i.Value) }

func joinAmalgams(vals []Amalgam) string {
	parts := make([]string, len(vals))
	for i, val := range vals {
		parts[i] = val.String()
	}
	return strings.Join(parts, " ")
}

// Equal compares two Amalgams structurally: atoms and symbols by name,
// numerics numerically, strings by content, sequences elementwise, quoted
// values by their inner forms and functions by identity.
func Equal(a, b Amalgam) bool {
	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Value == y.Value
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Numeric:
		y, ok := b.(*Numeric)
		if !ok {
			return false
		}
		cmp, comparable := compareNumeric(x, y)
		return comparable && cmp == 0
	case *Vector:
		y, ok := b.(*Vector)
		return ok && equalSlices(x.Vals, y.Vals)
	case *SExpression:
		y, ok := b.(*SExpression)
		return ok && equalSlices(x.Vals, y.Vals)
	case *Quoted:
		y, ok := b.(*Quoted)
		return ok && Equal(x.Value, y.Value)
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y
	case *Internal:
		y, ok := b.(*Internal)
		return ok && x == y
	case *Notification:
		y, ok := b.(*Notification)
		return ok && x == y
	default:
		return false
	}
}

func equalSlices(a, b []Amalgam) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
