package evaluator

import (
	"math/big"
	"strconv"
)

type numTag int

const (
	numInt numTag = iota
	numFloat
	numRat
)

// Numeric wraps the three numeric towers the language knows: 64-bit
// integers, 64-bit floats and arbitrary-precision rationals. Rationals
// that reduce to whole numbers are normalized down to integers so that
// 4/2 and 2 are the same value and print the same way.
type Numeric struct {
	Located
	tag numTag
	i   int64
	f   float64
	r   *big.Rat
}

func NewInt(v int64) *Numeric {
	return &Numeric{Located: unknownLocation(), tag: numInt, i: v}
}

func NewFloat(v float64) *Numeric {
	return &Numeric{Located: unknownLocation(), tag: numFloat, f: v}
}

func NewRat(r *big.Rat) *Numeric {
	if r.IsInt() && r.Num().IsInt64() {
		return NewInt(r.Num().Int64())
	}
	return &Numeric{Located: unknownLocation(), tag: numRat, r: new(big.Rat).Set(r)}
}

func (n *Numeric) Kind() Kind { return NumericKind }
func (n *Numeric) Evaluate(_ *Environment) Amalgam { return n }

func (n *Numeric) String() string {
	switch n.tag {
	case numInt:
		return strconv.FormatInt(n.i, 10)
	case numFloat:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	default:
		return n.r.RatString()
	}
}

// IsInt reports whether the value is an exact integer, and its value.
func (n *Numeric) IsInt() (int64, bool) {
	if n.tag == numInt {
		return n.i, true
	}
	return 0, false
}

// Float returns the value widened to a float64.
func (n *Numeric) Float() float64 {
	switch n.tag {
	case numInt:
		return float64(n.i)
	case numFloat:
		return n.f
	default:
		f, _ := n.r.Float64()
		return f
	}
}

func (n *Numeric) rat() *big.Rat {
	switch n.tag {
	case numInt:
		return new(big.Rat).SetInt64(n.i)
	default:
		return n.r
	}
}

func (n *Numeric) isZero() bool {
	switch n.tag {
	case numInt:
		return n.i == 0
	case numFloat:
		return n.f == 0
	default:
		return n.r.Sign() == 0
	}
}

// compareNumeric orders two numerics. Exact kinds compare exactly; once a
// float is involved both sides widen to float64.
func compareNumeric(a, b *Numeric) (int, bool) {
	if a.tag == numFloat || b.tag == numFloat {
		x, y := a.Float(), b.Float()
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.tag == numInt && b.tag == numInt {
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	}
	return a.rat().Cmp(b.rat()), true
}

func addNumeric(a, b *Numeric) *Numeric {
	if a.tag == numFloat || b.tag == numFloat {
		return NewFloat(a.Float() + b.Float())
	}
	if a.tag == numInt && b.tag == numInt {
		return NewInt(a.i + b.i)
	}
	return NewRat(new(big.Rat).Add(a.rat(), b.rat()))
}

func subNumeric(a, b *Numeric) *Numeric {
	if a.tag == numFloat || b.tag == numFloat {
		return NewFloat(a.Float() - b.Float())
	}
	if a.tag == numInt && b.tag == numInt {
		return NewInt(a.i - b.i)
	}
	return NewRat(new(big.Rat).Sub(a.rat(), b.rat()))
}

func mulNumeric(a, b *Numeric) *Numeric {
	if a.tag == numFloat || b.tag == numFloat {
		return NewFloat(a.Float() * b.Float())
	}
	if a.tag == numInt && b.tag == numInt {
		return NewInt(a.i * b.i)
	}
	return NewRat(new(big.Rat).Mul(a.rat(), b.rat()))
}

// divNumeric divides like the original language: integer division widens
// to float, rational operands stay exact. Division by zero is reported by
// the caller; b must be non-zero here.
func divNumeric(a, b *Numeric) *Numeric {
	if a.tag == numFloat || b.tag == numFloat {
		return NewFloat(a.Float() / b.Float())
	}
	if a.tag == numInt && b.tag == numInt {
		return NewFloat(float64(a.i) / float64(b.i))
	}
	return NewRat(new(big.Rat).Quo(a.rat(), b.rat()))
}
