package evaluator

func init() {
	makeFunction(">", orderFn(">", func(c int) bool { return c > 0 }), false, false)
	makeFunction("<", orderFn("<", func(c int) bool { return c < 0 }), false, false)
	makeFunction(">=", orderFn(">=", func(c int) bool { return c >= 0 }), false, false)
	makeFunction("<=", orderFn("<=", func(c int) bool { return c <= 0 }), false, false)
	makeFunction("=", eqFn, false, false)
	makeFunction("/=", neFn, false, false)
}

// compare orders two Amalgams. Numerics order numerically, strings
// lexicographically; anything else is not comparable.
func compare(a, b Amalgam) (int, bool) {
	if x, ok := a.(*Numeric); ok {
		if y, ok := b.(*Numeric); ok {
			return compareNumeric(x, y)
		}
		return 0, false
	}
	if x, ok := a.(*String); ok {
		if y, ok := b.(*String); ok {
			switch {
			case x.Value < y.Value:
				return -1, true
			case x.Value > y.Value:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

func orderFn(name string, accept func(int) bool) NativeFn {
	return func(env *Environment, args ...Amalgam) Amalgam {
		if !arity(args, 2) {
			return fatalf(NewAtom(name), env, "malformed arguments: expected 2, got %d", len(args))
		}
		cmp, ok := compare(args[0], args[1])
		if !ok {
			return fatalf(args[0], env, "%s: not comparable", name)
		}
		return truthAtom(accept(cmp))
	}
}

func eqFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("="), env, "malformed arguments: expected 2, got %d", len(args))
	}
	return truthAtom(Equal(args[0], args[1]))
}

func neFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("/="), env, "malformed arguments: expected 2, got %d", len(args))
	}
	return truthAtom(!Equal(args[0], args[1]))
}
