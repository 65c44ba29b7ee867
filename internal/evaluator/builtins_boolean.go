package evaluator

func init() {
	makeFunction("bool", boolFn, false, false)
	makeFunction("not", notFn, false, false)
	makeFunction("and", andFn, true, false)
	makeFunction("or", orFn, true, false)
}

// Truthy applies the language truthiness rules: the empty string, numeric
// zero, the empty vector, :FALSE and :NIL are falsy; everything else is
// truthy.
func Truthy(value Amalgam) bool {
	switch v := value.(type) {
	case *String:
		return v.Value != ""
	case *Numeric:
		return !v.isZero()
	case *Vector:
		return len(v.Vals) > 0
	case *Atom:
		return v.Value != "FALSE" && v.Value != "NIL"
	default:
		return true
	}
}

func truthAtom(truthy bool) *Atom {
	if truthy {
		return NewAtom("TRUE")
	}
	return NewAtom("FALSE")
}

func boolFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("bool"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	return truthAtom(Truthy(args[0]))
}

func notFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("not"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	return truthAtom(!Truthy(args[0]))
}

// andFn evaluates deferred expressions until one is falsy.
func andFn(env *Environment, args ...Amalgam) Amalgam {
	for _, arg := range args {
		result := unquote(arg).Evaluate(env)
		if n, ok := result.(*Notification); ok {
			return n
		}
		if !Truthy(result) {
			return NewAtom("FALSE")
		}
	}
	return NewAtom("TRUE")
}

// orFn evaluates deferred expressions until one is truthy.
func orFn(env *Environment, args ...Amalgam) Amalgam {
	for _, arg := range args {
		result := unquote(arg).Evaluate(env)
		if n, ok := result.(*Notification); ok {
			return n
		}
		if Truthy(result) {
			return NewAtom("TRUE")
		}
	}
	return NewAtom("FALSE")
}
