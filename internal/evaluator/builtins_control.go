package evaluator

import (
	"fmt"
	"os"
)

func init() {
	makeFunction("if", ifFn, true, false)
	makeFunction("when", whenFn, true, false)
	makeFunction("cond", condFn, true, false)
	makeFunction("do", doFn, true, false)
	makeFunction("return", returnFn, false, true)
	makeFunction("break", breakFn, false, true)
	makeFunction("loop", loopFn, true, false, "break", "return")
	makeFunction("exit", exitFn, false, false)
}

// ifFn checks the truthiness of the evaluated condition and evaluates
// exactly one of the two branches.
func ifFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 3) {
		return fatalf(NewAtom("if"), env, "malformed arguments: expected 3, got %d", len(args))
	}
	cond := unquote(args[0]).Evaluate(env)
	if n, ok := cond.(*Notification); ok {
		return n
	}
	if Truthy(cond) {
		return unquote(args[1]).Evaluate(env)
	}
	return unquote(args[2]).Evaluate(env)
}

// whenFn is if with the else branch defaulted to :NIL.
func whenFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("when"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	cond := unquote(args[0]).Evaluate(env)
	if n, ok := cond.(*Notification); ok {
		return n
	}
	if Truthy(cond) {
		return unquote(args[1]).Evaluate(env)
	}
	return NewAtom("NIL")
}

// condFn walks [predicate expression] pairs and evaluates the expression
// of the first truthy predicate; :NIL when none match.
func condFn(env *Environment, args ...Amalgam) Amalgam {
	for _, arg := range args {
		pair, ok := unquote(arg).(*Vector)
		if !ok || len(pair.Vals) != 2 {
			return fatalf(unquote(arg), env, "not a pair")
		}
		pred := pair.Vals[0].Evaluate(env)
		if n, ok := pred.(*Notification); ok {
			return n
		}
		if Truthy(pred) {
			return pair.Vals[1].Evaluate(env)
		}
	}
	return NewAtom("NIL")
}

// doFn evaluates every expression in order, returning the last result.
func doFn(env *Environment, args ...Amalgam) Amalgam {
	var result Amalgam = NewAtom("NIL")
	for _, arg := range args {
		result = unquote(arg).Evaluate(env)
		if n, ok := result.(*Notification); ok {
			return n
		}
	}
	return result
}

// returnFn escapes the enclosing loop with a payload. Contextual: only
// callable while a loop has toggled it into context.
func returnFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("return"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	return NewEscape(args[0])
}

// breakFn escapes the enclosing loop with :NIL.
func breakFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 0) {
		return fatalf(NewAtom("break"), env, "malformed arguments: expected 0, got %d", len(args))
	}
	return NewEscape(NewAtom("NIL"))
}

// loopFn evaluates its body expressions in order, indefinitely. It is the
// sole consumer of non-fatal Notifications: the first one encountered ends
// the loop and its payload becomes the loop's result. Fatal Notifications
// are re-propagated with one "inherited" entry, never swallowed.
func loopFn(env *Environment, args ...Amalgam) Amalgam {
	for {
		for _, arg := range args {
			result := unquote(arg).Evaluate(env)
			if n, ok := result.(*Notification); ok {
				if n.Fatal {
					n.Push(NewAtom("loop"), env, "inherited")
					return n
				}
				return n.Payload
			}
		}
	}
}

// exitFn terminates the host process. Not recoverable by the evaluator.
func exitFn(env *Environment, args ...Amalgam) Amalgam {
	code := int64(0)
	if len(args) > 0 {
		num, ok := args[0].(*Numeric)
		if !ok {
			return fatalf(args[0], env, "exit: not a number")
		}
		if i, ok := num.IsInt(); ok {
			code = i
		}
	}
	fmt.Fprintln(outputWriter(env), "Goodbye.")
	os.Exit(int(code))
	return NewAtom("NIL") // unreachable
}
