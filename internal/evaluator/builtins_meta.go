package evaluator

import (
	"strings"

	"github.com/google/uuid"
)

func init() {
	makeFunction("setn", setnFn, true, false)
	makeFunction("setr", setrFn, true, false)
	makeFunction("fn", fnFn, true, false)
	makeFunction("mkfn", mkfnFn, true, false)
	makeFunction("macro", macroFn, true, false)
	makeFunction("let", letFn, true, false)
	makeFunction("eval", evalFn, false, false)
	makeFunction("unquote", unquoteFn, false, false)
	makeFunction("gensym", gensymFn, false, false)
}

// setnFn binds a name to the evaluated value in the immediate scope and
// returns the value. A fatal Notification from the value expression gets a
// "setn" trace entry; a non-fatal one passes through untouched.
func setnFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("setn"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	name, ok := unquote(args[0]).(*Symbol)
	if !ok {
		return fatalf(unquote(args[0]), env, "not a symbol")
	}
	value := unquote(args[1]).Evaluate(env)
	if n, ok := value.(*Notification); ok {
		if n.Fatal {
			n.Push(NewAtom("setn"), env, "inherited")
		}
		return n
	}
	env.Set(name.Value, value)
	return value
}

// setrFn resolves its first argument to a Symbol before binding, allowing
// computed names.
func setrFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("setr"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	resolved := unquote(args[0]).Evaluate(env)
	if n, ok := resolved.(*Notification); ok {
		return n
	}
	name, ok := resolved.(*Symbol)
	if !ok {
		return fatalf(resolved, env, "could not resolve to a symbol")
	}
	value := unquote(args[1]).Evaluate(env)
	if n, ok := value.(*Notification); ok {
		if n.Fatal {
			n.Push(NewAtom("setr"), env, "inherited")
		}
		return n
	}
	env.Set(name.Value, value)
	return value
}

// formalNames extracts parameter names from a [x y &rest z] vector.
func formalNames(env *Environment, params Amalgam) ([]string, *Notification) {
	vec, ok := params.(*Vector)
	if !ok {
		return nil, fatalf(params, env, "not a vector")
	}
	names := make([]string, len(vec.Vals))
	for i, val := range vec.Vals {
		sym, ok := val.(*Symbol)
		if !ok {
			return nil, fatalf(val, env, "not a symbol")
		}
		names[i] = sym.Value
	}
	return names, nil
}

// fnFn builds an anonymous function. The defining environment is captured
// whenever it is not the root, so free variables resolve lexically.
func fnFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("fn"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	names, fail := formalNames(env, unquote(args[0]))
	if fail != nil {
		return fail
	}
	fn := MakeClosure("~lambda~", names, unquote(args[1]), false)
	if env.Parent() != nil {
		fn.Bind(env)
	}
	return fn
}

// mkfnFn composes fn and setn into a named function definition.
func mkfnFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 3) {
		return fatalf(NewAtom("mkfn"), env, "malformed arguments: expected 3, got %d", len(args))
	}
	name, ok := unquote(args[0]).(*Symbol)
	if !ok {
		return fatalf(unquote(args[0]), env, "not a symbol")
	}
	result := fnFn(env, args[1], args[2])
	fn, ok := result.(*Function)
	if !ok {
		return result
	}
	fn.WithName(name.Value)
	env.Set(name.Value, fn)
	return fn
}

// macroFn defines a named deferred function: its body receives argument
// forms quoted rather than evaluated.
func macroFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 3) {
		return fatalf(NewAtom("macro"), env, "malformed arguments: expected 3, got %d", len(args))
	}
	name, ok := unquote(args[0]).(*Symbol)
	if !ok {
		return fatalf(unquote(args[0]), env, "not a symbol")
	}
	names, fail := formalNames(env, unquote(args[1]))
	if fail != nil {
		return fail
	}
	fn := MakeClosure(name.Value, names, unquote(args[2]), true)
	if env.Parent() != nil {
		fn.Bind(env)
	}
	env.Set(name.Value, fn)
	return fn
}

// letFn binds [[name value] ...] pairs in a fresh child scope and
// evaluates the body there. Malformed pairs fail at the point of
// detection.
func letFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("let"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	pairs, ok := unquote(args[0]).(*Vector)
	if !ok {
		return fatalf(unquote(args[0]), env, "not a vector")
	}

	names := make([]Amalgam, 0, len(pairs.Vals))
	values := make([]Amalgam, 0, len(pairs.Vals))
	for _, val := range pairs.Vals {
		pair, ok := val.(*Vector)
		if !ok || len(pair.Vals) != 2 {
			return fatalf(val, env, "not a pair")
		}
		if _, ok := pair.Vals[0].(*Symbol); !ok {
			return fatalf(pair.Vals[0], env, "not a symbol")
		}
		names = append(names, pair.Vals[0])
		values = append(values, pair.Vals[1])
	}

	result := fnFn(env, NewQuoted(NewVector(names...)), args[1])
	fn, ok := result.(*Function)
	if !ok {
		return result
	}
	return fn.Call(env, values...)
}

// evalFn evaluates a value, unwrapping one layer of quoting first.
func evalFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("eval"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	return unquote(args[0]).Evaluate(env)
}

// unquoteFn strips the Quoted wrapper off a value.
func unquoteFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("unquote"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	q, ok := args[0].(*Quoted)
	if !ok {
		return fatalf(NewAtom("unquote"), env, "unquotable value provided")
	}
	return q.Value
}

// gensymFn returns a fresh, quoted symbol that cannot collide with any
// parsed name. Used by macros to introduce hygienic bindings.
func gensymFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 0) {
		return fatalf(NewAtom("gensym"), env, "malformed arguments: expected 0, got %d", len(args))
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return NewQuoted(NewSymbol("#:" + id))
}
