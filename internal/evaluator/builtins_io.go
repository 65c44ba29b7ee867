package evaluator

import (
	"fmt"
	"io"
	"os"
)

func init() {
	makeFunction("print", printFn, false, false)
	makeFunction("putstrln", putstrlnFn, false, false)
}

// OutBinding is the well-known environment name under which the engine
// installs the writer that print and putstrln target. Tests swap it for a
// buffer; without it output goes to stdout.
const OutBinding = "~out~"

func outputWriter(env *Environment) io.Writer {
	var out Amalgam
	var ok bool
	mustSearchAt(env, -1, func() {
		out, ok = env.Get(OutBinding)
	})
	if ok {
		if internal, ok := out.(*Internal); ok {
			if w, ok := internal.Value.(io.Writer); ok {
				return w
			}
		}
	}
	return os.Stdout
}

// printFn renders any value in its textual form and returns it.
func printFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("print"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	fmt.Fprintln(outputWriter(env), args[0].String())
	return args[0]
}

// putstrlnFn prints a string's contents without quotes and returns it.
func putstrlnFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("putstrln"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	str, ok := args[0].(*String)
	if !ok {
		return fatalf(args[0], env, "putstrln only accepts a string")
	}
	fmt.Fprintln(outputWriter(env), str.Value)
	return str
}
