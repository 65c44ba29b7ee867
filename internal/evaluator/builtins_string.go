package evaluator

import "strings"

func init() {
	makeFunction("concat", concatFn, false, false)
}

// concatFn joins strings.
func concatFn(env *Environment, args ...Amalgam) Amalgam {
	var b strings.Builder
	for _, arg := range args {
		str, ok := arg.(*String)
		if !ok {
			return fatalf(arg, env, "concat: not a string")
		}
		b.WriteString(str.Value)
	}
	return NewString(b.String())
}
