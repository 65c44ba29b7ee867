package evaluator

// Functions is the primitive registry: every builtin registers itself here
// under its language-level name via init() in the builtins_*.go files. The
// engine seeds a root environment from Builtins(), never from this map
// directly.
var Functions = map[string]*Function{}

// makeFunction wraps fn according to the registry contract and stores the
// result in Functions. A non-empty allows list makes the wrapper resolve
// the named sibling primitives with an unbounded lookup and toggle their
// InContext flag for the dynamic extent of one call, with a guaranteed
// reset. This is how loop legalizes break and return.
func makeFunction(name string, fn NativeFn, deferArgs, contextual bool, allows ...string) *Function {
	wrapped := fn
	if len(allows) > 0 {
		inner := fn
		wrapped = func(env *Environment, args ...Amalgam) Amalgam {
			var siblings []*Function
			mustSearchAt(env, -1, func() {
				for _, allow := range allows {
					if value, ok := env.Get(allow); ok {
						if sibling, ok := value.(*Function); ok {
							siblings = append(siblings, sibling)
						}
					}
				}
			})
			for _, sibling := range siblings {
				sibling.InContext = true
			}
			defer func() {
				for _, sibling := range siblings {
					sibling.InContext = false
				}
			}()
			return inner(env, args...)
		}
	}

	function := NewFunction(name, wrapped, deferArgs, contextual)
	Functions[name] = function
	return function
}

// Builtins returns a fresh set of primitive Functions. Each engine gets
// its own clones so that InContext toggling and environment binding never
// leak across independent environment chains.
func Builtins() map[string]Amalgam {
	bindings := make(map[string]Amalgam, len(Functions))
	for name, fn := range Functions {
		clone := *fn
		bindings[name] = &clone
	}
	return bindings
}

// arity reports whether a primitive received exactly want arguments.
func arity(args []Amalgam, want int) bool { return len(args) == want }

// unquote strips the Quoted wrapper a deferred primitive receives around
// each argument form.
func unquote(arg Amalgam) Amalgam {
	if q, ok := arg.(*Quoted); ok {
		return q.Value
	}
	return arg
}
