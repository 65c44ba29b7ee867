package evaluator

// NativeFn is the host signature behind every Function value. Deferred
// functions receive their arguments wrapped in Quoted; eager ones receive
// them already evaluated.
type NativeFn func(env *Environment, args ...Amalgam) Amalgam

// Function is a callable value. Once a captured environment is bound the
// function always executes in that scope, never the caller's. Contextual
// functions (break, return) are callable only while an enclosing construct
// has toggled InContext for the dynamic extent of one call.
type Function struct {
	Located
	Name       string
	Fn         NativeFn
	Defer      bool
	Contextual bool
	InContext  bool

	env *Environment
}

func NewFunction(name string, fn NativeFn, deferArgs, contextual bool) *Function {
	return &Function{
		Located:    unknownLocation(),
		Name:       name,
		Fn:         fn,
		Defer:      deferArgs,
		Contextual: contextual,
	}
}

func (f *Function) Kind() Kind { return FunctionKind }
func (f *Function) Evaluate(_ *Environment) Amalgam { return f }
func (f *Function) String() string { return f.Name }

// Bind captures env as the function's execution scope. Calling a bound
// function ignores the caller-supplied environment.
func (f *Function) Bind(env *Environment) *Function {
	f.env = env
	return f
}

// Bound returns the captured environment, if any.
func (f *Function) Bound() *Environment { return f.env }

// WithName renames the function in place and returns it.
func (f *Function) WithName(name string) *Function {
	f.Name = name
	return f
}

// Call applies the function:
//
//  1. a contextual function outside its context fails fatally;
//  2. a captured environment replaces the caller's;
//  3. deferred arguments are wrapped in Quoted, eager ones are evaluated
//     left to right; the first fatal Notification gets one "inherited"
//     entry and short-circuits the call, a non-fatal one is returned
//     verbatim without invoking the callee;
//  4. the underlying callable's result is returned untouched.
func (f *Function) Call(env *Environment, args ...Amalgam) Amalgam {
	if f.Contextual && !f.InContext {
		n := NewNotification()
		n.Push(f, env, "invalid context")
		return n
	}

	if f.env != nil {
		env = f.env
	}

	processed := make([]Amalgam, len(args))
	if f.Defer {
		for i, arg := range args {
			processed[i] = NewQuoted(arg)
		}
	} else {
		for i, arg := range args {
			value := arg.Evaluate(env)
			if n, ok := value.(*Notification); ok {
				if n.Fatal {
					n.Push(NewAtom(f.Name), env, "inherited")
				}
				return n
			}
			processed[i] = value
		}
	}

	return f.Fn(env, processed...)
}

// RestMarker is the formal name that packs surplus positional arguments
// into a Vector. It may appear once, anywhere in the parameter list.
const RestMarker = "&rest"

// MakeClosure builds the native callable behind fn/mkfn/macro. Each call
// pushes a child environment binding the formal names to the supplied
// arguments, evaluates body there, and binds a resulting Function to that
// same child so that nested fn forms close over outer parameters.
//
// One RestMarker is allowed among params, splitting them into a fixed
// leading group, a packed rest group and a fixed trailing group. Without a
// marker, surplus arguments are dropped and missing ones bind to :NIL.
func MakeClosure(name string, params []string, body Amalgam, deferArgs bool) *Function {
	rest := -1
	for i, param := range params {
		if param == RestMarker {
			rest = i
			break
		}
	}

	closure := func(env *Environment, args ...Amalgam) Amalgam {
		bound := map[string]Amalgam{}

		if rest < 0 {
			for i, param := range params {
				if i < len(args) {
					bound[param] = args[i]
				} else {
					bound[param] = NewAtom("NIL")
				}
			}
		} else {
			leading, trailing := params[:rest], params[rest+1:]
			if len(args) < len(leading)+len(trailing) {
				return fatalf(NewAtom(name), env, "malformed arguments: expected at least %d, got %d",
					len(leading)+len(trailing), len(args))
			}
			for i, param := range leading {
				bound[param] = args[i]
			}
			tail := len(args) - len(trailing)
			for i, param := range trailing {
				bound[param] = args[tail+i]
			}
			bound[RestMarker] = NewVector(args[len(leading):tail]...)
		}

		clEnv := env.Push(bound, name)
		result := body.Evaluate(clEnv)
		if inner, ok := result.(*Function); ok {
			inner.Bind(clEnv)
		}
		return result
	}

	return NewFunction(name, closure, deferArgs, false)
}
