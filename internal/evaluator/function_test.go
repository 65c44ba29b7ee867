package evaluator

import (
	"testing"
)

func TestCallContextualGate(t *testing.T) {
	fn := NewFunction("return", func(env *Environment, args ...Amalgam) Amalgam {
		return NewEscape(args[0])
	}, false, true)
	env := NewEnvironment(nil, "global")

	t.Run("outside context fails fatally", func(t *testing.T) {
		got := fn.Call(env, NewInt(1))
		n, ok := got.(*Notification)
		if !ok || !n.Fatal {
			t.Fatalf("got %v, want a fatal notification", got)
		}
		if n.Trace[0].Message != "invalid context" {
			t.Errorf("message = %q", n.Trace[0].Message)
		}
	})

	t.Run("inside context runs", func(t *testing.T) {
		fn.InContext = true
		defer func() { fn.InContext = false }()
		got := fn.Call(env, NewInt(1))
		n, ok := got.(*Notification)
		if !ok || n.Fatal {
			t.Fatalf("got %v, want a non-fatal notification", got)
		}
	})
}

func TestCallBoundEnvironmentWins(t *testing.T) {
	captured := NewEnvironment(map[string]Amalgam{"x": NewInt(10)}, "captured")
	caller := NewEnvironment(map[string]Amalgam{"x": NewInt(99)}, "caller")

	fn := NewFunction("probe", func(env *Environment, args ...Amalgam) Amalgam {
		value, _ := env.Get("x")
		return value
	}, false, false).Bind(captured)

	got := fn.Call(caller)
	if v, _ := got.(*Numeric).IsInt(); v != 10 {
		t.Errorf("x = %d, want 10 from the captured environment", v)
	}
}

func TestCallArgumentHandling(t *testing.T) {
	env := NewEnvironment(map[string]Amalgam{"x": NewInt(5)}, "global")

	t.Run("eager arguments are evaluated", func(t *testing.T) {
		fn := NewFunction("probe", func(env *Environment, args ...Amalgam) Amalgam {
			return args[0]
		}, false, false)
		got := fn.Call(env, NewSymbol("x"))
		if v, _ := got.(*Numeric).IsInt(); v != 5 {
			t.Errorf("got %s, want 5", got)
		}
	})

	t.Run("deferred arguments arrive quoted", func(t *testing.T) {
		fn := NewFunction("probe", func(env *Environment, args ...Amalgam) Amalgam {
			return args[0]
		}, true, false)
		got := fn.Call(env, NewSymbol("x"))
		q, ok := got.(*Quoted)
		if !ok {
			t.Fatalf("got %T, want *Quoted", got)
		}
		if sym, ok := q.Value.(*Symbol); !ok || sym.Value != "x" {
			t.Errorf("quoted value = %s, want symbol x", q.Value)
		}
	})

	t.Run("fatal in an eager argument short-circuits", func(t *testing.T) {
		invoked := false
		fn := NewFunction("probe", func(env *Environment, args ...Amalgam) Amalgam {
			invoked = true
			return NewAtom("NIL")
		}, false, false)
		got := fn.Call(env, NewSymbol("missing"), NewSymbol("x"))
		n, ok := got.(*Notification)
		if !ok || !n.Fatal {
			t.Fatalf("got %v, want a fatal notification", got)
		}
		if len(n.Trace) != 2 || n.Trace[1].Message != "inherited" {
			t.Errorf("trace = %v", n.Trace)
		}
		if invoked {
			t.Error("callee ran despite a fatal argument")
		}
	})

	t.Run("non-fatal in an eager argument passes through verbatim", func(t *testing.T) {
		escape := NewEscape(NewInt(7))
		thrower := NewFunction("throw", func(env *Environment, args ...Amalgam) Amalgam {
			return escape
		}, false, false)
		env := NewEnvironment(map[string]Amalgam{"throw": thrower}, "global")

		fn := NewFunction("probe", func(env *Environment, args ...Amalgam) Amalgam {
			return NewAtom("NIL")
		}, false, false)
		got := fn.Call(env, NewSExpression(NewSymbol("throw")))
		if got != escape {
			t.Fatalf("got %v, want the escape itself", got)
		}
		if len(escape.Trace) != 0 {
			t.Errorf("escape trace grew to %d entries", len(escape.Trace))
		}
	})
}

func closureResult(t *testing.T, fn *Function, env *Environment, args ...Amalgam) Amalgam {
	t.Helper()
	got := fn.Call(env, args...)
	if n, ok := got.(*Notification); ok && n.Fatal {
		t.Fatalf("call failed: %v", n.Trace)
	}
	return got
}

func TestMakeClosureFixedParams(t *testing.T) {
	env := NewEnvironment(nil, "global")
	body := NewVector(NewSymbol("a"), NewSymbol("b"))
	fn := MakeClosure("pair", []string{"a", "b"}, body, false)

	t.Run("exact arity", func(t *testing.T) {
		got := closureResult(t, fn, env, NewInt(1), NewInt(2))
		if got.String() != "[1 2]" {
			t.Errorf("got %s, want [1 2]", got)
		}
	})

	t.Run("missing arguments fill with NIL", func(t *testing.T) {
		got := closureResult(t, fn, env, NewInt(1))
		if got.String() != "[1 :NIL]" {
			t.Errorf("got %s, want [1 :NIL]", got)
		}
	})

	t.Run("surplus arguments are dropped", func(t *testing.T) {
		got := closureResult(t, fn, env, NewInt(1), NewInt(2), NewInt(3))
		if got.String() != "[1 2]" {
			t.Errorf("got %s, want [1 2]", got)
		}
	})
}

func TestMakeClosureRestLayouts(t *testing.T) {
	env := NewEnvironment(nil, "global")
	args := []Amalgam{NewInt(1), NewInt(2), NewInt(3), NewInt(4)}

	tests := []struct {
		name   string
		params []string
		body   Amalgam
		want   string
	}{
		{
			"all rest",
			[]string{RestMarker},
			NewSymbol(RestMarker),
			"[1 2 3 4]",
		},
		{
			"rest at the end",
			[]string{"a", RestMarker},
			NewVector(NewSymbol("a"), NewSymbol(RestMarker)),
			"[1 [2 3 4]]",
		},
		{
			"rest at the start",
			[]string{RestMarker, "z"},
			NewVector(NewSymbol(RestMarker), NewSymbol("z")),
			"[[1 2 3] 4]",
		},
		{
			"rest in the middle",
			[]string{"a", RestMarker, "z"},
			NewVector(NewSymbol("a"), NewSymbol(RestMarker), NewSymbol("z")),
			"[1 [2 3] 4]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := MakeClosure("spread", tt.params, tt.body, false)
			got := closureResult(t, fn, env, args...)
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMakeClosureRestUnderflow(t *testing.T) {
	env := NewEnvironment(nil, "global")
	fn := MakeClosure("spread", []string{"a", RestMarker, "z"}, NewSymbol("a"), false)

	got := fn.Call(env, NewInt(1))
	n, ok := got.(*Notification)
	if !ok || !n.Fatal {
		t.Fatalf("got %v, want a fatal notification", got)
	}
	if n.Trace[0].Message != "malformed arguments: expected at least 2, got 1" {
		t.Errorf("message = %q", n.Trace[0].Message)
	}
}

func TestMakeClosureEmptyRestGroup(t *testing.T) {
	env := NewEnvironment(nil, "global")
	fn := MakeClosure("spread", []string{"a", RestMarker, "z"},
		NewSymbol(RestMarker), false)

	got := closureResult(t, fn, env, NewInt(1), NewInt(2))
	if got.String() != "[]" {
		t.Errorf("got %s, want []", got)
	}
}

func TestMakeClosureBindsNestedFunctions(t *testing.T) {
	// (fn [x] (fn [] x)) applied to 5: the inner function must keep
	// resolving x after the outer call returns.
	inner := NewSExpression(NewSymbol("fn"), NewVector(), NewSymbol("x"))
	env := NewEnvironment(Builtins(), "global")

	outer := MakeClosure("outer", []string{"x"}, inner, false)
	got := closureResult(t, outer, env, NewInt(5))
	innerFn, ok := got.(*Function)
	if !ok {
		t.Fatalf("got %T, want *Function", got)
	}
	if innerFn.Bound() == nil {
		t.Fatal("inner function did not capture the call frame")
	}

	result := closureResult(t, innerFn, env)
	if v, _ := result.(*Numeric).IsInt(); v != 5 {
		t.Errorf("captured x = %s, want 5", result)
	}

	// The captured frame is shared, not copied: a mutation through it
	// after closure creation is observed by the next invocation.
	innerFn.Bound().Set("x", NewInt(7))
	result = closureResult(t, innerFn, env)
	if v, _ := result.(*Numeric).IsInt(); v != 7 {
		t.Errorf("captured x after mutation = %s, want 7", result)
	}
}
