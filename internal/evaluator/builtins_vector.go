package evaluator

func init() {
	makeFunction("merge", mergeFn, false, false)
	makeFunction("slice", sliceFn, false, false)
	makeFunction("at", atFn, false, false)
	makeFunction("remove", removeFn, false, false)
	makeFunction("len", lenFn, false, false)
	makeFunction("cons", consFn, false, false)
	makeFunction("snoc", snocFn, false, false)
	makeFunction("is-map", isMapFn, false, false)
	makeFunction("map-in", mapInFn, false, false)
	makeFunction("map-at", mapAtFn, false, false)
	makeFunction("map-up", mapUpFn, false, false)
}

func vectorArg(name string, env *Environment, arg Amalgam) (*Vector, *Notification) {
	vec, ok := arg.(*Vector)
	if !ok {
		return nil, fatalf(arg, env, "%s: not a vector", name)
	}
	return vec, nil
}

func intArg(name string, env *Environment, arg Amalgam) (int64, *Notification) {
	num, ok := arg.(*Numeric)
	if !ok {
		return 0, fatalf(arg, env, "%s: not a number", name)
	}
	i, ok := num.IsInt()
	if !ok {
		return 0, fatalf(arg, env, "%s: not an integer", name)
	}
	return i, nil
}

// mergeFn concatenates vectors.
func mergeFn(env *Environment, args ...Amalgam) Amalgam {
	var vals []Amalgam
	for _, arg := range args {
		vec, fail := vectorArg("merge", env, arg)
		if fail != nil {
			return fail
		}
		vals = append(vals, vec.Vals...)
	}
	return NewVector(vals...)
}

// sliceFn returns vector[start:stop:step].
func sliceFn(env *Environment, args ...Amalgam) Amalgam {
	if len(args) != 3 && len(args) != 4 {
		return fatalf(NewAtom("slice"), env, "malformed arguments: expected 3 or 4, got %d", len(args))
	}
	vec, fail := vectorArg("slice", env, args[0])
	if fail != nil {
		return fail
	}
	start, fail := intArg("slice", env, args[1])
	if fail != nil {
		return fail
	}
	stop, fail := intArg("slice", env, args[2])
	if fail != nil {
		return fail
	}
	step := int64(1)
	if len(args) == 4 {
		step, fail = intArg("slice", env, args[3])
		if fail != nil {
			return fail
		}
	}
	if step == 0 {
		return fatalf(args[3], env, "slice: zero step")
	}

	length := int64(len(vec.Vals))
	clamp := func(i, low, high int64) int64 {
		if i < 0 {
			i += length
		}
		if i < low {
			i = low
		}
		if i > high {
			i = high
		}
		return i
	}

	var vals []Amalgam
	if step > 0 {
		start, stop = clamp(start, 0, length), clamp(stop, 0, length)
		for i := start; i < stop; i += step {
			vals = append(vals, vec.Vals[i])
		}
	} else {
		// A downward walk ends one past the stop index, so both bounds
		// clamp to [-1, length-1] rather than [0, length].
		start, stop = clamp(start, -1, length-1), clamp(stop, -1, length-1)
		for i := start; i > stop; i += step {
			vals = append(vals, vec.Vals[i])
		}
	}
	return NewVector(vals...)
}

// atFn indexes a vector.
func atFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("at"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	index, fail := intArg("at", env, args[0])
	if fail != nil {
		return fail
	}
	vec, fail := vectorArg("at", env, args[1])
	if fail != nil {
		return fail
	}
	// Negative indices count back from the end.
	if index < 0 {
		index += int64(len(vec.Vals))
	}
	if index < 0 || index >= int64(len(vec.Vals)) {
		return fatalf(args[0], env, "at: index out of bounds")
	}
	return vec.Vals[index]
}

// removeFn drops the element at an index, returning a new vector.
func removeFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("remove"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	index, fail := intArg("remove", env, args[0])
	if fail != nil {
		return fail
	}
	vec, fail := vectorArg("remove", env, args[1])
	if fail != nil {
		return fail
	}
	if index < 0 {
		index += int64(len(vec.Vals))
	}
	if index < 0 || index >= int64(len(vec.Vals)) {
		return fatalf(args[0], env, "remove: index out of bounds")
	}
	vals := make([]Amalgam, 0, len(vec.Vals)-1)
	vals = append(vals, vec.Vals[:index]...)
	vals = append(vals, vec.Vals[index+1:]...)
	return NewVector(vals...)
}

func lenFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("len"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	vec, fail := vectorArg("len", env, args[0])
	if fail != nil {
		return fail
	}
	return NewInt(int64(len(vec.Vals)))
}

// consFn prepends an element.
func consFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("cons"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	vec, fail := vectorArg("cons", env, args[1])
	if fail != nil {
		return fail
	}
	vals := make([]Amalgam, 0, len(vec.Vals)+1)
	vals = append(vals, args[0])
	vals = append(vals, vec.Vals...)
	return NewVector(vals...)
}

// snocFn appends an element.
func snocFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("snoc"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	vec, fail := vectorArg("snoc", env, args[0])
	if fail != nil {
		return fail
	}
	vals := make([]Amalgam, 0, len(vec.Vals)+1)
	vals = append(vals, vec.Vals...)
	vals = append(vals, args[1])
	return NewVector(vals...)
}

func isMapFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 1) {
		return fatalf(NewAtom("is-map"), env, "malformed arguments: expected 1, got %d", len(args))
	}
	vec, fail := vectorArg("is-map", env, args[0])
	if fail != nil {
		return fail
	}
	return truthAtom(len(vec.Mapping()) > 0)
}

func mappingArgs(name string, env *Environment, args []Amalgam) (*Vector, *Atom, *Notification) {
	vec, fail := vectorArg(name, env, args[0])
	if fail != nil {
		return nil, nil, fail
	}
	if len(vec.Mapping()) == 0 {
		return nil, nil, fatalf(args[0], env, "%s: the given vector is not a mapping", name)
	}
	key, ok := args[1].(*Atom)
	if !ok {
		return nil, nil, fatalf(args[1], env, "%s: not an atom", name)
	}
	return vec, key, nil
}

// mapInFn checks key membership in a mapping vector.
func mapInFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("map-in"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	vec, key, fail := mappingArgs("map-in", env, args)
	if fail != nil {
		return fail
	}
	_, ok := vec.Mapping()[key.Value]
	return truthAtom(ok)
}

// mapAtFn returns the value bound to a key in a mapping vector.
func mapAtFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 2) {
		return fatalf(NewAtom("map-at"), env, "malformed arguments: expected 2, got %d", len(args))
	}
	vec, key, fail := mappingArgs("map-at", env, args)
	if fail != nil {
		return fail
	}
	value, ok := vec.Mapping()[key.Value]
	if !ok {
		return fatalf(args[1], env, "map-at: key not found")
	}
	return value
}

// mapUpFn returns a new mapping vector with one key set or replaced,
// preserving the positional order of existing keys.
func mapUpFn(env *Environment, args ...Amalgam) Amalgam {
	if !arity(args, 3) {
		return fatalf(NewAtom("map-up"), env, "malformed arguments: expected 3, got %d", len(args))
	}
	vec, key, fail := mappingArgs("map-up", env, args[:2])
	if fail != nil {
		return fail
	}

	vals := make([]Amalgam, len(vec.Vals))
	copy(vals, vec.Vals)
	replaced := false
	for i := 0; i < len(vals); i += 2 {
		if atom, ok := vals[i].(*Atom); ok && atom.Value == key.Value {
			vals[i+1] = args[2]
			replaced = true
			break
		}
	}
	if !replaced {
		vals = append(vals, key, args[2])
	}
	return NewVector(vals...)
}
