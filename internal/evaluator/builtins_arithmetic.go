package evaluator

func init() {
	makeFunction("+", addFn, false, false)
	makeFunction("-", subFn, false, false)
	makeFunction("*", mulFn, false, false)
	makeFunction("/", divFn, false, false)
}

// numericArgs asserts every argument is a Numeric.
func numericArgs(name string, env *Environment, args []Amalgam) ([]*Numeric, *Notification) {
	nums := make([]*Numeric, len(args))
	for i, arg := range args {
		num, ok := arg.(*Numeric)
		if !ok {
			return nil, fatalf(arg, env, "%s: not a number", name)
		}
		nums[i] = num
	}
	return nums, nil
}

func addFn(env *Environment, args ...Amalgam) Amalgam {
	nums, fail := numericArgs("+", env, args)
	if fail != nil {
		return fail
	}
	acc := NewInt(0)
	for _, num := range nums {
		acc = addNumeric(acc, num)
	}
	return acc
}

// subFn subtracts the sum of the remaining arguments from the first.
func subFn(env *Environment, args ...Amalgam) Amalgam {
	nums, fail := numericArgs("-", env, args)
	if fail != nil {
		return fail
	}
	if len(nums) == 0 {
		return fatalf(NewAtom("-"), env, "malformed arguments: expected at least 1, got 0")
	}
	acc := nums[0]
	for _, num := range nums[1:] {
		acc = subNumeric(acc, num)
	}
	return acc
}

func mulFn(env *Environment, args ...Amalgam) Amalgam {
	nums, fail := numericArgs("*", env, args)
	if fail != nil {
		return fail
	}
	acc := NewInt(1)
	for _, num := range nums {
		acc = mulNumeric(acc, num)
	}
	return acc
}

// divFn divides the first argument by the product of the rest.
func divFn(env *Environment, args ...Amalgam) Amalgam {
	nums, fail := numericArgs("/", env, args)
	if fail != nil {
		return fail
	}
	if len(nums) == 0 {
		return fatalf(NewAtom("/"), env, "malformed arguments: expected at least 1, got 0")
	}
	acc := nums[0]
	for _, num := range nums[1:] {
		if num.isZero() {
			return fatalf(num, env, "division by zero")
		}
		acc = divNumeric(acc, num)
	}
	return acc
}
