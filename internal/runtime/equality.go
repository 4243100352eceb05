package runtime

// Equal implements `==` (and its negation for `!=`): structural
// equality for primitives, reference identity for arrays, records, and
// callables. Values of different variants are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Array:
		bv, ok := b.(*Array)
		return ok && av == bv
	case *Record:
		bv, ok := b.(*Record)
		return ok && av == bv
	case Callable:
		bv, ok := b.(Callable)
		return ok && sameCallable(av, bv)
	default:
		return false
	}
}

func sameCallable(a, b Callable) bool {
	switch af := a.(type) {
	case *UserFunction:
		bf, ok := b.(*UserFunction)
		return ok && af == bf
	case *HostFunction:
		bf, ok := b.(*HostFunction)
		return ok && af == bf
	default:
		return false
	}
}
