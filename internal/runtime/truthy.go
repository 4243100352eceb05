package runtime

// Truthy implements the coercion to boolean used by `!`, `if`, `while`,
// `&&`, and `||`. NaN compares unequal to zero in IEEE-754, so it comes
// out truthy here without special-casing.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(val)
	case Number:
		return float64(val) != 0
	case String:
		return len(val) > 0
	case *Array:
		return len(val.Elements) > 0
	default:
		// Record and Callable are always truthy.
		return true
	}
}
