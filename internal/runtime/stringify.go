package runtime

import (
	"strconv"
	"strings"
)

// Stringify renders a value per the rules used both for `+` coercion
// and for console_put: no quoting for strings, shortest round-tripping
// decimal for numbers, and a no-space canonical form for arrays and
// records.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Null:
		return "null"
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case String:
		return string(val)
	case *Array:
		parts := make([]string, len(val.Elements))
		for i, elem := range val.Elements {
			parts[i] = Stringify(elem)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *Record:
		parts := make([]string, len(val.Keys))
		for i, key := range val.Keys {
			parts[i] = key + ":" + Stringify(val.Fields[key])
		}
		return "{" + strings.Join(parts, ",") + "}"
	case Callable:
		if named, ok := callableName(val); ok && named != "" {
			return "<function:" + named + ">"
		}
		return "<function>"
	default:
		return "<unknown>"
	}
}

func callableName(c Callable) (string, bool) {
	switch fn := c.(type) {
	case *UserFunction:
		return fn.Name, true
	case *HostFunction:
		return fn.Name, true
	default:
		return "", false
	}
}
