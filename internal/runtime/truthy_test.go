package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null{}, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"nonzero", Number(-1), true},
		{"nan", Number(math.NaN()), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty array", &Array{}, false},
		{"nonempty array", &Array{Elements: []Value{Number(1)}}, true},
		{"record always truthy", NewRecord(), true},
		{"callable always truthy", &UserFunction{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truthy(tc.v))
		})
	}
}
