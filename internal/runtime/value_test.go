package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayCopy_IsShallowAndIndependentSlice(t *testing.T) {
	inner := &Array{Elements: []Value{Number(1)}}
	original := &Array{Elements: []Value{Number(1), inner}}

	dup := original.Copy()
	dup.Elements[0] = Number(99)

	assert.Equal(t, Number(1), original.Elements[0], "copy must not alias the backing slice")
	assert.Same(t, inner, dup.Elements[1], "element values themselves are shared (shallow copy)")
}

func TestRecordSetGet_PreservesInsertionOrderInKeys(t *testing.T) {
	r := NewRecord()
	r.Set("b", Number(2))
	r.Set("a", Number(1))
	r.Set("b", Number(20)) // overwrite, should not duplicate in Keys

	assert.Equal(t, []string{"b", "a"}, r.Keys)
	val, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, Number(20), val)
}

func TestRecordGet_MissingKey(t *testing.T) {
	r := NewRecord()
	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestValueTypeNames(t *testing.T) {
	assert.Equal(t, "null", Null{}.TypeName())
	assert.Equal(t, "bool", Bool(true).TypeName())
	assert.Equal(t, "number", Number(1).TypeName())
	assert.Equal(t, "string", String("s").TypeName())
	assert.Equal(t, "array", (&Array{}).TypeName())
	assert.Equal(t, "record", NewRecord().TypeName())
	assert.Equal(t, "function", (&UserFunction{}).TypeName())
	assert.Equal(t, "function", (&HostFunction{}).TypeName())
}
