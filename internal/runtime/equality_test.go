package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual_Primitives(t *testing.T) {
	assert.True(t, Equal(Null{}, Null{}))
	assert.True(t, Equal(Number(1), Number(1)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.True(t, Equal(Bool(true), Bool(true)))
}

func TestEqual_DifferentVariantsAreNeverEqual(t *testing.T) {
	assert.False(t, Equal(Number(1), String("1")))
	assert.False(t, Equal(Null{}, Bool(false)))
}

func TestEqual_ArraysUseReferenceIdentity(t *testing.T) {
	a := &Array{Elements: []Value{Number(1)}}
	b := &Array{Elements: []Value{Number(1)}}
	assert.False(t, Equal(a, b), "distinct arrays with equal contents are not ==")
	assert.True(t, Equal(a, a))
}

func TestEqual_RecordsUseReferenceIdentity(t *testing.T) {
	a := NewRecord()
	b := NewRecord()
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a))
}

func TestEqual_CallablesUseReferenceIdentity(t *testing.T) {
	a := &UserFunction{Name: "f"}
	b := &UserFunction{Name: "f"}
	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, a))

	h := &HostFunction{Name: "g"}
	assert.False(t, Equal(a, h))
	assert.True(t, Equal(h, h))
}
