package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSubtypeOf_Reflexive(t *testing.T) {
	for _, d := range []TypeDescriptor{TypeObject, TypeInt, TypeStr, TypeBool, TypeNone} {
		assert.True(t, d.IsSubtypeOf(d), "%s should be a subtype of itself", d)
	}
}

func TestIsSubtypeOf_EverythingBelowObject(t *testing.T) {
	for _, d := range []TypeDescriptor{TypeInt, TypeFloat, TypeStr, TypeBool, TypeList, TypeDict, TypeTuple, TypeSet, TypeCallable, TypeNone} {
		assert.True(t, d.IsSubtypeOf(TypeObject), "%s should be a subtype of object", d)
	}
	// Unknown user-defined tags are still below object.
	assert.True(t, TypeDescriptor("MyClass").IsSubtypeOf(TypeObject))
}

func TestIsSubtypeOf_BoolBelowInt(t *testing.T) {
	assert.True(t, TypeBool.IsSubtypeOf(TypeInt))
	assert.False(t, TypeInt.IsSubtypeOf(TypeBool))
}

func TestIsSubtypeOf_Siblings(t *testing.T) {
	assert.False(t, TypeInt.IsSubtypeOf(TypeStr))
	assert.False(t, TypeStr.IsSubtypeOf(TypeInt))
	assert.False(t, TypeFloat.IsSubtypeOf(TypeInt))
}

func TestCompatible_Symmetric(t *testing.T) {
	// The check accepts either direction, so a wide output feeding a
	// narrow input passes.
	assert.True(t, Compatible(TypeObject, TypeInt))
	assert.True(t, Compatible(TypeInt, TypeObject))
	assert.True(t, Compatible(TypeBool, TypeInt))
	assert.True(t, Compatible(TypeInt, TypeBool))
}

func TestCompatible_Unrelated(t *testing.T) {
	assert.False(t, Compatible(TypeInt, TypeStr))
	assert.False(t, Compatible(TypeStr, TypeInt))
	assert.False(t, Compatible(TypeList, TypeDict))
}
