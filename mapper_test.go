package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapperRegistry_Defaults(t *testing.T) {
	r := NewMapperRegistry()
	for _, kind := range []NodeKind{
		KindFunction, KindVariable, KindControlFlow, KindClass,
		KindDecorator, KindAsync, KindGenerator, KindMetaclass,
	} {
		_, ok := r.Mapper(kind)
		assert.True(t, ok, "default mapper missing for %s", kind)
	}

	_, ok := r.Mapper(KindComment)
	assert.False(t, ok, "comment nodes have no default mapper")
}

type stubMapper struct{ out AstNode }

func (s stubMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	return s.out, nil
}

func TestRegister_ReplacesExisting(t *testing.T) {
	r := NewMapperRegistry()
	stub := stubMapper{out: &Pass{}}
	r.Register(KindFunction, stub)

	m, ok := r.Mapper(KindFunction)
	require.True(t, ok)
	assert.Equal(t, stub, m)
}

func TestRegister_NilPanics(t *testing.T) {
	r := NewMapperRegistry()
	assert.Panics(t, func() { r.Register(KindFunction, nil) })
}

func TestMappers_ReturnsCopy(t *testing.T) {
	r := NewMapperRegistry()
	cp := r.Mappers()
	delete(cp, KindFunction)

	_, ok := r.Mapper(KindFunction)
	assert.True(t, ok)
}

func TestValueToExpr(t *testing.T) {
	assert.Equal(t, &Constant{Value: "s"}, valueToExpr("s"))
	assert.Equal(t, &Constant{Value: 42}, valueToExpr(42))
	assert.Equal(t, &Constant{Value: true}, valueToExpr(true))
	assert.Equal(t, &Constant{Value: 3.5}, valueToExpr(3.5))
	assert.Equal(t, &Constant{Value: nil}, valueToExpr(nil))
	// Unrecognized values degrade to a name reference.
	assert.Equal(t, &Name{ID: "[1 2]"}, valueToExpr([]int{1, 2}))
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringSlice([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, stringSlice([]any{"a", "b"}))
	assert.Equal(t, []string{"a"}, stringSlice([]any{"a", 1}), "non-strings are skipped")
	assert.Nil(t, stringSlice("not a slice"))
	assert.Nil(t, stringSlice(nil))
}
