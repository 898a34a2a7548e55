package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecoratorMapper_SimpleName(t *testing.T) {
	n := NewNode(KindDecorator)
	n.Parameters["decorator_name"] = "staticmethod"
	assert.Equal(t, "staticmethod", renderNode(t, n, nil))
}

func TestDecoratorMapper_DottedName(t *testing.T) {
	n := NewNode(KindDecorator)
	n.Parameters["decorator_name"] = "property.setter"
	assert.Equal(t, "property.setter", renderNode(t, n, nil))
}

func TestAsyncMapper_Await(t *testing.T) {
	n := NewNode(KindAsync)
	assert.Equal(t, "await async_function()", renderNode(t, n, nil))

	ctx := NewConnectionContext()
	ctx.Bind(n.ID, "awaitable", &Name{ID: "pending_task"})
	assert.Equal(t, "await pending_task", renderNode(t, n, ctx))
}

func TestAsyncMapper_AsyncFunction(t *testing.T) {
	n := NewNode(KindAsync)
	n.Parameters["async_type"] = "async_function"
	n.Parameters["function_name"] = "fetch"
	assert.Equal(t, "async def fetch():\n    pass", renderNode(t, n, nil))
}

func TestAsyncMapper_AsyncFor(t *testing.T) {
	n := NewNode(KindAsync)
	n.Parameters["async_type"] = "async_for"
	assert.Equal(t, "async for item in async_iterable:\n    pass", renderNode(t, n, nil))
}

func TestAsyncMapper_AsyncWith(t *testing.T) {
	n := NewNode(KindAsync)
	n.Parameters["async_type"] = "async_with"
	assert.Equal(t, "async with async_context_manager as ctx:\n    pass", renderNode(t, n, nil))
}

func TestGeneratorMapper_Yield(t *testing.T) {
	n := NewNode(KindGenerator)
	assert.Equal(t, "yield None", renderNode(t, n, nil))

	ctx := NewConnectionContext()
	ctx.Bind(n.ID, "value", &Name{ID: "item"})
	assert.Equal(t, "yield item", renderNode(t, n, ctx))
}

func TestGeneratorMapper_YieldFrom(t *testing.T) {
	n := NewNode(KindGenerator)
	n.Parameters["generator_type"] = "yield_from"
	assert.Equal(t, "yield from iterable", renderNode(t, n, nil))
}

func TestGeneratorMapper_GeneratorFunction(t *testing.T) {
	n := NewNode(KindGenerator)
	n.Parameters["generator_type"] = "generator_function"
	n.Parameters["function_name"] = "counter"
	assert.Equal(t, "def counter():\n    yield 1", renderNode(t, n, nil))
}

func TestGeneratorMapper_ListComprehension(t *testing.T) {
	n := NewNode(KindGenerator)
	n.Parameters["generator_type"] = "list_comprehension"
	assert.Equal(t, "[x for x in iterable]", renderNode(t, n, nil))

	ctx := NewConnectionContext()
	ctx.Bind(n.ID, "iterable", &Name{ID: "values"})
	assert.Equal(t, "[x for x in values]", renderNode(t, n, ctx))
}

func TestGeneratorMapper_IteratorProtocol(t *testing.T) {
	n := NewNode(KindGenerator)
	n.Parameters["generator_type"] = "iterator_protocol"
	n.Parameters["class_name"] = "Walker"

	want := "class Walker:\n" +
		"    def __iter__(self):\n" +
		"        return self\n" +
		"    def __next__(self):\n" +
		"        raise StopIteration()"
	assert.Equal(t, want, renderNode(t, n, nil))
}
