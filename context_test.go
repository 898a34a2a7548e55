package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionContext_BindLookup(t *testing.T) {
	ctx := NewConnectionContext()
	assert.Equal(t, 0, ctx.Len())

	ctx.Bind("n1", "value", &Name{ID: "x"})
	e, ok := ctx.Lookup("n1", "value")
	require.True(t, ok)
	assert.Equal(t, &Name{ID: "x"}, e)

	_, ok = ctx.Lookup("n1", "other")
	assert.False(t, ok)
	_, ok = ctx.Lookup("n2", "value")
	assert.False(t, ok)
}

func TestConnectionContext_Snapshot(t *testing.T) {
	ctx := NewConnectionContext()
	ctx.Bind("n1", "value", &Name{ID: "x"})

	snap := ctx.Snapshot()
	require.Len(t, snap, 1)
	assert.Contains(t, snap, "n1.value")

	// The snapshot is detached.
	delete(snap, "n1.value")
	assert.Equal(t, 1, ctx.Len())
}

func TestBuildConnectionContext_VariableSourceUsesName(t *testing.T) {
	g := NewGraph()
	v := sourceNode(KindVariable, TypeInt)
	v.Parameters["variable_name"] = "counter"
	f := sinkNode(KindFunction, TypeInt)
	g.AddNode(v)
	g.AddNode(f)
	require.NotNil(t, g.Connect(v.ID, "out", f.ID, "in"))

	ctx := buildConnectionContext(g)
	e, ok := ctx.Lookup(f.ID, "in")
	require.True(t, ok)
	assert.Equal(t, &Name{ID: "counter"}, e)
}

func TestBuildConnectionContext_NonVariableSourceGetsPlaceholder(t *testing.T) {
	g := NewGraph()
	fn := sourceNode(KindFunction, TypeInt)
	fn.Parameters["function_name"] = "compute"
	sink := sinkNode(KindFunction, TypeInt)
	g.AddNode(fn)
	g.AddNode(sink)
	require.NotNil(t, g.Connect(fn.ID, "out", sink.ID, "in"))

	ctx := buildConnectionContext(g)
	e, ok := ctx.Lookup(sink.ID, "in")
	require.True(t, ok)

	name, isName := e.(*Name)
	require.True(t, isName)
	assert.Equal(t, "output_"+fn.ID[:8], name.ID)
}

func TestBuildConnectionContext_SkipsRemovedSources(t *testing.T) {
	g := NewGraph()
	sink := NewNode(KindFunction)
	g.AddNode(sink)
	g.connections = append(g.connections, &Connection{
		ID: "c1", SourceNodeID: "gone", TargetNodeID: sink.ID, TargetPort: "in",
	})

	ctx := buildConnectionContext(g)
	assert.Equal(t, 0, ctx.Len())
}
