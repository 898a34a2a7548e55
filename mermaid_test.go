package loom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintMermaid_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintMermaid(&buf, NewGraph()))
	assert.Equal(t, "graph TD\n", buf.String())
}

func TestPrintMermaid_NodesAndEdges(t *testing.T) {
	g := NewGraph()
	v := sourceNode(KindVariable, TypeInt)
	v.Name = "Counter"
	f := sinkNode(KindFunction, TypeInt)
	g.AddNode(v)
	g.AddNode(f)
	require.NotNil(t, g.Connect(v.ID, "out", f.ID, "in"))

	var buf bytes.Buffer
	require.NoError(t, PrintMermaid(&buf, g))
	out := buf.String()

	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, shortID(v.ID)+`["Counter"]`)
	assert.Contains(t, out, shortID(f.ID)+`["function"]`, "unnamed nodes fall back to their kind")
	assert.Contains(t, out, shortID(v.ID)+" -->|out| "+shortID(f.ID))
	assert.Contains(t, out, "style "+shortID(v.ID)+" fill:#e1f5fe")
	assert.NotContains(t, out, "style "+shortID(f.ID))
}

func TestPrintMermaid_EscapesQuotesInLabels(t *testing.T) {
	g := NewGraph()
	n := NewNode(KindVariable)
	n.Name = `say "hi"`
	g.AddNode(n)

	var buf bytes.Buffer
	require.NoError(t, PrintMermaid(&buf, g))
	assert.Contains(t, buf.String(), `["say 'hi'"]`)
}

func TestPrintGraph_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintGraph(&buf, NewGraph()))
	assert.Equal(t, "(empty graph)\n", buf.String())
}

func TestPrintGraph_ListsNodesInExecutionOrder(t *testing.T) {
	g := NewGraph()
	sink := sinkNode(KindFunction, TypeInt)
	source := sourceNode(KindVariable, TypeInt)
	g.AddNode(sink)
	g.AddNode(source)
	require.NotNil(t, g.Connect(source.ID, "out", sink.ID, "in"))

	var buf bytes.Buffer
	require.NoError(t, PrintGraph(&buf, g))
	out := buf.String()

	sourceLine := strings.Index(out, shortID(source.ID)+" (variable)")
	sinkLine := strings.Index(out, shortID(sink.ID)+" (function)")
	require.GreaterOrEqual(t, sourceLine, 0)
	require.GreaterOrEqual(t, sinkLine, 0)
	assert.Less(t, sourceLine, sinkLine)

	assert.Contains(t, out, shortID(source.ID)+".out -> "+shortID(sink.ID)+".in (int)")
}
