package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFromGraph_FullPipeline(t *testing.T) {
	g := NewGraph()

	data := NewNode(KindVariable)
	data.Parameters["variable_name"] = "items"
	data.Parameters["default_value"] = 0
	data.Outputs = []OutputPort{{Name: "out", Type: TypeInt}}
	g.AddNode(data)

	loop := NewNode(KindControlFlow)
	loop.Parameters["control_type"] = "for"
	loop.Inputs = []InputPort{{Name: "iterable", Type: TypeInt}}
	g.AddNode(loop)

	assert.NotNil(t, g.Connect(data.ID, "out", loop.ID, "iterable"))

	AssertValid(t, g)
	result := AssertGenerates(t, g,
		"items = 0",
		"for i in items:",
	)
	assert.True(t, result.IsValid)
}

func TestGenerateFromModule_SkipsGraphPasses(t *testing.T) {
	m := &Module{Body: []Stmt{
		&Assign{Targets: []Expr{&Name{ID: "x"}}, Value: &Constant{Value: 1}},
	}}

	result := GenerateFromModule(m, DefaultOptions())
	assert.Equal(t, "x = 1", result.Code)
	assert.True(t, result.IsValid)
}

func TestGenerateFromGraph_InvalidGraphStillProducesOutput(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewNode(KindFunction)) // missing function_name

	assert.NotEmpty(t, g.Validate())

	result := GenerateFromGraph(g, DefaultOptions())
	assert.Equal(t, "unknown_function()", result.Code)
}
