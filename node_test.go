package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode_AssignsID(t *testing.T) {
	a := NewNode(KindFunction)
	b := NewNode(KindFunction)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Parameters)
	assert.NotNil(t, a.Metadata)
}

func TestNodeValidate_RequiredParameters(t *testing.T) {
	tests := []struct {
		kind  NodeKind
		param string
	}{
		{KindFunction, "function_name"},
		{KindVariable, "variable_name"},
		{KindClass, "class_name"},
		{KindControlFlow, "control_type"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			n := NewNode(tt.kind)
			errs := n.Validate()
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Message, tt.param)
			assert.Equal(t, n.ID, errs[0].NodeID)

			n.Parameters[tt.param] = "x"
			assert.Empty(t, n.Validate())
		})
	}
}

func TestNodeValidate_NoRequirementsForOtherKinds(t *testing.T) {
	for _, kind := range []NodeKind{KindDecorator, KindAsync, KindGenerator, KindMetaclass, KindComment, KindImport} {
		assert.Empty(t, NewNode(kind).Validate(), "kind %s", kind)
	}
}

func TestNodeValidate_DuplicatePorts(t *testing.T) {
	n := NewNode(KindCustom)
	n.Inputs = []InputPort{{Name: "a"}, {Name: "a"}, {Name: "a"}}
	errs := n.Validate()
	// One error per duplicated set, not per duplicate.
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "duplicate input port")

	n.Outputs = []OutputPort{{Name: "out"}, {Name: "out"}}
	errs = n.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[1].Message, "duplicate output port")
}

func TestNode_PortLookup(t *testing.T) {
	n := NewNode(KindFunction)
	n.Inputs = []InputPort{{Name: "x", Type: TypeInt}}
	n.Outputs = []OutputPort{{Name: "result", Type: TypeStr}}

	in, ok := n.InputPort("x")
	require.True(t, ok)
	assert.Equal(t, TypeInt, in.Type)

	_, ok = n.InputPort("missing")
	assert.False(t, ok)

	out, ok := n.OutputPort("result")
	require.True(t, ok)
	assert.Equal(t, TypeStr, out.Type)
}

func TestStringParam(t *testing.T) {
	n := NewNode(KindFunction)
	n.Parameters["function_name"] = "print"
	n.Parameters["count"] = 3

	assert.Equal(t, "print", n.StringParam("function_name", "fallback"))
	assert.Equal(t, "fallback", n.StringParam("missing", "fallback"))
	// Non-string values fall back too.
	assert.Equal(t, "fallback", n.StringParam("count", "fallback"))
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "whole-graph problem", ValidationError{Message: "whole-graph problem"}.Error())
	assert.Equal(t, "node n1: bad", ValidationError{NodeID: "n1", Message: "bad"}.Error())
}
