package loom

import (
	"strings"
	"testing"
)

// AssertGenerates is a test helper that lowers and generates code for a
// graph with default options and asserts that every wanted substring
// appears in the output.
//
// Basic usage in your test file:
//
//	func TestVariableAssignment(t *testing.T) {
//	    g := loom.NewGraph()
//	    n := loom.NewNode(loom.KindVariable)
//	    n.Parameters["variable_name"] = "x"
//	    n.Parameters["default_value"] = 42
//	    g.AddNode(n)
//	    loom.AssertGenerates(t, g, "x = 42")
//	}
func AssertGenerates(t testing.TB, g *Graph, want ...string) Result {
	t.Helper()

	result := GenerateFromGraph(g, DefaultOptions())
	for _, w := range want {
		if !strings.Contains(result.Code, w) {
			t.Errorf("loom.AssertGenerates: output missing %q\n--- generated code ---\n%s", w, result.Code)
		}
	}
	return result
}

// AssertValid is a test helper that fails the test when the graph has
// validation errors, printing each one.
func AssertValid(t testing.TB, g *Graph) {
	t.Helper()

	errs := g.Validate()
	for _, e := range errs {
		t.Errorf("loom.AssertValid: %v", e)
	}
}

// AssertExecutionOrder is a test helper asserting that the graph's
// execution order is exactly the given node IDs.
func AssertExecutionOrder(t testing.TB, g *Graph, want ...string) {
	t.Helper()

	got := g.ExecutionOrder()
	if len(got) != len(want) {
		t.Fatalf("loom.AssertExecutionOrder: got %d nodes %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("loom.AssertExecutionOrder: position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
