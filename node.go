package loom

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeKind selects which lowering strategy applies to a node.
type NodeKind string

// Node kinds understood by the default mapper registry. Kinds beyond the
// mapped set (Import, Comment, ...) are carried in the data model and fall
// through to the unregistered-kind placeholder during lowering.
const (
	KindFunction       NodeKind = "function"
	KindVariable       NodeKind = "variable"
	KindControlFlow    NodeKind = "control_flow"
	KindClass          NodeKind = "class"
	KindDecorator      NodeKind = "decorator"
	KindAsync          NodeKind = "async"
	KindGenerator      NodeKind = "generator"
	KindMetaclass      NodeKind = "metaclass"
	KindContextManager NodeKind = "context_manager"
	KindCustom         NodeKind = "custom"
	KindImport         NodeKind = "import"
	KindComment        NodeKind = "comment"
	KindExpression     NodeKind = "expression"
	KindStatement      NodeKind = "statement"
	KindModule         NodeKind = "module"
)

// ValidationError describes a structural problem with a node or graph.
// Problems accumulate; they never abort validation or block lowering.
type ValidationError struct {
	// NodeID is the offending node, or empty for whole-graph problems.
	NodeID  string
	Message string
}

func (e ValidationError) Error() string {
	if e.NodeID == "" {
		return e.Message
	}
	return fmt.Sprintf("node %s: %s", e.NodeID, e.Message)
}

// Node is a single visual programming node.
type Node struct {
	// ID uniquely identifies the node within a graph.
	ID string
	// Kind selects the lowering strategy.
	Kind NodeKind
	// Name is the display name shown by the editor.
	Name string
	// Position is canvas layout state. It has no effect on compilation and
	// is excluded from every equality and compatibility decision.
	Position [2]float64
	// Inputs and Outputs are ordered port lists.
	Inputs  []InputPort
	Outputs []OutputPort
	// Parameters holds kind-specific configuration, e.g. function_name.
	Parameters map[string]any
	// Metadata holds editor-owned annotations.
	Metadata map[string]any
	// Comments are visual annotations re-attached during generation.
	Comments []string
	// Docstring, when non-empty, overrides any synthesized docstring.
	Docstring string
}

// NewNode creates a node of the given kind with a fresh ID.
func NewNode(kind NodeKind) *Node {
	return &Node{
		ID:         uuid.NewString(),
		Kind:       kind,
		Parameters: make(map[string]any),
		Metadata:   make(map[string]any),
	}
}

// requiredParameters lists the parameters a kind's mapper cannot proceed
// without. Kinds not listed validate with no parameter requirements.
var requiredParameters = map[NodeKind][]string{
	KindFunction:    {"function_name"},
	KindVariable:    {"variable_name"},
	KindClass:       {"class_name"},
	KindControlFlow: {"control_type"},
}

// Validate checks the node configuration and returns any problems found.
func (n *Node) Validate() []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(n.Inputs))
	for _, p := range n.Inputs {
		if seen[p.Name] {
			errs = append(errs, ValidationError{NodeID: n.ID, Message: "duplicate input port names found"})
			break
		}
		seen[p.Name] = true
	}

	seen = make(map[string]bool, len(n.Outputs))
	for _, p := range n.Outputs {
		if seen[p.Name] {
			errs = append(errs, ValidationError{NodeID: n.ID, Message: "duplicate output port names found"})
			break
		}
		seen[p.Name] = true
	}

	for _, param := range requiredParameters[n.Kind] {
		if _, ok := n.Parameters[param]; !ok {
			errs = append(errs, ValidationError{
				NodeID:  n.ID,
				Message: fmt.Sprintf("%s nodes must have %q parameter", n.Kind, param),
			})
		}
	}

	return errs
}

// InputPort returns the named input port, if present.
func (n *Node) InputPort(name string) (InputPort, bool) {
	for _, p := range n.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return InputPort{}, false
}

// OutputPort returns the named output port, if present.
func (n *Node) OutputPort(name string) (OutputPort, bool) {
	for _, p := range n.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return OutputPort{}, false
}

// StringParam returns a string-typed parameter, or fallback when the
// parameter is missing or not a string.
func (n *Node) StringParam(key, fallback string) string {
	if v, ok := n.Parameters[key].(string); ok {
		return v
	}
	return fallback
}

// shortID returns the first eight characters of an ID, used when
// synthesizing identifiers from node identity.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
