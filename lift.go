package loom

// Lifter reconstructs a graph from an AST module. The mapping is
// intentionally partial: only top-level simple assignments, bare call
// statements, and If/For/While statements are recognized; everything else
// is dropped silently. Positions are synthesized for layout only.
type Lifter struct{}

// NewLifter creates a lifter.
func NewLifter() *Lifter { return &Lifter{} }

// Lift builds a graph from the module's top-level statements. There is no
// recursive descent into nested bodies, and no connections are
// reconstructed.
func (l *Lifter) Lift(m *Module) *Graph {
	g := NewGraph()
	for i, stmt := range m.Body {
		if node := l.liftStatement(stmt, i); node != nil {
			g.AddNode(node)
		}
	}
	return g
}

func (l *Lifter) liftStatement(stmt Stmt, index int) *Node {
	switch s := stmt.(type) {
	case *Assign:
		if len(s.Targets) != 1 {
			return nil
		}
		name, ok := s.Targets[0].(*Name)
		if !ok {
			return nil
		}
		node := NewNode(KindVariable)
		node.Position = [2]float64{100, 50 * float64(index)}
		node.Parameters["variable_name"] = name.ID
		return node

	case *ExprStmt:
		call, ok := s.Value.(*Call)
		if !ok {
			return nil
		}
		fn, ok := call.Func.(*Name)
		if !ok {
			return nil
		}
		node := NewNode(KindFunction)
		node.Position = [2]float64{200, 50 * float64(index)}
		node.Parameters["function_name"] = fn.ID
		return node

	case *If:
		return controlFlowNode("if", index)

	case *For:
		if s.Async {
			return nil
		}
		return controlFlowNode("for", index)

	case *While:
		return controlFlowNode("while", index)

	default:
		return nil
	}
}

func controlFlowNode(controlType string, index int) *Node {
	node := NewNode(KindControlFlow)
	node.Position = [2]float64{300, 50 * float64(index)}
	node.Parameters["control_type"] = controlType
	return node
}

// ValidateRoundTrip lowers the graph, lifts the result, and compares node
// counts only. This is a weak, non-semantic check: kinds, parameters, and
// connections may be lost during lifting and it will still report success.
func (l *Lifter) ValidateRoundTrip(g *Graph) bool {
	module := NewLowerer().Lower(g)
	return g.Len() == l.Lift(module).Len()
}
