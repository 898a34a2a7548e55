package loom

// functionMapper lowers a Function node to a call expression. Positional
// arguments come from a reserved "args" input when bound; every other
// input contributes a keyword argument, from the context binding when
// present, otherwise from the port default.
type functionMapper struct{}

func (functionMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	name := n.StringParam("function_name", "unknown_function")

	call := &Call{Func: &Name{ID: name}}
	for _, port := range n.Inputs {
		if bound, ok := ctx.Lookup(n.ID, port.Name); ok {
			if port.Name == "args" {
				call.Args = append(call.Args, bound)
			} else {
				call.Keywords = append(call.Keywords, Keyword{Arg: port.Name, Value: bound})
			}
			continue
		}
		if port.Default != nil {
			call.Keywords = append(call.Keywords, Keyword{Arg: port.Name, Value: valueToExpr(port.Default)})
		}
	}

	return call, nil
}

// variableMapper lowers a Variable node to an assignment of the bound
// value, or of the default_value parameter when nothing is connected.
type variableMapper struct{}

func (variableMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	name := n.StringParam("variable_name", "var_"+shortID(n.ID))

	value, ok := ctx.Lookup(n.ID, "value")
	if !ok {
		def, present := n.Parameters["default_value"]
		if !present {
			def = 0
		}
		value = valueToExpr(def)
	}

	return &Assign{
		Targets: []Expr{&Name{ID: name}},
		Value:   value,
	}, nil
}

// controlFlowMapper lowers a ControlFlow node to an If/For/While/Try/With
// skeleton. Conditions and iterables come from bound inputs when present;
// bodies are single no-op placeholders, since body composition belongs to
// a higher layer.
type controlFlowMapper struct{}

func (controlFlowMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	switch n.StringParam("control_type", "if") {
	case "if":
		test, ok := ctx.Lookup(n.ID, "condition")
		if !ok {
			test = &Constant{Value: true}
		}
		return &If{Test: test, Body: []Stmt{&Pass{}}}, nil

	case "for":
		iter, ok := ctx.Lookup(n.ID, "iterable")
		if !ok {
			iter = &Call{Func: &Name{ID: "range"}, Args: []Expr{&Constant{Value: 10}}}
		}
		return &For{Target: "i", Iter: iter, Body: []Stmt{&Pass{}}}, nil

	case "while":
		test, ok := ctx.Lookup(n.ID, "condition")
		if !ok {
			test = &Constant{Value: true}
		}
		return &While{Test: test, Body: []Stmt{&Pass{}}}, nil

	case "try":
		handler := ExceptHandler{
			Type: n.StringParam("exception_type", "Exception"),
			Name: "e",
			Body: []Stmt{&Pass{}},
		}
		return &Try{Body: []Stmt{&Pass{}}, Handlers: []ExceptHandler{handler}}, nil

	case "with":
		item, ok := ctx.Lookup(n.ID, "context_manager")
		if !ok {
			item = &Call{Func: &Name{ID: "open"}, Args: []Expr{&Constant{Value: "file.txt"}}}
		}
		return &With{Item: item, As: "f", Body: []Stmt{&Pass{}}}, nil

	default:
		return &Pass{}, nil
	}
}
