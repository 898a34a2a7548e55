package loom

// decoratorMapper lowers a Decorator node to the decorator expression
// itself. Dotted names become attribute chains (e.g. property.setter).
type decoratorMapper struct{}

func (decoratorMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	return decoratorExpr(n.StringParam("decorator_name", "decorator")), nil
}

func decoratorExpr(name string) Expr {
	var expr Expr
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			part := name[start:i]
			if expr == nil {
				expr = &Name{ID: part}
			} else {
				expr = &Attribute{Value: expr, Attr: part}
			}
			start = i + 1
		}
	}
	return expr
}

// asyncMapper lowers an Async node to one of the async sub-variants
// selected by the async_type parameter.
type asyncMapper struct{}

func (asyncMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	switch n.StringParam("async_type", "await") {
	case "await":
		value, ok := ctx.Lookup(n.ID, "awaitable")
		if !ok {
			value = &Call{Func: &Name{ID: "async_function"}}
		}
		return &Await{Value: value}, nil

	case "async_function":
		return &FunctionDef{
			Name:  n.StringParam("function_name", "async_function"),
			Body:  []Stmt{&Pass{}},
			Async: true,
		}, nil

	case "async_for":
		iter, ok := ctx.Lookup(n.ID, "async_iterable")
		if !ok {
			iter = &Name{ID: "async_iterable"}
		}
		return &For{Target: "item", Iter: iter, Body: []Stmt{&Pass{}}, Async: true}, nil

	case "async_with":
		item, ok := ctx.Lookup(n.ID, "async_context_manager")
		if !ok {
			item = &Name{ID: "async_context_manager"}
		}
		return &With{Item: item, As: "ctx", Body: []Stmt{&Pass{}}, Async: true}, nil

	default:
		return &Pass{}, nil
	}
}

// generatorMapper lowers a Generator node to one of the generator
// sub-variants selected by the generator_type parameter.
type generatorMapper struct{}

func (m generatorMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	switch n.StringParam("generator_type", "yield") {
	case "yield":
		value, ok := ctx.Lookup(n.ID, "value")
		if !ok {
			value = &Constant{Value: nil}
		}
		return &Yield{Value: value}, nil

	case "yield_from":
		value, ok := ctx.Lookup(n.ID, "iterable")
		if !ok {
			value = &Name{ID: "iterable"}
		}
		return &YieldFrom{Value: value}, nil

	case "generator_function":
		return &FunctionDef{
			Name: n.StringParam("function_name", "generator_function"),
			Body: []Stmt{&ExprStmt{Value: &Yield{Value: &Constant{Value: 1}}}},
		}, nil

	case "list_comprehension":
		iter, ok := ctx.Lookup(n.ID, "iterable")
		if !ok {
			iter = &Name{ID: "iterable"}
		}
		return &ListComp{Elt: &Name{ID: "x"}, Target: "x", Iter: iter}, nil

	case "iterator_protocol":
		return m.iteratorClass(n.StringParam("class_name", "Iterator")), nil

	default:
		return &Pass{}, nil
	}
}

// iteratorClass emits a class implementing the iterator protocol with
// __iter__ returning self and __next__ raising StopIteration.
func (generatorMapper) iteratorClass(name string) *ClassDef {
	iterMethod := &FunctionDef{
		Name: "__iter__",
		Args: []Arg{{Name: "self"}},
		Body: []Stmt{&Return{Value: &Name{ID: "self"}}},
	}
	nextMethod := &FunctionDef{
		Name: "__next__",
		Args: []Arg{{Name: "self"}},
		Body: []Stmt{&Raise{Exc: &Call{Func: &Name{ID: "StopIteration"}}}},
	}
	return &ClassDef{Name: name, Body: []Stmt{iterMethod, nextMethod}}
}
