package loom

// classMapper lowers a Class node into one of four shapes selected by the
// class_type parameter: basic, abstract, dataclass, or singleton.
type classMapper struct{}

func (m classMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	name := n.StringParam("class_name", "UnnamedClass")

	var bases []Expr
	for _, base := range stringSlice(n.Parameters["base_classes"]) {
		bases = append(bases, &Name{ID: base})
	}

	switch n.StringParam("class_type", "basic") {
	case "abstract":
		return m.abstractClass(name, bases), nil
	case "dataclass":
		return m.dataclass(name, bases, n), nil
	case "singleton":
		return m.singleton(name, bases), nil
	default:
		return &ClassDef{Name: name, Bases: bases, Body: []Stmt{&Pass{}}}, nil
	}
}

func (classMapper) abstractClass(name string, bases []Expr) *ClassDef {
	hasABC := false
	for _, b := range bases {
		if n, ok := b.(*Name); ok && n.ID == "ABC" {
			hasABC = true
		}
	}
	if !hasABC {
		bases = append(bases, &Name{ID: "ABC"})
	}

	method := &FunctionDef{
		Name:       "abstract_method",
		Args:       []Arg{{Name: "self"}},
		Body:       []Stmt{&Pass{}},
		Decorators: []Expr{&Name{ID: "abstractmethod"}},
	}

	return &ClassDef{Name: name, Bases: bases, Body: []Stmt{method}}
}

func (classMapper) dataclass(name string, bases []Expr, n *Node) *ClassDef {
	var body []Stmt

	if fields, ok := n.Parameters["fields"].([]any); ok {
		for _, f := range fields {
			field, ok := f.(map[string]any)
			if !ok {
				continue
			}
			fieldName, _ := field["name"].(string)
			if fieldName == "" {
				fieldName = "field"
			}
			fieldType, _ := field["type"].(string)
			if fieldType == "" {
				fieldType = "Any"
			}
			body = append(body, &AnnAssign{Target: fieldName, Annotation: fieldType})
		}
	}
	if len(body) == 0 {
		body = []Stmt{&Pass{}}
	}

	return &ClassDef{
		Name:       name,
		Bases:      bases,
		Decorators: []Expr{&Name{ID: "dataclass"}},
		Body:       body,
	}
}

// singleton emits a __new__ that lazily constructs and caches the single
// instance on the class.
func (classMapper) singleton(name string, bases []Expr) *ClassDef {
	cls := &Name{ID: "cls"}
	instance := &Attribute{Value: cls, Attr: "_instance"}

	guard := &If{
		Test: &UnaryNot{Operand: &Call{
			Func: &Name{ID: "hasattr"},
			Args: []Expr{cls, &Constant{Value: "_instance"}},
		}},
		Body: []Stmt{&Assign{
			Targets: []Expr{instance},
			Value: &Call{
				Func: &Attribute{Value: &Call{Func: &Name{ID: "super"}}, Attr: "__new__"},
				Args: []Expr{cls},
			},
		}},
	}

	newMethod := &FunctionDef{
		Name: "__new__",
		Args: []Arg{{Name: "cls"}},
		Body: []Stmt{guard, &Return{Value: instance}},
	}

	return &ClassDef{Name: name, Bases: bases, Body: []Stmt{newMethod}}
}

// metaclassMapper lowers a Metaclass node, either as a class declared with
// a metaclass keyword or as a metaclass definition itself.
type metaclassMapper struct{}

func (m metaclassMapper) Lower(n *Node, ctx *ConnectionContext) (AstNode, error) {
	switch n.StringParam("metaclass_type", "class_with_metaclass") {
	case "class_with_metaclass":
		return &ClassDef{
			Name: n.StringParam("class_name", "MetaClass"),
			Keywords: []Keyword{{
				Arg:   "metaclass",
				Value: &Name{ID: n.StringParam("metaclass_name", "type")},
			}},
			Body: []Stmt{&Pass{}},
		}, nil

	case "metaclass_definition":
		return m.definition(n.StringParam("metaclass_name", "CustomMeta")), nil

	default:
		return &Pass{}, nil
	}
}

func (metaclassMapper) definition(name string) *ClassDef {
	params := []string{"cls", "name", "bases", "attrs"}

	args := make([]Arg, len(params))
	callArgs := make([]Expr, len(params))
	for i, p := range params {
		args[i] = Arg{Name: p}
		callArgs[i] = &Name{ID: p}
	}

	newMethod := &FunctionDef{
		Name: "__new__",
		Args: args,
		Body: []Stmt{&Return{Value: &Call{
			Func: &Attribute{Value: &Call{Func: &Name{ID: "super"}}, Attr: "__new__"},
			Args: callArgs,
		}}},
	}

	return &ClassDef{
		Name:  name,
		Bases: []Expr{&Name{ID: "type"}},
		Body:  []Stmt{newMethod},
	}
}
