package loom

// AstNode is the common interface of every node in the target-language
// abstract syntax tree. Concrete nodes are either statements or
// expressions; mappers may produce either, and the lowering pass wraps
// bare expressions into expression statements.
type AstNode interface {
	astNode()
}

// Stmt is a statement node.
type Stmt interface {
	AstNode
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	AstNode
	exprNode()
}

// Module is an ordered unit of top-level statements, the output of
// lowering and the input of code generation.
type Module struct {
	Body []Stmt
}

// --- expressions ---

// Name is an identifier reference.
type Name struct {
	ID string
}

// Constant is a literal value: string, bool, int, float64, or nil.
type Constant struct {
	Value any
}

// Keyword is a keyword argument in a call or class definition.
type Keyword struct {
	Arg   string
	Value Expr
}

// Call is a function call expression.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// Attribute is a dotted attribute access, e.g. cls._instance.
type Attribute struct {
	Value Expr
	Attr  string
}

// UnaryNot negates its operand.
type UnaryNot struct {
	Operand Expr
}

// Await suspends on an awaitable expression.
type Await struct {
	Value Expr
}

// Yield produces a value from a generator. Value may be nil for a bare
// yield.
type Yield struct {
	Value Expr
}

// YieldFrom delegates to a sub-iterable.
type YieldFrom struct {
	Value Expr
}

// ListComp is a single-generator list comprehension, [Elt for Target in Iter].
type ListComp struct {
	Elt    Expr
	Target string
	Iter   Expr
}

func (*Name) exprNode()      {}
func (*Constant) exprNode()  {}
func (*Call) exprNode()      {}
func (*Attribute) exprNode() {}
func (*UnaryNot) exprNode()  {}
func (*Await) exprNode()     {}
func (*Yield) exprNode()     {}
func (*YieldFrom) exprNode() {}
func (*ListComp) exprNode()  {}

func (*Name) astNode()      {}
func (*Constant) astNode()  {}
func (*Call) astNode()      {}
func (*Attribute) astNode() {}
func (*UnaryNot) astNode()  {}
func (*Await) astNode()     {}
func (*Yield) astNode()     {}
func (*YieldFrom) astNode() {}
func (*ListComp) astNode()  {}

// --- statements ---

// Assign binds the value to each target, left to right.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AnnAssign is an annotated declaration without a value, e.g. a dataclass
// field.
type AnnAssign struct {
	Target     string
	Annotation string
}

// ExprStmt evaluates an expression for its effect. A string Constant as
// the first statement of a definition body is its docstring.
type ExprStmt struct {
	Value Expr
}

// If is a conditional with optional else body.
type If struct {
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// For iterates Target over Iter. Async selects the async form.
type For struct {
	Target string
	Iter   Expr
	Body   []Stmt
	Async  bool
}

// While loops until Test is false.
type While struct {
	Test Expr
	Body []Stmt
}

// ExceptHandler is one except clause of a Try.
type ExceptHandler struct {
	Type string
	Name string
	Body []Stmt
}

// Try is an exception-handling block.
type Try struct {
	Body     []Stmt
	Handlers []ExceptHandler
	Orelse   []Stmt
	Final    []Stmt
}

// With enters a context manager. Async selects the async form.
type With struct {
	Item  Expr
	As    string
	Body  []Stmt
	Async bool
}

// Arg is one parameter of a function definition.
type Arg struct {
	Name       string
	Annotation string
}

// FunctionDef defines a function or method. Async selects the async form.
type FunctionDef struct {
	Name       string
	Args       []Arg
	Body       []Stmt
	Decorators []Expr
	Returns    string
	Async      bool
}

// ClassDef defines a class.
type ClassDef struct {
	Name       string
	Bases      []Expr
	Keywords   []Keyword
	Decorators []Expr
	Body       []Stmt
}

// Return exits a function with an optional value.
type Return struct {
	Value Expr
}

// Raise raises an exception.
type Raise struct {
	Exc Expr
}

// Pass is the no-op placeholder statement.
type Pass struct{}

// Comment is a raw comment line. It has no counterpart in the source
// language's AST; lowering uses it to degrade failed or unknown nodes
// without aborting the unit.
type Comment struct {
	Text string
}

func (*Assign) stmtNode()      {}
func (*AnnAssign) stmtNode()   {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*Try) stmtNode()         {}
func (*With) stmtNode()        {}
func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Raise) stmtNode()       {}
func (*Pass) stmtNode()        {}
func (*Comment) stmtNode()     {}

func (*Assign) astNode()      {}
func (*AnnAssign) astNode()   {}
func (*ExprStmt) astNode()    {}
func (*If) astNode()          {}
func (*For) astNode()         {}
func (*While) astNode()       {}
func (*Try) astNode()         {}
func (*With) astNode()        {}
func (*FunctionDef) astNode() {}
func (*ClassDef) astNode()    {}
func (*Return) astNode()      {}
func (*Raise) astNode()       {}
func (*Pass) astNode()        {}
func (*Comment) astNode()     {}

// stmtKindName names a statement kind for placeholder comments emitted by
// the fallback renderer.
func stmtKindName(s Stmt) string {
	switch s.(type) {
	case *Assign:
		return "Assign"
	case *AnnAssign:
		return "AnnAssign"
	case *ExprStmt:
		return "Expr"
	case *If:
		return "If"
	case *For:
		return "For"
	case *While:
		return "While"
	case *Try:
		return "Try"
	case *With:
		return "With"
	case *FunctionDef:
		return "FunctionDef"
	case *ClassDef:
		return "ClassDef"
	case *Return:
		return "Return"
	case *Raise:
		return "Raise"
	case *Pass:
		return "Pass"
	case *Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// docstringOf returns the docstring expression statement at the head of a
// body, if present. Any leading constant expression counts, not just a
// string: synthesis must not stack a second docstring on top of one.
func docstringOf(body []Stmt) (*ExprStmt, bool) {
	if len(body) == 0 {
		return nil, false
	}
	es, ok := body[0].(*ExprStmt)
	if !ok {
		return nil, false
	}
	if _, ok := es.Value.(*Constant); !ok {
		return nil, false
	}
	return es, true
}
