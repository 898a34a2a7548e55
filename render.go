package loom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Render unparses a module into source text. It covers every node kind
// the mappers can produce; a nil module or a malformed subtree yields an
// error, and callers fall back to fallbackRender.
func Render(m *Module) (string, error) {
	if m == nil {
		return "", fmt.Errorf("render: nil module")
	}
	r := &renderer{}
	for _, stmt := range m.Body {
		if err := r.stmt(stmt, 0); err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(r.b.String(), "\n"), nil
}

// renderer accumulates lines with 4-space indentation levels.
type renderer struct {
	b strings.Builder
}

func (r *renderer) line(indent int, text string) {
	r.b.WriteString(strings.Repeat("    ", indent))
	r.b.WriteString(text)
	r.b.WriteByte('\n')
}

func (r *renderer) stmt(s Stmt, indent int) error {
	switch v := s.(type) {
	case *Assign:
		targets := make([]string, len(v.Targets))
		for i, t := range v.Targets {
			rendered, err := r.expr(t)
			if err != nil {
				return err
			}
			targets[i] = rendered
		}
		value, err := r.expr(v.Value)
		if err != nil {
			return err
		}
		r.line(indent, strings.Join(targets, " = ")+" = "+value)

	case *AnnAssign:
		r.line(indent, v.Target+": "+v.Annotation)

	case *ExprStmt:
		if c, ok := v.Value.(*Constant); ok {
			if s, isStr := c.Value.(string); isStr {
				r.line(indent, renderDocstring(s))
				return nil
			}
		}
		text, err := r.expr(v.Value)
		if err != nil {
			return err
		}
		r.line(indent, text)

	case *If:
		test, err := r.expr(v.Test)
		if err != nil {
			return err
		}
		r.line(indent, "if "+test+":")
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}
		if len(v.Orelse) > 0 {
			r.line(indent, "else:")
			if err := r.body(v.Orelse, indent+1); err != nil {
				return err
			}
		}

	case *For:
		iter, err := r.expr(v.Iter)
		if err != nil {
			return err
		}
		head := "for"
		if v.Async {
			head = "async for"
		}
		r.line(indent, fmt.Sprintf("%s %s in %s:", head, v.Target, iter))
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}

	case *While:
		test, err := r.expr(v.Test)
		if err != nil {
			return err
		}
		r.line(indent, "while "+test+":")
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}

	case *Try:
		r.line(indent, "try:")
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}
		for _, h := range v.Handlers {
			switch {
			case h.Type != "" && h.Name != "":
				r.line(indent, fmt.Sprintf("except %s as %s:", h.Type, h.Name))
			case h.Type != "":
				r.line(indent, "except "+h.Type+":")
			default:
				r.line(indent, "except:")
			}
			if err := r.body(h.Body, indent+1); err != nil {
				return err
			}
		}
		if len(v.Orelse) > 0 {
			r.line(indent, "else:")
			if err := r.body(v.Orelse, indent+1); err != nil {
				return err
			}
		}
		if len(v.Final) > 0 {
			r.line(indent, "finally:")
			if err := r.body(v.Final, indent+1); err != nil {
				return err
			}
		}

	case *With:
		item, err := r.expr(v.Item)
		if err != nil {
			return err
		}
		head := "with"
		if v.Async {
			head = "async with"
		}
		if v.As != "" {
			r.line(indent, fmt.Sprintf("%s %s as %s:", head, item, v.As))
		} else {
			r.line(indent, fmt.Sprintf("%s %s:", head, item))
		}
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}

	case *FunctionDef:
		for _, d := range v.Decorators {
			dec, err := r.expr(d)
			if err != nil {
				return err
			}
			r.line(indent, "@"+dec)
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			if a.Annotation != "" {
				args[i] = a.Name + ": " + a.Annotation
			} else {
				args[i] = a.Name
			}
		}
		head := "def"
		if v.Async {
			head = "async def"
		}
		sig := fmt.Sprintf("%s %s(%s)", head, v.Name, strings.Join(args, ", "))
		if v.Returns != "" {
			sig += " -> " + v.Returns
		}
		r.line(indent, sig+":")
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}

	case *ClassDef:
		for _, d := range v.Decorators {
			dec, err := r.expr(d)
			if err != nil {
				return err
			}
			r.line(indent, "@"+dec)
		}
		var parents []string
		for _, b := range v.Bases {
			base, err := r.expr(b)
			if err != nil {
				return err
			}
			parents = append(parents, base)
		}
		for _, kw := range v.Keywords {
			value, err := r.expr(kw.Value)
			if err != nil {
				return err
			}
			parents = append(parents, kw.Arg+"="+value)
		}
		if len(parents) > 0 {
			r.line(indent, fmt.Sprintf("class %s(%s):", v.Name, strings.Join(parents, ", ")))
		} else {
			r.line(indent, "class "+v.Name+":")
		}
		if err := r.body(v.Body, indent+1); err != nil {
			return err
		}

	case *Return:
		if v.Value == nil {
			r.line(indent, "return")
			return nil
		}
		value, err := r.expr(v.Value)
		if err != nil {
			return err
		}
		r.line(indent, "return "+value)

	case *Raise:
		if v.Exc == nil {
			r.line(indent, "raise")
			return nil
		}
		exc, err := r.expr(v.Exc)
		if err != nil {
			return err
		}
		r.line(indent, "raise "+exc)

	case *Pass:
		r.line(indent, "pass")

	case *Comment:
		r.line(indent, "# "+v.Text)

	default:
		return fmt.Errorf("render: unsupported statement %T", s)
	}
	return nil
}

func (r *renderer) body(body []Stmt, indent int) error {
	if len(body) == 0 {
		r.line(indent, "pass")
		return nil
	}
	for _, s := range body {
		if err := r.stmt(s, indent); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) expr(e Expr) (string, error) {
	switch v := e.(type) {
	case nil:
		return "", fmt.Errorf("render: nil expression")

	case *Name:
		return v.ID, nil

	case *Constant:
		return pyRepr(v.Value), nil

	case *Call:
		fn, err := r.expr(v.Func)
		if err != nil {
			return "", err
		}
		var parts []string
		for _, a := range v.Args {
			arg, err := r.expr(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, arg)
		}
		for _, kw := range v.Keywords {
			value, err := r.expr(kw.Value)
			if err != nil {
				return "", err
			}
			parts = append(parts, kw.Arg+"="+value)
		}
		return fmt.Sprintf("%s(%s)", fn, strings.Join(parts, ", ")), nil

	case *Attribute:
		value, err := r.expr(v.Value)
		if err != nil {
			return "", err
		}
		return value + "." + v.Attr, nil

	case *UnaryNot:
		operand, err := r.expr(v.Operand)
		if err != nil {
			return "", err
		}
		return "not " + operand, nil

	case *Await:
		value, err := r.expr(v.Value)
		if err != nil {
			return "", err
		}
		return "await " + value, nil

	case *Yield:
		if v.Value == nil {
			return "yield", nil
		}
		value, err := r.expr(v.Value)
		if err != nil {
			return "", err
		}
		return "yield " + value, nil

	case *YieldFrom:
		value, err := r.expr(v.Value)
		if err != nil {
			return "", err
		}
		return "yield from " + value, nil

	case *ListComp:
		elt, err := r.expr(v.Elt)
		if err != nil {
			return "", err
		}
		iter, err := r.expr(v.Iter)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s for %s in %s]", elt, v.Target, iter), nil

	default:
		return "", fmt.Errorf("render: unsupported expression %T", e)
	}
}

// renderDocstring renders a string expression statement as a
// triple-quoted docstring.
func renderDocstring(s string) string {
	return `"""` + s + `"""`
}

// pyRepr formats a literal the way the target language writes it.
func pyRepr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		escaped := strings.NewReplacer(
			`\`, `\\`,
			`'`, `\'`,
			"\n", `\n`,
			"\t", `\t`,
		).Replace(val)
		return "'" + escaped + "'"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) && !math.IsNaN(val) {
			return strconv.FormatFloat(val, 'f', 1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// fallbackRender is the minimal secondary renderer used when Render
// fails. It understands only simple assignments, bare calls, and
// function/class definitions; anything else becomes a comment naming its
// statement kind.
func fallbackRender(m *Module) string {
	var lines []string
	for _, stmt := range m.Body {
		switch v := stmt.(type) {
		case *Assign:
			name, okName := singleNameTarget(v.Targets)
			c, okConst := v.Value.(*Constant)
			if okName && okConst {
				lines = append(lines, name+" = "+pyRepr(c.Value))
				continue
			}
			lines = append(lines, "# Assign")

		case *ExprStmt:
			if call, ok := v.Value.(*Call); ok {
				if fn, ok := call.Func.(*Name); ok {
					lines = append(lines, fn.ID+"()")
					continue
				}
			}
			lines = append(lines, "# Expr")

		case *FunctionDef:
			head := "def"
			if v.Async {
				head = "async def"
			}
			lines = append(lines, fmt.Sprintf("%s %s():", head, v.Name), "    pass")

		case *ClassDef:
			lines = append(lines, "class "+v.Name+":", "    pass")

		case *Comment:
			lines = append(lines, "# "+v.Text)

		default:
			lines = append(lines, "# "+stmtKindName(stmt))
		}
	}

	if len(lines) == 0 {
		return "# Empty module"
	}
	return strings.Join(lines, "\n")
}

func singleNameTarget(targets []Expr) (string, bool) {
	if len(targets) != 1 {
		return "", false
	}
	name, ok := targets[0].(*Name)
	if !ok {
		return "", false
	}
	return name.ID, true
}
