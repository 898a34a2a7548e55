package loom

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxLineLength is the column limit the validation pass warns on.
const maxLineLength = 88

// Options toggles the passes of the code-generation pipeline. All passes
// default to enabled; see DefaultOptions.
type Options struct {
	AddTypeHints     bool
	AddDocstrings    bool
	PreserveComments bool
	FormatCode       bool
	OptimizeCode     bool

	// Logger receives pipeline diagnostics; nil means no logging.
	Logger *zap.Logger
	// Now supplies the generation timestamp for header comments; nil
	// means time.Now.
	Now func() time.Time
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{
		AddTypeHints:     true,
		AddDocstrings:    true,
		PreserveComments: true,
		FormatCode:       true,
		OptimizeCode:     true,
	}
}

// Result is the outcome of a generation run. Code is always populated,
// even when the validation pass failed; IsValid and Errors report the
// validation outcome and Warnings carries non-fatal style findings.
type Result struct {
	Code     string
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Generate renders a module through the code-generation pipeline. The
// graph argument is optional; when present it supplies node comments,
// custom docstrings, header metadata, and inline-comment bindings. The
// module is annotated in place by the type-hint and docstring passes.
func (o Options) Generate(m *Module, g *Graph) Result {
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}

	if o.AddTypeHints {
		addTypeHints(m)
	}
	if o.AddDocstrings {
		addDocstrings(m)
	}
	if o.PreserveComments && g != nil {
		attachNodeComments(m, g)
	}
	if g != nil {
		applyCustomDocstrings(m, g)
	}

	code, err := Render(m)
	if err != nil {
		logger.Warn("canonical rendering failed, using fallback renderer", zap.Error(err))
		code = fallbackRender(m)
	}

	if g != nil {
		if header := headerComments(g, now()); header != "" {
			code = header + "\n\n" + code
		}
	}

	if o.FormatCode {
		code = formatSource(code)
		code = insertDefinitionBlankLines(code)
	}
	if o.OptimizeCode {
		code = hoistImports(code)
		code = collapseBlankRuns(code)
	}
	if o.PreserveComments && g != nil {
		code = attachInlineComments(code, g)
	}

	result := Result{Code: code}
	result.Errors = checkSyntax(code)
	result.IsValid = len(result.Errors) == 0
	result.Warnings = styleWarnings(code)

	if !result.IsValid {
		logger.Warn("generated code failed validation", zap.Strings("errors", result.Errors))
	}
	return result
}

// --- pass 1: type-hint synthesis ---

// addTypeHints gives every function definition an "Any" return annotation
// and "Any" parameter annotations where they are missing. Existing
// annotations are never overwritten.
func addTypeHints(m *Module) {
	walkDefs(m.Body, func(s Stmt) {
		fd, ok := s.(*FunctionDef)
		if !ok {
			return
		}
		if fd.Returns == "" {
			fd.Returns = "Any"
		}
		for i := range fd.Args {
			if fd.Args[i].Annotation == "" {
				fd.Args[i].Annotation = "Any"
			}
		}
	})
}

// --- pass 2: docstring synthesis ---

// addDocstrings synthesizes a docstring for every function and class
// whose body does not already begin with one.
func addDocstrings(m *Module) {
	walkDefs(m.Body, func(s Stmt) {
		switch v := s.(type) {
		case *FunctionDef:
			if _, ok := docstringOf(v.Body); !ok {
				v.Body = prependDocstring(v.Body, functionDocstring(v))
			}
		case *ClassDef:
			if _, ok := docstringOf(v.Body); !ok {
				v.Body = prependDocstring(v.Body, classDocstring(v))
			}
		}
	})
}

func prependDocstring(body []Stmt, text string) []Stmt {
	doc := &ExprStmt{Value: &Constant{Value: text}}
	return append([]Stmt{doc}, body...)
}

func functionDocstring(fd *FunctionDef) string {
	var parts []string

	name := fd.Name
	switch {
	case strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__"):
		parts = append(parts, fmt.Sprintf("Special method %s.", name))
	case strings.HasPrefix(name, "_"):
		parts = append(parts, fmt.Sprintf("Private function %s.", name))
	default:
		parts = append(parts, fmt.Sprintf("Function %s.", name))
	}

	if len(fd.Args) > 0 {
		parts = append(parts, "\nArgs:")
		for _, a := range fd.Args {
			argType := a.Annotation
			if argType == "" {
				argType = "Any"
			}
			parts = append(parts, fmt.Sprintf("    %s (%s): Description of %s.", a.Name, argType, a.Name))
		}
	}

	parts = append(parts, "\nReturns:")
	if fd.Returns != "" {
		parts = append(parts, fmt.Sprintf("    %s: Description of return value.", fd.Returns))
	} else {
		parts = append(parts, "    None: This function doesn't return a value.")
	}

	if containsRaise(fd.Body) {
		parts = append(parts, "\nRaises:")
		parts = append(parts, "    Exception: Description of when this exception is raised.")
	}

	return strings.Join(parts, "")
}

func classDocstring(cd *ClassDef) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Class %s.", cd.Name))

	if len(cd.Bases) > 0 {
		var names []string
		for _, b := range cd.Bases {
			if n, ok := b.(*Name); ok {
				names = append(names, n.ID)
			} else {
				names = append(names, "Unknown")
			}
		}
		parts = append(parts, fmt.Sprintf("\nInherits from: %s", strings.Join(names, ", ")))
	}

	parts = append(parts, "\nAttributes:")
	parts = append(parts, "    Attributes will be documented here.")

	var methods []*FunctionDef
	for _, s := range cd.Body {
		if fd, ok := s.(*FunctionDef); ok {
			methods = append(methods, fd)
		}
	}
	if len(methods) > 0 {
		parts = append(parts, "\nMethods:")
		if len(methods) > 3 {
			methods = methods[:3]
		}
		for _, fd := range methods {
			parts = append(parts, fmt.Sprintf("    %s(): %s method.", fd.Name, titleCase(fd.Name)))
		}
	}

	return strings.Join(parts, "")
}

// titleCase turns a snake_case identifier into a Title Cased phrase.
func titleCase(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// containsRaise reports whether any statement in the body, at any depth,
// is a raise.
func containsRaise(body []Stmt) bool {
	found := false
	walkStmts(body, func(s Stmt) {
		if _, ok := s.(*Raise); ok {
			found = true
		}
	})
	return found
}

// --- pass 3: comment preservation ---

// attachNodeComments re-attaches visual node comments as docstrings on
// the definition whose name matches the node's function_name or
// class_name parameter. Matching is by name, first match wins; it is
// ambiguous when names collide.
func attachNodeComments(m *Module, g *Graph) {
	for _, node := range g.Nodes() {
		if len(node.Comments) == 0 {
			continue
		}
		def := findDefForNode(m, node)
		if def == nil {
			continue
		}
		text := strings.Join(node.Comments, "\n")
		switch v := def.(type) {
		case *FunctionDef:
			if _, ok := docstringOf(v.Body); !ok {
				v.Body = prependDocstring(v.Body, text)
			}
		case *ClassDef:
			if _, ok := docstringOf(v.Body); !ok {
				v.Body = prependDocstring(v.Body, text)
			}
		}
	}
}

// --- pass 4: custom-docstring override ---

// applyCustomDocstrings replaces the docstring of the matching definition
// for every node carrying an explicit docstring. The override replaces
// whatever earlier passes produced; it never merges.
func applyCustomDocstrings(m *Module, g *Graph) {
	for _, node := range g.Nodes() {
		if node.Docstring == "" {
			continue
		}
		def := findDefForNode(m, node)
		if def == nil {
			continue
		}
		switch v := def.(type) {
		case *FunctionDef:
			v.Body = replaceDocstring(v.Body, node.Docstring)
		case *ClassDef:
			v.Body = replaceDocstring(v.Body, node.Docstring)
		}
	}
}

func replaceDocstring(body []Stmt, text string) []Stmt {
	if doc, ok := docstringOf(body); ok {
		doc.Value = &Constant{Value: text}
		return body
	}
	return prependDocstring(body, text)
}

// findDefForNode locates the definition statement a graph node maps to,
// by matching the node's name parameter against definition names.
func findDefForNode(m *Module, node *Node) Stmt {
	var match Stmt
	switch node.Kind {
	case KindFunction:
		want := node.StringParam("function_name", "")
		walkDefs(m.Body, func(s Stmt) {
			if match != nil {
				return
			}
			if fd, ok := s.(*FunctionDef); ok && fd.Name == want && want != "" {
				match = fd
			}
		})
	case KindClass:
		want := node.StringParam("class_name", "")
		walkDefs(m.Body, func(s Stmt) {
			if match != nil {
				return
			}
			if cd, ok := s.(*ClassDef); ok && cd.Name == want && want != "" {
				match = cd
			}
		})
	}
	return match
}

// --- pass 6: header injection ---

// headerComments builds the module header from graph metadata. The header
// is only emitted when at least one of description, author, or version is
// present; the generation timestamp accompanies them.
func headerComments(g *Graph, now time.Time) string {
	var lines []string
	if desc, ok := g.Metadata["description"].(string); ok && desc != "" {
		lines = append(lines, "# "+desc)
	}
	if author, ok := g.Metadata["author"].(string); ok && author != "" {
		lines = append(lines, "# Author: "+author)
	}
	if version, ok := g.Metadata["version"].(string); ok && version != "" {
		lines = append(lines, "# Version: "+version)
	}
	if len(lines) == 0 {
		return ""
	}
	lines = append(lines, "# Generated on: "+now.Format("2006-01-02 15:04:05"))
	return strings.Join(lines, "\n")
}

// --- pass 7: formatting ---

// formatSource strips trailing whitespace and normalizes each non-blank
// line's indentation down to the nearest lower multiple of four spaces.
// This is a normalization, not a language-aware reflow.
func formatSource(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		leading := len(line) - len(strings.TrimLeft(line, " "))
		level := leading / 4
		lines[i] = strings.Repeat("    ", level) + strings.TrimLeft(line, " ")
	}
	return strings.Join(lines, "\n")
}

// insertDefinitionBlankLines puts one blank line before every class or
// function definition that directly follows a non-blank line.
func insertDefinitionBlankLines(code string) string {
	lines := strings.Split(code, "\n")
	var out []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isDef := strings.HasPrefix(trimmed, "class ") ||
			strings.HasPrefix(trimmed, "def ") ||
			strings.HasPrefix(trimmed, "async def ")
		if isDef && i > 0 && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// --- pass 8: optimization ---

// hoistImports moves import lines to the top of the file in lexicographic
// order, separated from the remaining code by one blank line.
func hoistImports(code string) string {
	var imports, rest []string
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			imports = append(imports, line)
		} else {
			rest = append(rest, line)
		}
	}
	if len(imports) == 0 {
		return code
	}
	sort.Strings(imports)
	if len(rest) == 0 {
		return strings.Join(imports, "\n")
	}
	return strings.Join(imports, "\n") + "\n\n" + strings.Join(rest, "\n")
}

// collapseBlankRuns reduces every run of two or more blank lines to a
// single blank line and strips trailing whitespace.
func collapseBlankRuns(code string) string {
	lines := strings.Split(code, "\n")
	var out []string
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			out = append(out, "")
			blanks = 0
		}
		out = append(out, line)
	}
	if blanks > 0 {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// --- pass 9: inline-comment reattachment ---

// attachInlineComments appends the first node comment to assignment lines
// whose left-hand identifier matches a Variable node's variable_name.
// Matching is heuristic, on line text rather than AST correlation.
func attachInlineComments(code string, g *Graph) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "=") || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		varName := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
		if comment := commentForVariable(g, varName); comment != "" {
			lines[i] = line + "  # " + comment
		}
	}
	return strings.Join(lines, "\n")
}

func commentForVariable(g *Graph, varName string) string {
	for _, node := range g.Nodes() {
		if node.Kind == KindVariable &&
			node.StringParam("variable_name", "") == varName &&
			len(node.Comments) > 0 {
			return node.Comments[0]
		}
	}
	return ""
}

// --- pass 10: validation ---

// checkSyntax re-checks the final text for structural problems: bracket
// balance outside string literals and unterminated strings. It is a
// lightweight re-parse, reported rather than thrown; generation always
// returns text even when checks fail.
func checkSyntax(code string) []string {
	var errs []string
	depth := 0
	var stringDelim byte // 0 when outside a string
	tripleQuote := false

	lines := strings.Split(code, "\n")
	for lineNo, line := range lines {
		i := 0
		for i < len(line) {
			ch := line[i]

			if stringDelim != 0 {
				if ch == '\\' {
					i += 2
					continue
				}
				if ch == stringDelim {
					if tripleQuote {
						if strings.HasPrefix(line[i:], strings.Repeat(string(ch), 3)) {
							stringDelim = 0
							tripleQuote = false
							i += 3
							continue
						}
					} else {
						stringDelim = 0
					}
				}
				i++
				continue
			}

			switch ch {
			case '#':
				i = len(line)
				continue
			case '\'', '"':
				stringDelim = ch
				if strings.HasPrefix(line[i:], strings.Repeat(string(ch), 3)) {
					tripleQuote = true
					i += 3
					continue
				}
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
				if depth < 0 {
					errs = append(errs, fmt.Sprintf("syntax error: unbalanced bracket on line %d", lineNo+1))
					depth = 0
				}
			}
			i++
		}

		// Single-quoted strings do not continue across lines.
		if stringDelim != 0 && !tripleQuote {
			errs = append(errs, fmt.Sprintf("syntax error: unterminated string on line %d", lineNo+1))
			stringDelim = 0
		}
	}

	if depth > 0 {
		errs = append(errs, "syntax error: unbalanced brackets at end of file")
	}
	if tripleQuote {
		errs = append(errs, "syntax error: unterminated triple-quoted string")
	}
	return errs
}

// styleWarnings flags long lines and trailing whitespace. These are
// non-fatal.
func styleWarnings(code string) []string {
	var warnings []string
	for i, line := range strings.Split(code, "\n") {
		if len(line) > maxLineLength {
			warnings = append(warnings, fmt.Sprintf("Line %d exceeds maximum length", i+1))
		}
		if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
			warnings = append(warnings, fmt.Sprintf("Line %d has trailing whitespace", i+1))
		}
	}
	return warnings
}

// --- AST walking helpers ---

// walkDefs visits every statement in the tree, descending into nested
// bodies, so passes can reach definitions inside classes and blocks.
func walkDefs(body []Stmt, visit func(Stmt)) {
	walkStmts(body, visit)
}

func walkStmts(body []Stmt, visit func(Stmt)) {
	for _, s := range body {
		visit(s)
		switch v := s.(type) {
		case *If:
			walkStmts(v.Body, visit)
			walkStmts(v.Orelse, visit)
		case *For:
			walkStmts(v.Body, visit)
		case *While:
			walkStmts(v.Body, visit)
		case *Try:
			walkStmts(v.Body, visit)
			for _, h := range v.Handlers {
				walkStmts(h.Body, visit)
			}
			walkStmts(v.Orelse, visit)
			walkStmts(v.Final, visit)
		case *With:
			walkStmts(v.Body, visit)
		case *FunctionDef:
			walkStmts(v.Body, visit)
		case *ClassDef:
			walkStmts(v.Body, visit)
		}
	}
}
