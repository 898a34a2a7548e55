package loom

import "fmt"

// ConnectionContext maps a target (node, input port) pair to the
// expression that the bound connection delivers. Mappers consult it to
// decide between a bound value and a port default.
//
// Keys are formed as "<targetNodeID>.<targetPort>". When the source of a
// connection is a Variable node the binding is that variable's name; any
// other source kind yields a synthetic "output_<shortid>" identifier. The
// synthetic name is not a bound name in the emitted program, so generated
// code that depends on it fails loudly rather than silently referencing
// something else.
type ConnectionContext struct {
	bindings map[string]Expr
}

// NewConnectionContext creates an empty context.
func NewConnectionContext() *ConnectionContext {
	return &ConnectionContext{bindings: make(map[string]Expr)}
}

// Bind records the expression delivered to a target port.
func (c *ConnectionContext) Bind(nodeID, port string, e Expr) {
	c.bindings[contextKey(nodeID, port)] = e
}

// Lookup returns the expression bound to a target port, if any.
func (c *ConnectionContext) Lookup(nodeID, port string) (Expr, bool) {
	e, ok := c.bindings[contextKey(nodeID, port)]
	return e, ok
}

// Len returns the number of bindings.
func (c *ConnectionContext) Len() int { return len(c.bindings) }

// Snapshot returns a copy of all bindings, useful for debugging and
// inspection.
func (c *ConnectionContext) Snapshot() map[string]Expr {
	cp := make(map[string]Expr, len(c.bindings))
	for k, v := range c.bindings {
		cp[k] = v
	}
	return cp
}

func contextKey(nodeID, port string) string {
	return fmt.Sprintf("%s.%s", nodeID, port)
}

// buildConnectionContext derives the context for a whole graph. Bindings
// for connections whose source node has been removed are skipped; Validate
// reports those separately.
func buildConnectionContext(g *Graph) *ConnectionContext {
	ctx := NewConnectionContext()
	for _, conn := range g.Connections() {
		source, ok := g.Node(conn.SourceNodeID)
		if !ok {
			continue
		}
		ctx.Bind(conn.TargetNodeID, conn.TargetPort, bindingFor(source))
	}
	return ctx
}

// bindingFor synthesizes the expression a source node contributes to its
// consumers. Only Variable sources have a real name to reference.
func bindingFor(source *Node) Expr {
	if source.Kind == KindVariable {
		name := source.StringParam("variable_name", "var_"+shortID(source.ID))
		return &Name{ID: name}
	}
	return &Name{ID: "output_" + shortID(source.ID)}
}
