package loom

import (
	"fmt"

	"go.uber.org/zap"
)

// Lowerer walks a graph in execution order and lowers each node through
// its registered mapper, assembling the results into one Module. Lowering
// is tolerant: a node without a mapper, or whose mapper fails, degrades to
// a placeholder comment statement instead of aborting the unit.
type Lowerer struct {
	registry *MapperRegistry
	logger   *zap.Logger
}

// LowerOption configures a Lowerer.
type LowerOption func(*Lowerer)

// WithRegistry replaces the default mapper registry.
func WithRegistry(r *MapperRegistry) LowerOption {
	return func(l *Lowerer) { l.registry = r }
}

// WithLogger attaches a logger for per-node degradation events.
func WithLogger(logger *zap.Logger) LowerOption {
	return func(l *Lowerer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLowerer creates a lowerer with the default mapper registry and a
// no-op logger.
func NewLowerer(opts ...LowerOption) *Lowerer {
	l := &Lowerer{
		registry: NewMapperRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the lowerer's mapper registry, the extension point for
// caller-defined node kinds.
func (l *Lowerer) Registry() *MapperRegistry { return l.registry }

// Lower converts a graph into an AST module. Nodes are visited in
// execution order; when the graph is unorderable (a cycle exists) the
// insertion order is used instead, since callers may still want
// best-effort output.
func (l *Lowerer) Lower(g *Graph) *Module {
	order := g.ExecutionOrder()
	if len(order) == 0 && g.Len() > 0 {
		l.logger.Warn("graph is unorderable, falling back to insertion order",
			zap.Int("nodes", g.Len()))
		for _, n := range g.Nodes() {
			order = append(order, n.ID)
		}
	}

	ctx := buildConnectionContext(g)

	module := &Module{}
	for _, id := range order {
		node, ok := g.Node(id)
		if !ok {
			continue
		}
		module.Body = append(module.Body, l.lowerNode(node, ctx))
	}
	return module
}

// lowerNode lowers a single node, degrading failures to comments.
func (l *Lowerer) lowerNode(node *Node, ctx *ConnectionContext) Stmt {
	mapper, ok := l.registry.Mapper(node.Kind)
	if !ok {
		l.logger.Debug("no mapper registered for node kind",
			zap.String("node_id", node.ID),
			zap.String("kind", string(node.Kind)))
		return &Comment{Text: fmt.Sprintf("Unsupported node kind: %s", node.Kind)}
	}

	subtree, err := mapper.Lower(node, ctx)
	if err != nil {
		l.logger.Warn("node lowering failed",
			zap.String("node_id", node.ID),
			zap.Error(err))
		return &Comment{Text: fmt.Sprintf("Error converting node %s: %v", node.ID, err)}
	}

	switch v := subtree.(type) {
	case Stmt:
		return v
	case Expr:
		return &ExprStmt{Value: v}
	default:
		return &Comment{Text: fmt.Sprintf("Error converting node %s: mapper produced no statement", node.ID)}
	}
}
