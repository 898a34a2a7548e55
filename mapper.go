package loom

import "fmt"

// Mapper lowers one graph node into one AST subtree. A mapper may return
// either a Stmt or an Expr; the lowering pass wraps bare expressions into
// expression statements. Mappers must be pure given their inputs.
type Mapper interface {
	Lower(n *Node, ctx *ConnectionContext) (AstNode, error)
}

// MapperRegistry maps node kinds to lowering strategies. The default
// strategies are registered at construction; callers may register
// additional kinds or replace existing ones. The registry is read-mostly:
// do not call Register concurrently with a lowering pass sharing it.
type MapperRegistry struct {
	mappers map[NodeKind]Mapper
}

// NewMapperRegistry creates a registry populated with the default mappers.
func NewMapperRegistry() *MapperRegistry {
	r := &MapperRegistry{mappers: make(map[NodeKind]Mapper)}
	r.Register(KindFunction, functionMapper{})
	r.Register(KindVariable, variableMapper{})
	r.Register(KindControlFlow, controlFlowMapper{})
	r.Register(KindClass, classMapper{})
	r.Register(KindDecorator, decoratorMapper{})
	r.Register(KindAsync, asyncMapper{})
	r.Register(KindGenerator, generatorMapper{})
	r.Register(KindMetaclass, metaclassMapper{})
	return r
}

// Register binds a mapper to a kind, replacing any existing binding.
func (r *MapperRegistry) Register(kind NodeKind, m Mapper) {
	if m == nil {
		panic("loom: nil mapper registered for kind " + string(kind))
	}
	r.mappers[kind] = m
}

// Mapper returns the strategy for a kind, if registered.
func (r *MapperRegistry) Mapper(kind NodeKind) (Mapper, bool) {
	m, ok := r.mappers[kind]
	return m, ok
}

// Mappers returns a copy of the kind-to-strategy table. Modifications to
// the copy do not affect the registry.
func (r *MapperRegistry) Mappers() map[NodeKind]Mapper {
	cp := make(map[NodeKind]Mapper, len(r.mappers))
	for k, v := range r.mappers {
		cp[k] = v
	}
	return cp
}

// valueToExpr converts a literal parameter or port default into an
// expression. Unrecognized values become a name reference to their string
// form.
func valueToExpr(v any) Expr {
	switch v.(type) {
	case string, bool, int, int64, float64, nil:
		return &Constant{Value: v}
	default:
		return &Name{ID: fmt.Sprint(v)}
	}
}

// stringSlice coerces a parameter that may arrive as []string or []any
// (the YAML decoder produces the latter) into a string slice.
func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
