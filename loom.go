// Package loom compiles visual node graphs into source code.
// Graphs are validated, ordered topologically, lowered to a small
// target-language syntax tree through per-kind mappers, and rendered
// through a multi-pass generation pipeline. A partial lifter converts
// syntax trees back into graphs for round-trip editing.
package loom

// GenerateFromGraph runs the full pipeline on a graph: lowering with the
// default mapper registry, then code generation with the given options.
// Unsupported or failing nodes degrade to placeholder comments rather
// than aborting, so a result is always produced.
func GenerateFromGraph(g *Graph, opts Options) Result {
	lowerer := NewLowerer(WithLogger(opts.Logger))
	module := lowerer.Lower(g)
	return opts.Generate(module, g)
}

// GenerateFromModule runs the generation pipeline on an already-lowered
// module without any graph-derived passes (comments, docstring overrides,
// headers, inline comments).
func GenerateFromModule(m *Module, opts Options) Result {
	return opts.Generate(m, nil)
}
