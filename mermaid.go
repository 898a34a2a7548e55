package loom

import (
	"fmt"
	"io"
	"strings"
)

// PrintMermaid outputs a Mermaid diagram of the graph's data-flow edges to
// the provided io.Writer. Node order follows insertion order so output is
// deterministic.
func PrintMermaid(w io.Writer, g *Graph) error {
	if _, err := fmt.Fprintln(w, "graph TD"); err != nil {
		return err
	}
	if g == nil || g.Len() == 0 {
		return nil
	}

	for _, node := range g.Nodes() {
		if _, err := fmt.Fprintf(w, "    %s[\"%s\"]\n", shortID(node.ID), mermaidLabel(node)); err != nil {
			return err
		}
	}

	for _, c := range g.Connections() {
		if _, err := fmt.Fprintf(w, "    %s -->|%s| %s\n",
			shortID(c.SourceNodeID), c.SourcePort, shortID(c.TargetNodeID)); err != nil {
			return err
		}
	}

	for _, node := range g.Nodes() {
		if node.Kind == KindVariable {
			if _, err := fmt.Fprintf(w, "    style %s fill:#e1f5fe\n", shortID(node.ID)); err != nil {
				return err
			}
		}
	}

	return nil
}

// PrintGraph outputs a plain-text listing of the graph: each node with its
// kind and ports, followed by the edges, in execution order when one
// exists and insertion order otherwise.
func PrintGraph(w io.Writer, g *Graph) error {
	if g == nil || g.Len() == 0 {
		_, err := fmt.Fprintln(w, "(empty graph)")
		return err
	}

	order := g.ExecutionOrder()
	if order == nil {
		for _, n := range g.Nodes() {
			order = append(order, n.ID)
		}
	}

	for _, id := range order {
		node, ok := g.Node(id)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%s)%s\n", shortID(node.ID), node.Kind, portSummary(node)); err != nil {
			return err
		}
	}

	if len(g.Connections()) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, c := range g.Connections() {
		if _, err := fmt.Fprintf(w, "%s.%s -> %s.%s (%s)\n",
			shortID(c.SourceNodeID), c.SourcePort,
			shortID(c.TargetNodeID), c.TargetPort, c.Type); err != nil {
			return err
		}
	}

	return nil
}

func mermaidLabel(n *Node) string {
	label := n.Name
	if label == "" {
		label = string(n.Kind)
	}
	// Quotes break Mermaid labels.
	return strings.ReplaceAll(label, "\"", "'")
}

func portSummary(n *Node) string {
	if len(n.Inputs) == 0 && len(n.Outputs) == 0 {
		return ""
	}
	var in, out []string
	for _, p := range n.Inputs {
		in = append(in, p.Name)
	}
	for _, p := range n.Outputs {
		out = append(out, p.Name)
	}
	return fmt.Sprintf(" in:[%s] out:[%s]", strings.Join(in, ","), strings.Join(out, ","))
}
