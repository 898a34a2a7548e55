package loom

import (
	"fmt"

	"github.com/google/uuid"
)

// Connection is a typed edge from a source node's output port to a target
// node's input port.
type Connection struct {
	ID           string
	SourceNodeID string
	SourcePort   string
	TargetNodeID string
	TargetPort   string
	// Type is copied from the source output port when the connection is made.
	Type TypeDescriptor
}

// DataFlowInfo returns a description of the data flowing through this
// connection, keyed for introspection tooling.
func (c *Connection) DataFlowInfo() map[string]string {
	return map[string]string{
		"connection_id": c.ID,
		"data_type":     string(c.Type),
		"source":        fmt.Sprintf("%s.%s", c.SourceNodeID, c.SourcePort),
		"target":        fmt.Sprintf("%s.%s", c.TargetNodeID, c.TargetPort),
	}
}

// Graph owns nodes and connections and enforces structural invariants at
// its mutation boundary. It is not internally synchronized: callers must
// not mutate a Graph while Validate, ExecutionOrder, or a lowering call is
// in flight on the same instance.
type Graph struct {
	nodes       map[string]*Node
	order       []string // node IDs in insertion order
	connections []*Connection

	// Metadata carries document-level fields (description, author, version)
	// consumed by the header-injection pass.
	Metadata map[string]any
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		Metadata: make(map[string]any),
	}
}

// AddNode adds a node and returns its ID. Nodes without an ID are assigned
// one. Re-adding an existing ID replaces the node in place without
// disturbing insertion order.
func (g *Graph) AddNode(n *Node) string {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.order = append(g.order, n.ID)
	}
	g.nodes[n.ID] = n
	return n.ID
}

// RemoveNode removes a node and every connection touching it. Returns
// false if the node does not exist.
func (g *Graph) RemoveNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.SourceNodeID != id && c.TargetNodeID != id {
			kept = append(kept, c)
		}
	}
	g.connections = kept

	delete(g.nodes, id)
	for i, nid := range g.order {
		if nid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// Node returns the node with the given ID, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Connections returns the connections in creation order. The returned
// slice is a copy; the connections themselves are shared.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// Connect creates a connection between two nodes, or returns nil if the
// edge is not permitted. An edge is rejected when either node or port is
// missing, the port types are incompatible, the target input is already
// bound, or the edge would create a cycle. On success the connection
// carries the source output's type.
func (g *Graph) Connect(sourceID, sourcePort, targetID, targetPort string) *Connection {
	source, ok := g.nodes[sourceID]
	if !ok {
		return nil
	}
	target, ok := g.nodes[targetID]
	if !ok {
		return nil
	}

	out, ok := source.OutputPort(sourcePort)
	if !ok {
		return nil
	}
	in, ok := target.InputPort(targetPort)
	if !ok {
		return nil
	}

	if !out.CompatibleWith(in) {
		return nil
	}

	// At most one connection may feed a given input port.
	for _, c := range g.connections {
		if c.TargetNodeID == targetID && c.TargetPort == targetPort {
			return nil
		}
	}

	if g.reaches(targetID, sourceID) {
		return nil
	}

	conn := &Connection{
		ID:           uuid.NewString(),
		SourceNodeID: sourceID,
		SourcePort:   sourcePort,
		TargetNodeID: targetID,
		TargetPort:   targetPort,
		Type:         out.Type,
	}
	g.connections = append(g.connections, conn)
	return conn
}

// reaches reports whether to is reachable from from over existing
// connections. A node trivially reaches itself.
func (g *Graph) reaches(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, c := range g.connections {
			if c.SourceNodeID != id {
				continue
			}
			if c.TargetNodeID == to {
				return true
			}
			stack = append(stack, c.TargetNodeID)
		}
	}
	return false
}

// Validate checks every node and the whole-graph invariants, returning the
// accumulated problems. Validation never blocks lowering; an invalid graph
// may still be lowered with per-node degradation.
func (g *Graph) Validate() []ValidationError {
	var errs []ValidationError

	for _, id := range g.order {
		errs = append(errs, g.nodes[id].Validate()...)
	}

	for _, c := range g.connections {
		if _, ok := g.nodes[c.SourceNodeID]; !ok {
			errs = append(errs, ValidationError{
				Message: fmt.Sprintf("connection references missing source node: %s", c.SourceNodeID),
			})
		}
		if _, ok := g.nodes[c.TargetNodeID]; !ok {
			errs = append(errs, ValidationError{
				Message: fmt.Sprintf("connection references missing target node: %s", c.TargetNodeID),
			})
		}
	}

	if g.hasCycles() {
		errs = append(errs, ValidationError{Message: "graph contains circular dependencies"})
	}

	return errs
}

// hasCycles detects a cycle via depth-first search with a recursion stack.
// Any back-edge into the active stack is a cycle.
func (g *Graph) hasCycles() bool {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		if recStack[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		recStack[id] = true

		for _, c := range g.connections {
			if c.SourceNodeID == id {
				if dfs(c.TargetNodeID) {
					return true
				}
			}
		}

		delete(recStack, id)
		return false
	}

	for _, id := range g.order {
		if !visited[id] {
			if dfs(id) {
				return true
			}
		}
	}
	return false
}

// ExecutionOrder computes the topological order for node emission using
// Kahn's algorithm. Zero-in-degree nodes seed the queue in insertion
// order; successors are enqueued in the order their controlling connection
// is visited. If the graph contains a cycle the order is unsaturated, and
// an empty slice is returned rather than a partial one.
func (g *Graph) ExecutionOrder() []string {
	inDegree := make(map[string]int, len(g.nodes))
	for _, id := range g.order {
		inDegree[id] = 0
	}
	for _, c := range g.connections {
		if _, ok := g.nodes[c.TargetNodeID]; ok {
			inDegree[c.TargetNodeID]++
		}
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)

		for _, c := range g.connections {
			if c.SourceNodeID != id {
				continue
			}
			inDegree[c.TargetNodeID]--
			if inDegree[c.TargetNodeID] == 0 {
				queue = append(queue, c.TargetNodeID)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil
	}
	return result
}
