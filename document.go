package loom

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk YAML form of a visual graph. It mirrors the
// Graph model but uses plain structs so files stay hand-editable.
type Document struct {
	Metadata    map[string]any       `yaml:"metadata,omitempty"`
	Nodes       []NodeDocument       `yaml:"nodes"`
	Connections []ConnectionDocument `yaml:"connections,omitempty"`
}

// NodeDocument is the YAML form of a single node.
type NodeDocument struct {
	ID         string         `yaml:"id,omitempty"`
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name,omitempty"`
	Position   []float64      `yaml:"position,omitempty"`
	Parameters map[string]any `yaml:"parameters,omitempty"`
	Inputs     []PortDocument `yaml:"inputs,omitempty"`
	Outputs    []PortDocument `yaml:"outputs,omitempty"`
	Comments   []string       `yaml:"comments,omitempty"`
	Docstring  string         `yaml:"docstring,omitempty"`
}

// PortDocument is the YAML form of an input or output port. Required and
// Default are only meaningful on inputs.
type PortDocument struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ConnectionDocument is the YAML form of an edge.
type ConnectionDocument struct {
	Source     string `yaml:"source"`
	SourcePort string `yaml:"source_port"`
	Target     string `yaml:"target"`
	TargetPort string `yaml:"target_port"`
}

// LoadDocument reads and decodes a graph document from a file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph document: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// DecodeDocument decodes a graph document from a reader.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}
	return &doc, nil
}

// Build assembles a Graph from the document. Nodes are added in document
// order; connections referring to unknown nodes or ports, or whose port
// types are incompatible, are rejected with an error naming the edge.
func (d *Document) Build() (*Graph, error) {
	g := NewGraph()
	for k, v := range d.Metadata {
		g.Metadata[k] = v
	}

	for i, nd := range d.Nodes {
		if nd.Kind == "" {
			return nil, fmt.Errorf("node %d: missing kind", i)
		}
		node := NewNode(NodeKind(nd.Kind))
		if nd.ID != "" {
			node.ID = nd.ID
		}
		node.Name = nd.Name
		if len(nd.Position) == 2 {
			node.Position = [2]float64{nd.Position[0], nd.Position[1]}
		}
		for k, v := range nd.Parameters {
			node.Parameters[k] = v
		}
		for _, p := range nd.Inputs {
			node.Inputs = append(node.Inputs, InputPort{
				Name:        p.Name,
				Type:        portType(p.Type),
				Required:    p.Required,
				Default:     p.Default,
				Description: p.Description,
			})
		}
		for _, p := range nd.Outputs {
			node.Outputs = append(node.Outputs, OutputPort{
				Name:        p.Name,
				Type:        portType(p.Type),
				Description: p.Description,
			})
		}
		node.Comments = append(node.Comments, nd.Comments...)
		node.Docstring = nd.Docstring
		g.AddNode(node)
	}

	for _, cd := range d.Connections {
		if _, ok := g.Node(cd.Source); !ok {
			return nil, fmt.Errorf("connection %s.%s -> %s.%s: unknown source node",
				cd.Source, cd.SourcePort, cd.Target, cd.TargetPort)
		}
		if _, ok := g.Node(cd.Target); !ok {
			return nil, fmt.Errorf("connection %s.%s -> %s.%s: unknown target node",
				cd.Source, cd.SourcePort, cd.Target, cd.TargetPort)
		}
		if c := g.Connect(cd.Source, cd.SourcePort, cd.Target, cd.TargetPort); c == nil {
			return nil, fmt.Errorf("connection %s.%s -> %s.%s: rejected",
				cd.Source, cd.SourcePort, cd.Target, cd.TargetPort)
		}
	}

	return g, nil
}

// FromGraph converts a graph back into its document form, preserving
// insertion order.
func FromGraph(g *Graph) *Document {
	doc := &Document{Metadata: g.Metadata}
	for _, node := range g.Nodes() {
		nd := NodeDocument{
			ID:         node.ID,
			Kind:       string(node.Kind),
			Name:       node.Name,
			Position:   []float64{node.Position[0], node.Position[1]},
			Parameters: node.Parameters,
			Comments:   node.Comments,
			Docstring:  node.Docstring,
		}
		for _, p := range node.Inputs {
			nd.Inputs = append(nd.Inputs, PortDocument{
				Name:        p.Name,
				Type:        string(p.Type),
				Required:    p.Required,
				Default:     p.Default,
				Description: p.Description,
			})
		}
		for _, p := range node.Outputs {
			nd.Outputs = append(nd.Outputs, PortDocument{
				Name:        p.Name,
				Type:        string(p.Type),
				Description: p.Description,
			})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, c := range g.Connections() {
		doc.Connections = append(doc.Connections, ConnectionDocument{
			Source:     c.SourceNodeID,
			SourcePort: c.SourcePort,
			Target:     c.TargetNodeID,
			TargetPort: c.TargetPort,
		})
	}
	return doc
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding graph document: %w", err)
	}
	return enc.Close()
}

// portType defaults an unspecified port type to object.
func portType(s string) TypeDescriptor {
	if s == "" {
		return TypeObject
	}
	return TypeDescriptor(s)
}
