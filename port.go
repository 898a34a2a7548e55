package loom

// InputPort is a typed input socket on a node.
type InputPort struct {
	// Name identifies the port within the node's input set.
	Name string
	// Type is the nominal type accepted by this port.
	Type TypeDescriptor
	// Required reports whether a binding or default must be present.
	Required bool
	// Default is the literal used when no connection binds the port.
	Default any
	// Description is free-form documentation for tooling.
	Description string
}

// OutputPort is a typed output socket on a node.
type OutputPort struct {
	Name        string
	Type        TypeDescriptor
	Description string
}

// CompatibleWith reports whether this output may feed the given input.
// The underlying check is symmetric; see Compatible.
func (p OutputPort) CompatibleWith(in InputPort) bool {
	return Compatible(p.Type, in.Type)
}
