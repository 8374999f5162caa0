package templates

// Node is one vertex of a rendered graph.
type Node struct {
	ID      uint64
	Kind    string
	Label   string
	Flags   string
	Version uint64
}

// Caption is the DOT label: the node label, with its flags on a second line
// when it has any.
func (n Node) Caption() string {
	if n.Flags == "" {
		return n.Label
	}
	return n.Label + "\n" + n.Flags
}

func (n Node) Shape() string {
	switch n.Kind {
	case "effect":
		return "box"
	case "computed":
		return "ellipse"
	default:
		return "circle"
	}
}

// Edge points from a dep to one of its subscribers.
type Edge struct {
	From    uint64
	To      uint64
	Version int64
	// Subscribed is false when the link exists on the subscriber side only,
	// as for a computed nobody observes.
	Subscribed bool
}

func (e Edge) Style() string {
	if e.Subscribed {
		return "solid"
	}
	return "dashed"
}
