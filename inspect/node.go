package inspect

import "overlay-window/ui/layout"

// Node represents a UI component in the inspection tree.
type Node struct {
	// Type is the component type (e.g., "Window", "Pill", "MenuButton").
	Type string `json:"type"`

	// ID is an optional identifier for the component.
	ID string `json:"id,omitempty"`

	// Bounds is where the component sits on the terminal grid.
	Bounds Bounds `json:"bounds"`

	// Visible indicates if the component is currently rendered.
	Visible bool `json:"visible"`

	// State contains component-specific state information.
	State map[string]interface{} `json:"state,omitempty"`

	// Children contains child components.
	Children []*Node `json:"children,omitempty"`
}

// Bounds represents component position and dimensions in cells.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewNode creates a new Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithCells sets the bounds from a cell rectangle. Empty rectangles mark the
// node invisible.
func (n *Node) WithCells(r layout.CellRect) *Node {
	n.Visible = !r.Empty()
	return n.WithBounds(r.Col, r.Row, r.Width, r.Height)
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Find returns the first node of the given type in depth-first order.
func (n *Node) Find(nodeType string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(nodeType); found != nil {
			return found
		}
	}
	return nil
}
