// Package store persists the saved-game node tree. A Node mirrors the host's
// config-node format: a name, ordered named scalar values and child nodes.
package store

import "errors"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("store: snapshot not found")

// Value is one named scalar of a node.
type Value struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type Node struct {
	Name   string  `json:"name" yaml:"name"`
	Values []Value `json:"values,omitempty" yaml:"values,omitempty"`
	Nodes  []*Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

// AddValue appends a value even if one with the same name exists.
func (n *Node) AddValue(name, value string) {
	n.Values = append(n.Values, Value{Name: name, Value: value})
}

// SetValue replaces the first value called name, or appends it.
func (n *Node) SetValue(name, value string) {
	for i := range n.Values {
		if n.Values[i].Name == name {
			n.Values[i].Value = value
			return
		}
	}
	n.AddValue(name, value)
}

// GetValue returns the first value called name.
func (n *Node) GetValue(name string) (string, bool) {
	for _, v := range n.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

func (n *Node) HasValue(name string) bool {
	_, ok := n.GetValue(name)
	return ok
}

// AddNode appends a new child called name and returns it.
func (n *Node) AddNode(name string) *Node {
	child := NewNode(name)
	n.Nodes = append(n.Nodes, child)
	return child
}

// GetNode returns the first child called name, or nil.
func (n *Node) GetNode(name string) *Node {
	for _, c := range n.Nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GetNodes returns every child called name in order.
func (n *Node) GetNodes(name string) []*Node {
	var out []*Node
	for _, c := range n.Nodes {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// RemoveNodes drops every child called name.
func (n *Node) RemoveNodes(name string) {
	kept := n.Nodes[:0]
	for _, c := range n.Nodes {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(n.Nodes); i++ {
		n.Nodes[i] = nil
	}
	if len(kept) == 0 {
		kept = nil
	}
	n.Nodes = kept
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Name: n.Name}
	if len(n.Values) > 0 {
		c.Values = append([]Value(nil), n.Values...)
	}
	for _, child := range n.Nodes {
		c.Nodes = append(c.Nodes, child.Clone())
	}
	return c
}
