package ast

import "encoding/json"

// jsonNode is the serialized form of a Node: {kind, left, right, children}.
// The same struct drives the YAML encoding.
type jsonNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Left     int         `json:"left" yaml:"left"`
	Right    int         `json:"right" yaml:"right"`
	Children []*jsonNode `json:"children" yaml:"children,omitempty"`
}

// MarshalJSON encodes the node and its subtree.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.toJSON(), nil
}

// UnmarshalJSON decodes a tree written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return err
	}
	*n = *fromJSON(&jn)
	return nil
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind:     string(n.Kind),
		Left:     n.Range.Left,
		Right:    n.Range.Right,
		Children: make([]*jsonNode, len(n.Children)),
	}
	for i, child := range n.Children {
		jn.Children[i] = child.toJSON()
	}
	return jn
}

func fromJSON(jn *jsonNode) *Node {
	n := New(Kind(jn.Kind), jn.Left, jn.Right)
	for _, c := range jn.Children {
		n.AddChild(fromJSON(c))
	}
	return n
}
