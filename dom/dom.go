// Package dom stores the document tree in an arena: nodes live in a flat
// slice and refer to each other with stable integer indices, so the tree
// carries no reference cycles and can be traversed both ways cheaply.
// The rendering pipeline only ever reads it.
package dom

import (
	"strings"

	"github.com/inkwellrender/inkwell/utils"
)

// NodeID is the arena index of a node. The root is always 0.
type NodeID = int

// None marks the absence of a node (the root's parent).
const None NodeID = -1

// Kind is the nature of a node.
type Kind uint8

const (
	ElementNode Kind = iota
	TextNode
)

// Attr is one element attribute, in document order.
type Attr struct {
	Name, Value string
}

type Node struct {
	Kind       Kind
	Tag        string // lowercase; empty for text nodes
	Attributes []Attr
	Text       string // text nodes only
	Parent     NodeID
	Children   []NodeID
}

// Document is the arena of nodes.
type Document struct {
	nodes []Node
}

// NewDocument returns a document holding only a root element.
func NewDocument(rootTag string) *Document {
	d := &Document{}
	d.nodes = append(d.nodes, Node{Kind: ElementNode, Tag: strings.ToLower(rootTag), Parent: None})
	return d
}

func (d *Document) Root() NodeID { return 0 }

func (d *Document) Node(id NodeID) *Node { return &d.nodes[id] }

// Size returns the number of nodes in the arena. Valid ids are [0, Size).
func (d *Document) Size() int { return len(d.nodes) }

// CreateElement appends an element node under parent and returns its id.
func (d *Document) CreateElement(tag string, attrs []Attr, parent NodeID) NodeID {
	return d.append(Node{Kind: ElementNode, Tag: strings.ToLower(tag), Attributes: attrs}, parent)
}

// CreateText appends a text node under parent and returns its id.
func (d *Document) CreateText(text string, parent NodeID) NodeID {
	return d.append(Node{Kind: TextNode, Text: text}, parent)
}

func (d *Document) append(n Node, parent NodeID) NodeID {
	id := NodeID(len(d.nodes))
	n.Parent = parent
	d.nodes = append(d.nodes, n)
	if parent != None {
		d.nodes[parent].Children = append(d.nodes[parent].Children, id)
	}
	return id
}

// Attr returns the value of the named attribute, if present.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	for _, a := range d.nodes[id].Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func (d *Document) ID(id NodeID) string {
	v, _ := d.Attr(id, "id")
	return v
}

// Classes returns the whitespace-separated class list of the element.
func (d *Document) Classes(id NodeID) []string {
	v, ok := d.Attr(id, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasClass reports whether the element carries the given class.
func (d *Document) HasClass(id NodeID, class string) bool {
	return utils.IsIn(d.Classes(id), class)
}

// IsElement reports whether id refers to an element node.
func (d *Document) IsElement(id NodeID) bool {
	return d.nodes[id].Kind == ElementNode
}
