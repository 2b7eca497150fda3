package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ReadHTML parses markup with golang.org/x/net/html and copies the
// resulting tree into a fresh arena, rooted at the <html> element.
// Comments, doctypes and processing instructions are dropped.
func ReadHTML(r io.Reader) (*Document, error) {
	parsed, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	rootElement := findRootElement(parsed)
	if rootElement == nil {
		return nil, fmt.Errorf("no root element in document")
	}
	doc := NewDocument(rootElement.Data)
	doc.Node(doc.Root()).Attributes = convertAttributes(rootElement.Attr)
	for child := rootElement.FirstChild; child != nil; child = child.NextSibling {
		copyHTMLNode(doc, child, doc.Root())
	}
	return doc, nil
}

func findRootElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if el := findRootElement(child); el != nil {
			return el
		}
	}
	return nil
}

func copyHTMLNode(doc *Document, n *html.Node, parent NodeID) {
	switch n.Type {
	case html.ElementNode:
		id := doc.CreateElement(n.Data, convertAttributes(n.Attr), parent)
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			copyHTMLNode(doc, child, id)
		}
	case html.TextNode:
		doc.CreateText(n.Data, parent)
	}
	// other node types are ignored
}

func convertAttributes(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Name: strings.ToLower(a.Key), Value: a.Val}
	}
	return out
}
