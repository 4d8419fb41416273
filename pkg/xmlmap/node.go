// Package xmlmap provides the declarative XML-attribute-to-entity mapping
// layer. A Schema describes how element attributes map to entity fields,
// with typed coercions resolved at schema-construction time and
// required-attribute validation. Entity-specific extraction (titles,
// dates, relationships) is layered by callers after the generic pass.
package xmlmap

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/capitolworks/legisync/pkg/errors"
)

// Node is one parsed XML element: its name, attributes, directly
// contained character data, and child elements in document order.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Parse reads a well-formed XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("xml", "", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{
				Name:  t.Name.Local,
				Attrs: make(map[string]string, len(t.Attr)),
			}
			for _, attr := range t.Attr {
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.NewParseError("xml", "", "multiple root elements", nil)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.NewParseError("xml", "", "no root element", nil)
	}
	trimText(root)
	return root, nil
}

// ParseFile reads and parses an XML document from disk.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	node, err := Parse(f)
	if err != nil {
		return nil, errors.WrapParse("xml", path, err)
	}
	return node, nil
}

func trimText(n *Node) {
	n.Text = strings.TrimSpace(n.Text)
	for _, child := range n.Children {
		trimText(child)
	}
}

// Attr returns the named attribute value, or the empty string when the
// attribute is absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// First returns the first descendant at the given slash-separated path,
// or nil when no element matches.
func (n *Node) First(path string) *Node {
	matches := n.All(path)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// All returns every descendant at the given slash-separated path, in
// document order. A path of "cosponsors/cosponsor" returns the cosponsor
// children of each cosponsors child.
func (n *Node) All(path string) []*Node {
	current := []*Node{n}
	for _, segment := range strings.Split(path, "/") {
		var next []*Node
		for _, node := range current {
			for _, child := range node.Children {
				if child.Name == segment {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current
}
