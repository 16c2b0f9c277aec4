package postprocess

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree helpers shared by all DOM-based passes. Every pass parses the
// incoming string into a fresh tree and serializes it back, so there is no
// shared mutable state between calls.

// parseDoc parses arbitrary (possibly malformed) HTML into a full document
// tree. The parser is error-tolerant and always synthesizes html/head/body
// wrappers around fragments.
func parseDoc(in string) (*html.Node, error) {
	return html.Parse(strings.NewReader(in))
}

// findElement returns the first element with the given atom in depth-first
// order, or nil.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// documentBody returns the body element of a parsed document, or the
// document itself when the parser produced none.
func documentBody(doc *html.Node) *html.Node {
	if body := findElement(doc, atom.Body); body != nil {
		return body
	}
	return doc
}

// renderBody serializes the children of the body element, producing a
// body-only fragment with no document wrappers.
func renderBody(doc *html.Node) (string, error) {
	body := documentBody(doc)
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// collectElements gathers elements matching any of the given tag names in
// depth-first order. Collecting before mutating keeps rewrites safe: passes
// never modify the tree they are still walking.
func collectElements(root *html.Node, names ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, name := range names {
				if n.Data == name {
					out = append(out, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// collectComments gathers all comment nodes under root.
func collectComments(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// getAttr returns the value of the named attribute and whether it exists.
func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr adds or overwrites an attribute, keeping its original position
// when it already exists so serialization stays deterministic.
func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// removeAttr deletes the named attribute if present.
func removeAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// detach removes a node from its parent.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// replaceNode swaps old for repl in old's parent.
func replaceNode(old, repl *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	detach(repl)
	parent.InsertBefore(repl, old)
	parent.RemoveChild(old)
}

// unwrapNode removes a node but keeps its children in place.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// nextElementSibling returns the next sibling that is an element, skipping
// whitespace text and comments.
func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		switch s.Type {
		case html.ElementNode:
			return s
		case html.TextNode:
			if strings.TrimSpace(s.Data) != "" {
				return nil
			}
		}
	}
	return nil
}

// elementText returns the concatenated text content of a node.
func elementText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// newElement creates a detached element node with the given tag name.
func newElement(name string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(name)),
		Data:     name,
		Attr:     attrs,
	}
}

// newText creates a detached text node.
func newText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
