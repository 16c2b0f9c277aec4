package postprocess

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// foldLooseLists folds the renderer's loose day-heading pattern
//
//	<p><strong>Day</strong></p>
//	<ul>...</ul>
//
// into a single nested list item, so paste targets keep the heading and its
// list together. Only the exact sibling shape is touched, a paragraph that
// already sits inside a list item is considered folded.
func foldLooseLists(root *html.Node) {
	for _, p := range collectElements(root, "p") {
		if findElement(p, atom.Strong) == nil {
			continue
		}
		if p.Parent != nil && p.Parent.DataAtom == atom.Li {
			continue
		}
		ul := nextElementSibling(p)
		if ul == nil || ul.DataAtom != atom.Ul {
			continue
		}

		parent := p.Parent
		if parent == nil {
			continue
		}
		mark := ul.NextSibling

		outer := newElement("ul")
		li := newElement("li")
		outer.AppendChild(li)

		// whitespace between p and ul goes with them
		for n := p; n != nil && n != mark; {
			next := n.NextSibling
			parent.RemoveChild(n)
			li.AppendChild(n)
			n = next
		}
		parent.InsertBefore(outer, mark)
	}
}

// decodeEntities undoes entity escaping layered on by upstream templating.
// Runs to a fixed point: however many times a fragment was autoescaped on
// the way in, it comes out as markup exactly once.
func decodeEntities(in string) string {
	replacer := strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
	for range 10 {
		out := replacer.Replace(in)
		if out == in {
			return out
		}
		in = out
	}
	return in
}
