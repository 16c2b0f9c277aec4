package postprocess

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bbld/css"
)

// Table-of-contents handling. A TOC is recognized purely by shape: a list
// where every item leads with an internal anchor. Styling is merged rather
// than replaced, so author overrides survive and repeated runs are no-ops.

var tocListStyle = []css.Property{
	{Name: "margin", Value: "0 0 24px 0"},
	{Name: "padding", Value: "0 16px"},
	{Name: "list-style", Value: "none"},
	{Name: "text-align", Value: "left"},
}

var tocListStyleStrict = []css.Property{
	{Name: "display", Value: "block"},
	{Name: "width", Value: "100%"},
}

const tocSeparatorStyle = "border:0;border-top:1px solid #e5e7eb;margin:16px 0;"

// isTOCList reports whether ul looks like a table of contents: it has at
// least one item and the first link of every item is an internal anchor.
func isTOCList(ul *html.Node) bool {
	seen := false
	for li := ul.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		seen = true
		a := firstAnchor(li)
		if a == nil {
			return false
		}
		href, _ := getAttr(a, "href")
		if !strings.HasPrefix(href, "#") {
			return false
		}
	}
	return seen
}

// firstAnchor returns the first descendant anchor that carries an href.
func firstAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if _, ok := getAttr(n, "href"); ok {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := firstAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

// normalizeTOC restyles recognized TOC lists and separates them from the
// following content with a single horizontal rule. strict additionally
// forces block layout and pads the enclosing table cell, which web paste
// targets need to keep the list from hugging the container edge.
func normalizeTOC(root *html.Node, strict bool, sidePadding int) {
	for _, ul := range collectElements(root, "ul") {
		if !isTOCList(ul) {
			continue
		}

		style, _ := getAttr(ul, "style")
		merged := tocListStyle
		if strict {
			merged = append(append([]css.Property{}, tocListStyle...), tocListStyleStrict...)
		}
		setAttr(ul, "style", css.MergeStyle(style, merged...))

		for li := ul.FirstChild; li != nil; li = li.NextSibling {
			if li.Type != html.ElementNode || li.Data != "li" {
				continue
			}
			liStyle, _ := getAttr(li, "style")
			setAttr(li, "style", css.MergeStyle(liStyle, css.Property{Name: "margin", Value: "0 0 6px 0"}))
		}

		if next := nextElementSibling(ul); next == nil || next.Data != "hr" {
			hr := newElement("hr", html.Attribute{Key: "style", Val: tocSeparatorStyle})
			if ul.Parent != nil {
				ul.Parent.InsertBefore(hr, ul.NextSibling)
			}
		}

		if strict && sidePadding > 0 {
			padContainer(ul, sidePadding)
		}
	}
}

// padContainer adds side padding to the nearest enclosing table cell, or to
// the table itself when the list is not inside a cell.
func padContainer(n *html.Node, sidePadding int) {
	var cell, table *html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.DataAtom {
		case atom.Td:
			if cell == nil {
				cell = p
			}
		case atom.Table:
			if table == nil {
				table = p
			}
		}
		if cell != nil {
			break
		}
	}

	target := cell
	if target == nil {
		target = table
	}
	if target == nil {
		return
	}

	pad := strconv.Itoa(sidePadding) + "px"
	style, _ := getAttr(target, "style")
	setAttr(target, "style", css.MergeStyle(style,
		css.Property{Name: "padding-left", Value: pad},
		css.Property{Name: "padding-right", Value: pad},
	))
}

// assignHeadingIDs gives every h2/h3 a stable slug id derived from the
// existing id or the heading text, deduplicated document-wide with numeric
// suffixes. Paste targets strip nothing here, so TOC anchors keep working
// after the markup round-trips through their editor.
func assignHeadingIDs(root *html.Node) {
	seen := make(map[string]bool)
	for _, h := range collectElements(root, "h2", "h3") {
		source, _ := getAttr(h, "id")
		if source == "" {
			source = truncateRunes(strings.TrimSpace(elementText(h)), 64)
		}
		base := slug.Make(source)
		if base == "" {
			base = "section"
		}
		id := base
		for i := 2; seen[id]; i++ {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		seen[id] = true
		setAttr(h, "id", id)
	}
}

// replaceInternalAnchors swaps anchors pointing at in-document fragments
// for plain spans. Web paste targets rewrite or strip fragment links, which
// leaves broken underlined text, a span degrades cleanly instead.
func replaceInternalAnchors(root *html.Node) {
	for _, a := range collectElements(root, "a") {
		href, ok := getAttr(a, "href")
		if !ok || !strings.HasPrefix(href, "#") {
			continue
		}
		span := newElement("span")
		for c := a.FirstChild; c != nil; {
			next := c.NextSibling
			a.RemoveChild(c)
			span.AppendChild(c)
			c = next
		}
		replaceNode(a, span)
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
