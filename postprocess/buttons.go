package postprocess

import (
	"strings"

	"golang.org/x/net/html"
)

// Button simplification for web paste targets. Editors there strip VML,
// conditional comments and most presentation-table styling, leaving button
// markup as an empty box. A plain underlined link survives everything.

const plainLinkStyle = "margin:0; padding:0; text-decoration:underline; color:inherit;"

// simplifyButtons collapses presentation tables wrapping a single anchor
// into that anchor, and strips heavy button styling down to an underline.
// Neither rewrite matches its own output.
func simplifyButtons(root *html.Node) {
	for _, table := range collectElements(root, "table") {
		if table.Parent == nil {
			// removed together with an enclosing table already collapsed
			continue
		}
		anchors := collectElements(table, "a")
		if len(anchors) != 1 ||
			len(collectElements(table, "tr")) > 2 ||
			len(collectElements(table, "td")) > 2 {
			continue
		}

		a := anchors[0]
		href, _ := getAttr(a, "href")
		label := strings.TrimSpace(elementText(a))
		if label == "" {
			label = ctaDefaultLabel
		}

		link := newElement("a",
			html.Attribute{Key: "href", Val: href},
			html.Attribute{Key: "style", Val: plainLinkStyle},
		)
		link.AppendChild(newText(label))
		replaceNode(table, link)
	}

	for _, a := range collectElements(root, "a") {
		style, _ := getAttr(a, "style")
		lower := strings.ToLower(style)
		if strings.Contains(lower, "display:inline-block") || strings.Contains(lower, "background-color") {
			setAttr(a, "style", plainLinkStyle)
		}
	}
}
