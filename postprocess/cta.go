package postprocess

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CTA conversion. A paragraph whose only content is a single link is the
// renderer's "call to action" idiom. Gmail and Apple Mail render styled
// anchors fine, Outlook needs a VML roundrect behind a conditional comment,
// so the link is rebuilt as both wrapped in a presentation table.

const ctaDefaultLabel = "More Info"

// soleAnchor returns the single anchor making up the whole paragraph
// content, or nil if the paragraph contains anything else. Comments and
// non-whitespace text disqualify it.
func soleAnchor(p *html.Node) *html.Node {
	var a *html.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if c.DataAtom != atom.A || a != nil {
				return nil
			}
			a = c
		default:
			return nil
		}
	}
	return a
}

// convertCTAButtons replaces single-link paragraphs with button blocks in
// the theme colors. The generated markup is a fixed point of every other
// pass: required style prefixes are pre-applied and the block's shape no
// longer matches the paragraph pattern.
func convertCTAButtons(root *html.Node, primary, onPrimary string) {
	for _, p := range collectElements(root, "p") {
		a := soleAnchor(p)
		if a == nil {
			continue
		}

		href, _ := getAttr(a, "href")
		if strings.TrimSpace(href) == "" {
			href = "#"
		}
		label := strings.TrimSpace(elementText(a))
		if label == "" {
			label = ctaDefaultLabel
		}

		replaceNode(p, buildCTABlock(href, label, primary, onPrimary))
	}
}

func buildCTABlock(href, label, primary, onPrimary string) *html.Node {
	anchorStyle := fmt.Sprintf(
		"margin:0; padding:0; display:inline-block; background-color:%s; color:%s; "+
			"font-family:Arial, 'Helvetica Neue', Helvetica, sans-serif; font-size:16px; font-weight:bold; "+
			"line-height:36px; min-height:36px; border-radius:4px; padding-left:14px; padding-right:14px; "+
			"text-decoration:none; text-align:center;",
		primary, onPrimary)

	div := newElement("div", html.Attribute{Key: "style", Val: "margin:0; padding:0; font-size:16px; line-height:1; display:inline-block;"})
	table := newElement("table",
		html.Attribute{Key: "role", Val: "presentation"},
		html.Attribute{Key: "style", Val: "border-collapse:collapse; border-spacing:0; margin:0 auto;"},
		html.Attribute{Key: "cellspacing", Val: "0"},
		html.Attribute{Key: "cellpadding", Val: "0"},
	)
	tbody := newElement("tbody")
	tr := newElement("tr")
	td := newElement("td", html.Attribute{Key: "style", Val: "border:none; padding:0; text-align:center;"})

	div.AppendChild(table)
	table.AppendChild(tbody)
	tbody.AppendChild(tr)
	tr.AppendChild(td)

	// Outlook branch. Comment content is emitted raw, so both values are
	// scrubbed of anything that could terminate the comment early.
	mso := fmt.Sprintf(
		`[if mso]><v:roundrect xmlns:v="urn:schemas-microsoft-com:vml" href="%s" arcsize="12%%" stroke="f" fillcolor="%s" style="height:36px; v-text-anchor:middle; width:120px;"><w:anchorlock/><center style="color:%s; font-family:Arial, Helvetica, sans-serif; font-size:16px; font-weight:bold;">%s</center></v:roundrect><![endif]`,
		commentSafeAttr(href), primary, onPrimary, commentSafeText(label))
	td.AppendChild(&html.Node{Type: html.CommentNode, Data: mso})

	td.AppendChild(&html.Node{Type: html.CommentNode, Data: "[if !mso]><!-- "})
	anchor := newElement("a",
		html.Attribute{Key: "style", Val: anchorStyle},
		html.Attribute{Key: "href", Val: href},
		html.Attribute{Key: "target", Val: "_blank"},
		html.Attribute{Key: "rel", Val: "noopener"},
	)
	anchor.AppendChild(newText(label))
	td.AppendChild(anchor)
	td.AppendChild(&html.Node{Type: html.CommentNode, Data: "<![endif]"})

	return div
}

// commentSafeText makes a label safe for raw interpolation into a
// conditional comment: no markup, no comment terminator.
func commentSafeText(s string) string {
	s = decodeEntities(s)
	return strings.NewReplacer("<", "", ">", "", "--", "-").Replace(s)
}

// commentSafeAttr does the same for an attribute value, percent-encoding
// instead of dropping so URLs stay clickable.
func commentSafeAttr(s string) string {
	s = decodeEntities(s)
	return strings.NewReplacer(`"`, "%22", "<", "%3C", ">", "%3E").Replace(s)
}
