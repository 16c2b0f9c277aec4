package postprocess

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Structural normalization converts HTML5 document markup into the flat,
// table-friendly shape legacy renderers expect. Paste targets reflow
// unknown semantic containers unpredictably, so everything becomes a div.

// semanticToDiv lists HTML5 sectioning elements demoted to plain divs.
var semanticToDiv = map[string]bool{
	"section": true,
	"article": true,
	"header":  true,
	"footer":  true,
	"main":    true,
	"aside":   true,
	"nav":     true,
}

// strippedElements are removed together with their content: none of them
// renders as text in an email client or a paste target.
var strippedElements = []string{"script", "style", "link", "iframe", "svg"}

// sanitizeLight removes non-content machinery (scripts, styles, external
// references) but leaves the rest of the markup alone. Used where the input
// already comes from a controlled table-based renderer.
func sanitizeLight(root *html.Node) {
	for _, n := range collectElements(root, "script", "link") {
		detach(n)
	}
}

// normalizeStructure rewrites a parsed tree in place for body-only paste
// targets:
//
//   - semantic HTML5 containers become divs
//   - picture elements collapse to their first img (sources dropped)
//   - center wrappers are unwrapped
//   - scripts, styles, external references and vector content are removed
//   - comments are stripped, conditional ones included
func normalizeStructure(root *html.Node) {
	for _, n := range collectElements(root, "section", "article", "header", "footer", "main", "aside", "nav") {
		if semanticToDiv[n.Data] {
			n.Data = "div"
			n.DataAtom = atom.Div
		}
	}

	for _, pic := range collectElements(root, "picture") {
		if img := findElement(pic, atom.Img); img != nil {
			detach(img)
			replaceNode(pic, img)
		} else {
			detach(pic)
		}
	}
	// sources outside picture are just as useless after the collapse
	for _, src := range collectElements(root, "source") {
		detach(src)
	}

	for _, c := range collectElements(root, "center") {
		unwrapNode(c)
	}

	for _, n := range collectElements(root, strippedElements...) {
		detach(n)
	}
	for _, f := range collectElements(root, "form") {
		unwrapNode(f)
	}

	for _, c := range collectComments(root) {
		detach(c)
	}
}
