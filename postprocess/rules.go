package postprocess

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"bbld/css"
)

// Baseline inline styles that email clients and paste targets must see on
// every structural tag. The values are load-bearing verbatim: downstream
// rewrites check for these exact prefixes to detect already-processed
// markup, so changing them invalidates previously published documents.
const (
	reqStyleLinkImage   = "margin:0; padding:0;"
	reqStyleTable       = "border-collapse:collapse;"
	reqStyleTableStrict = "border-collapse:collapse; border-spacing:0;"
	reqStyleCell        = "border:none;"
)

// rxAnnouncementPadding matches the renderer's default vertical-only cell
// padding which paste targets collapse into cramped rows.
var rxAnnouncementPadding = regexp.MustCompile(`(?i)padding\s*:\s*12px\s+0\s+12px\s+0`)

// enforceTagRules applies the baseline style rules to links, images, tables
// and cells. Elements whose style already starts with the required
// declarations are left byte-for-byte untouched. strict additionally pins
// border-spacing on tables for targets that apply their own table CSS.
func enforceTagRules(root *html.Node, strict bool) {
	reqTable := reqStyleTable
	if strict {
		reqTable = reqStyleTableStrict
	}

	for _, n := range collectElements(root, "a", "img") {
		dropEventHandlers(n)
		style, _ := getAttr(n, "style")
		setAttr(n, "style", css.EnsureStylePrefix(style, reqStyleLinkImage))
	}

	for _, n := range collectElements(root, "table") {
		style, _ := getAttr(n, "style")
		// tables only need collapse present somewhere, prefix position is
		// not meaningful for them
		if !strings.Contains(strings.ToLower(style), "border-collapse") {
			if strings.TrimSpace(style) == "" {
				setAttr(n, "style", reqTable)
			} else {
				setAttr(n, "style", reqTable+" "+strings.TrimSpace(style))
			}
		}
	}

	for _, n := range collectElements(root, "td") {
		style, _ := getAttr(n, "style")
		setAttr(n, "style", css.EnsureStylePrefix(style, reqStyleCell))
	}
}

// fixAnnouncementPadding widens vertical-only 12px cell padding to include
// 16px side gutters. Runs on email output where the renderer emits rows
// without horizontal breathing room.
func fixAnnouncementPadding(root *html.Node) {
	for _, n := range collectElements(root, "td") {
		style, ok := getAttr(n, "style")
		if !ok || !rxAnnouncementPadding.MatchString(style) {
			continue
		}
		setAttr(n, "style", css.MergeStyle(style, css.Property{Name: "padding", Value: "12px 16px"}))
	}
}

// dropEventHandlers removes on* attributes: scripts never survive the
// pipeline, so handler attributes are dead weight at best and a spam-filter
// trigger at worst.
func dropEventHandlers(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if strings.HasPrefix(strings.ToLower(a.Key), "on") && len(a.Key) > 2 {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
