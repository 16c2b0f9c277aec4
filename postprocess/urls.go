package postprocess

import (
	"regexp"
	"strings"
)

// URL rewriting is deliberately string-level and attribute-scoped: it runs
// on the serialized document and touches only src/href attribute values, so
// URLs mentioned in visible text stay as written.

// safeHosts are known to serve everything over HTTPS. Only these get the
// scheme upgrade, a blind rewrite would break plain-HTTP community sites.
var safeHosts = []string{
	"lakealmanorcountryclub.com",
	"cdn-ip.allevents.in",
	"maps.app.goo.gl",
	"googleusercontent.com",
	"imgur.com",
	"allevents.in",
	"sierradailynews.com",
	"foreupsoftware.com",
	"us02web.zoom.us",
	"hoamco.zoom.us",
	"placehold.co",
}

// avifHosts serve a JPEG fallback at the same path for every AVIF asset.
// Email clients still lack AVIF support across the board.
var avifHosts = []string{
	"cdn-ip.allevents.in",
	"allevents.in",
	"lakealmanorcountryclub.com",
	"googleusercontent.com",
	"imgur.com",
}

var (
	rxHTTPAttr = regexp.MustCompile(`(?i)\b(src|href)(\s*=\s*["'])http://([^/"']+)`)
	rxAVIFAttr = regexp.MustCompile(`(?i)\b(src|href)(\s*=\s*["'])(https?://([^/"']+)[^"']*\.avif)((?:\?[^"']*)?)(["'])`)
)

func hostMatches(host string, list []string) bool {
	host = strings.ToLower(host)
	for _, h := range list {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// upgradeURLs rewrites src/href attribute values: http becomes https for
// known safe hosts, and when convertAVIF is set AVIF image URLs are pointed
// at their JPEG fallback with any query string preserved.
func upgradeURLs(in string, convertAVIF bool) string {
	out := rxHTTPAttr.ReplaceAllStringFunc(in, func(m string) string {
		parts := rxHTTPAttr.FindStringSubmatch(m)
		if !hostMatches(parts[3], safeHosts) {
			return m
		}
		return parts[1] + parts[2] + "https://" + parts[3]
	})

	if !convertAVIF {
		return out
	}

	return rxAVIFAttr.ReplaceAllStringFunc(out, func(m string) string {
		parts := rxAVIFAttr.FindStringSubmatch(m)
		if !hostMatches(parts[4], avifHosts) {
			return m
		}
		url := parts[3]
		return parts[1] + parts[2] + url[:len(url)-len(".avif")] + ".jpg" + parts[5] + parts[6]
	})
}
