// Package postprocess rewrites rendered bulletin HTML into a shape that
// survives delivery: inline-styled markup for email clients, simplified
// body-only markup for web paste targets. The whole pipeline is a pure
// function over strings and is idempotent, reprocessing its own output
// changes nothing.
package postprocess

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"bbld/common"
)

// Options carries the theme and target tweaks a profile needs. The zero
// value is usable, missing colors fall back to the stock theme.
type Options struct {
	// PrimaryColor and OnPrimaryColor are the theme colors used for
	// generated buttons, as #rrggbb.
	PrimaryColor   string
	OnPrimaryColor string
	// SidePadding is the horizontal gutter in px forced onto containers of
	// recognized TOC lists for paste targets. Zero disables it.
	SidePadding int
	// ConvertAVIF points AVIF image URLs at their JPEG fallbacks.
	ConvertAVIF bool
	// Minify strips newlines and indentation from the final document.
	Minify bool
}

const (
	defaultPrimaryColor   = "#103040"
	defaultOnPrimaryColor = "#ffffff"
)

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PrimaryColor:   defaultPrimaryColor,
		OnPrimaryColor: defaultOnPrimaryColor,
		SidePadding:    16,
		ConvertAVIF:    true,
	}
}

type pass struct {
	name string
	fn   func(string) string
}

// Processor runs the pass sequence of one profile. It is stateless between
// calls and safe for concurrent use, every call parses and discards its own
// tree.
type Processor struct {
	profile common.Profile
	opts    Options
	log     *zap.Logger
	passes  []pass

	// Observe, when set, receives the intermediate document after every
	// pass. Used to capture per-pass snapshots for debug reports.
	Observe func(pass string, doc string)
}

// NewProcessor creates a processor for the given target profile.
func NewProcessor(profile common.Profile, opts Options, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PrimaryColor == "" {
		opts.PrimaryColor = defaultPrimaryColor
	}
	if opts.OnPrimaryColor == "" {
		opts.OnPrimaryColor = defaultOnPrimaryColor
	}

	p := &Processor{
		profile: profile,
		opts:    opts,
		log:     log.Named("postprocess"),
	}
	p.passes = p.buildPasses()
	return p
}

func (p *Processor) buildPasses() []pass {
	var passes []pass

	switch p.profile {
	case common.ProfileEmail:
		passes = append(passes,
			pass{"decode-entities", decodeEntities},
			pass{"sanitize", treePass(sanitizeLight)},
			pass{"tag-rules", treePass(func(body *html.Node) {
				enforceTagRules(body, false)
				fixAnnouncementPadding(body)
			})},
			pass{"toc", treePass(func(body *html.Node) {
				normalizeTOC(body, false, 0)
			})},
			pass{"lists", treePass(foldLooseLists)},
			pass{"cta", treePass(func(body *html.Node) {
				convertCTAButtons(body, p.opts.PrimaryColor, p.opts.OnPrimaryColor)
			})},
			pass{"urls", func(in string) string { return upgradeURLs(in, p.opts.ConvertAVIF) }},
		)

	case common.ProfileFrontsteps:
		passes = append(passes,
			pass{"decode-entities", decodeEntities},
			pass{"normalize", treePass(normalizeStructure)},
			pass{"tag-rules", treePass(func(body *html.Node) {
				enforceTagRules(body, true)
			})},
			pass{"toc", treePass(func(body *html.Node) {
				normalizeTOC(body, true, p.opts.SidePadding)
				assignHeadingIDs(body)
				replaceInternalAnchors(body)
			})},
			pass{"lists", treePass(foldLooseLists)},
			pass{"buttons", treePass(simplifyButtons)},
			pass{"urls", func(in string) string { return upgradeURLs(in, p.opts.ConvertAVIF) }},
		)

	default:
		// web preview keeps the document as rendered, mixed content is the
		// only thing worth fixing there
		passes = append(passes,
			pass{"urls", func(in string) string { return upgradeURLs(in, false) }},
		)
	}

	if p.opts.Minify {
		passes = append(passes, pass{"minify", minify})
	}
	return passes
}

// Process runs the full pass sequence over a rendered document. It never
// fails: a pass that cannot handle its input leaves the document as it was.
func (p *Processor) Process(doc string) string {
	out := doc
	for _, ps := range p.passes {
		out = p.runPass(ps, out)
		if p.Observe != nil {
			p.Observe(ps.name, out)
		}
	}
	return out
}

// runPass executes a single pass fail-open: on panic the input is returned
// unchanged. Never blocking an export beats losing a cosmetic rewrite, at
// the price of letting unparseable input through unmodified.
func (p *Processor) runPass(ps pass, in string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("Postprocessing pass failed - keeping document unchanged",
				zap.String("pass", ps.name), zap.Any("reason", r))
			out = in
		}
	}()

	out = ps.fn(in)
	if out != in {
		p.log.Debug("Postprocessing pass modified document",
			zap.String("pass", ps.name), zap.Int("before", len(in)), zap.Int("after", len(out)))
	}
	return out
}

// treePass lifts a tree rewrite into a string transformation: parse, apply
// to the body, serialize the body content back. Output never carries
// document wrappers.
func treePass(fn func(body *html.Node)) func(string) string {
	return func(in string) string {
		doc, err := parseDoc(in)
		if err != nil {
			return in
		}
		fn(documentBody(doc))
		out, err := renderBody(doc)
		if err != nil {
			return in
		}
		return out
	}
}

var rxLeadingSpace = regexp.MustCompile(`\n\s*`)

// minify drops newlines together with the following indentation. Whitespace
// inside a line is preserved, HTML needs single spaces between inline
// elements to keep words apart.
func minify(in string) string {
	return strings.TrimSpace(rxLeadingSpace.ReplaceAllString(in, ""))
}
