// Package render expands bulletin sections and settings into the raw
// table-based HTML the postprocessing pipeline consumes.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
)

//go:embed bulletin.html.tmpl
var bulletinTemplate string

// Section is a single bulletin entry. Free-text fields are escaped during
// rendering; Body is inserted verbatim when RawHTML is set, which is how
// hand-written markup from content forms reaches the pipeline.
type Section struct {
	Type     string `yaml:"type"`
	Title    string `yaml:"title,omitempty"`
	Body     string `yaml:"body,omitempty"`
	RawHTML  bool   `yaml:"raw_html,omitempty"`
	Date     string `yaml:"date,omitempty"`
	Time     string `yaml:"time,omitempty"`
	Location string `yaml:"location,omitempty"`
	Link     string `yaml:"link,omitempty"`
	LinkText string `yaml:"link_text,omitempty"`
	ImageSrc string `yaml:"image_src,omitempty"`
	Alt      string `yaml:"alt,omitempty"`
}

// Section types understood by the renderer.
const (
	SectionAnnouncement = "announcement"
	SectionEvent        = "event"
	SectionImage        = "image"
	SectionText         = "text"
)

var knownSectionTypes = map[string]bool{
	SectionAnnouncement: true,
	SectionEvent:        true,
	SectionImage:        true,
	SectionText:         true,
}

// Bulletin is everything the renderer needs for one document.
type Bulletin struct {
	Title    string    `yaml:"title"`
	Date     string    `yaml:"date,omitempty"`
	Primary  string    `yaml:"primary,omitempty"`
	Sections []Section `yaml:"sections"`
}

// HasTOC reports whether a table of contents will be emitted: at least one
// section must carry a title to link to.
func (b *Bulletin) HasTOC() bool {
	for _, s := range b.Sections {
		if s.Title != "" {
			return true
		}
	}
	return false
}

// Render produces the full HTML document for a bulletin. The output is raw
// renderer dialect, callers are expected to push it through a
// postprocessing profile before delivery.
func Render(b *Bulletin) (string, error) {
	for i, s := range b.Sections {
		if !knownSectionTypes[s.Type] {
			return "", fmt.Errorf("unknown section type %q (section %d)", s.Type, i)
		}
	}

	funcMap := sprig.FuncMap()
	funcMap["escape"] = html.EscapeString
	funcMap["slugify"] = slug.Make

	tmpl, err := template.New("bulletin").Funcs(funcMap).Parse(bulletinTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to parse bulletin template: %w", err)
	}

	primary := strings.TrimSpace(b.Primary)
	if primary == "" {
		primary = "#103040"
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, struct {
		*Bulletin
		PrimaryColor string
	}{b, primary}); err != nil {
		return "", fmt.Errorf("unable to render bulletin: %w", err)
	}
	return buf.String(), nil
}
