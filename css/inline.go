// Package css implements parsing, merging and serialization of inline CSS
// declaration strings found in style attributes. Everything here is purely
// functional over strings: no I/O and no errors for malformed input, the
// parser keeps whatever it can make sense of and drops the rest.
package css

import (
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Property is a single CSS declaration. Name is always lower-case.
type Property struct {
	Name  string
	Value string
}

// Declarations is an ordered property set parsed from a style attribute
// value. Setting an existing property updates it in place, new properties
// are appended, so serialization is deterministic.
type Declarations struct {
	props []Property
	index map[string]int
}

// NewDeclarations creates an empty declaration set.
func NewDeclarations() *Declarations {
	return &Declarations{index: make(map[string]int)}
}

// ParseDeclarations parses a style attribute value into an ordered
// declaration set. Malformed chunks are skipped silently, duplicate
// properties keep their first position with the last value winning.
//
// Known limitation: a ';' inside a quoted url() value terminates the
// declaration early, same as the naive split it replaces.
func ParseDeclarations(style string) *Declarations {
	d := NewDeclarations()
	if strings.TrimSpace(style) == "" {
		return d
	}

	input := parse.NewInput(strings.NewReader(style))
	p := css.NewParser(input, true)

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return d
			}
			// Malformed chunk - skip it and keep going
			continue
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := strings.ToLower(strings.TrimSpace(string(data)))
			if name == "" {
				continue
			}
			if value := joinTokens(p.Values()); value != "" {
				d.Set(name, value)
			}
		}
	}
}

// joinTokens rebuilds a property value from CSS tokens, collapsing
// whitespace runs to single spaces.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 && parts[len(parts)-1] != " " {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// Len returns the number of declarations in the set.
func (d *Declarations) Len() int {
	return len(d.props)
}

// Get returns the value for a property name (case-insensitive).
func (d *Declarations) Get(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	if i, ok := d.index[strings.ToLower(name)]; ok {
		return d.props[i].Value, true
	}
	return "", false
}

// Set adds a property or overwrites an existing one without changing its
// position in the set.
func (d *Declarations) Set(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if i, ok := d.index[name]; ok {
		d.props[i].Value = value
		return
	}
	d.index[name] = len(d.props)
	d.props = append(d.props, Property{Name: name, Value: value})
}

// Merge overlays updates on top of the set, updates win on key collision.
func (d *Declarations) Merge(updates ...Property) {
	for _, p := range updates {
		d.Set(p.Name, p.Value)
	}
}

// String serializes declarations as "name:value" pairs joined by ';' in
// insertion order. Properties with empty values are omitted and a trailing
// ';' is appended only when the set is not empty.
func (d *Declarations) String() string {
	if d == nil || len(d.props) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range d.props {
		if p.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Name)
		b.WriteByte(':')
		b.WriteString(p.Value)
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte(';')
	return b.String()
}

// MergeStyle merges updates into an existing style attribute value without
// clobbering unrelated properties. This is the workhorse behind every "add
// or overwrite a CSS property" rewrite in the pipeline.
func MergeStyle(existing string, updates ...Property) string {
	d := ParseDeclarations(existing)
	d.Merge(updates...)
	return d.String()
}

// EnsureStylePrefix guarantees that the declarations of requiredPrefix are
// the first tokens of the returned style string, verbatim. Pre-existing
// occurrences of the exact required declarations are removed from the rest
// of the string, repeated ';' and whitespace runs are collapsed. A style
// that already starts with the required prefix (case-insensitively) is
// returned unchanged.
func EnsureStylePrefix(style, requiredPrefix string) string {
	style = strings.TrimSpace(style)
	requiredPrefix = strings.TrimSpace(requiredPrefix)
	if requiredPrefix == "" {
		return style
	}
	if !strings.HasSuffix(requiredPrefix, ";") {
		requiredPrefix += ";"
	}
	if strings.HasPrefix(strings.ToLower(style), strings.ToLower(requiredPrefix)) {
		return style
	}

	required := make(map[string]struct{})
	for _, tok := range strings.Split(requiredPrefix, ";") {
		tok = normalizeToken(tok)
		if tok != "" {
			required[tok] = struct{}{}
		}
	}

	var rest []string
	for _, tok := range strings.Split(style, ";") {
		trimmed := strings.TrimSpace(tok)
		if trimmed == "" {
			continue
		}
		if _, dup := required[normalizeToken(tok)]; dup {
			continue
		}
		rest = append(rest, trimmed)
	}

	if len(rest) == 0 {
		return requiredPrefix
	}
	return requiredPrefix + " " + strings.Join(rest, "; ") + ";"
}

// normalizeToken canonicalizes a single "name:value" chunk for duplicate
// detection: lower-cased with whitespace around name and value removed.
func normalizeToken(tok string) string {
	name, value, found := strings.Cut(tok, ":")
	if !found {
		return strings.ToLower(strings.TrimSpace(tok))
	}
	return strings.ToLower(strings.TrimSpace(name)) + ":" + strings.ToLower(strings.TrimSpace(value))
}
