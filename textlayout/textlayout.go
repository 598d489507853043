// Package textlayout prepares upstream article text for a fixed-width card.
// Upstream fields are plain text: they are cleaned of characters XML cannot
// carry, wrapped to at most two lines and escaped only when emitted.
package textlayout

import (
	"html"
	"strings"
)

// Character budgets per display line.
const (
	TitleBudget       = 45
	DescriptionBudget = 60
	MaxTags           = 3
)

// Ellipsis is appended to a second line that had to be cut short.
const Ellipsis = "..."

// tagSeparator sits between adjacent tags; the composer renders it with
// preserved whitespace so both spaces survive.
const tagSeparator = "  "

// Lines holds the display lines of one field, unescaped. A nil or empty
// Lines means the field is absent and takes no vertical space.
type Lines []string

// Escaped returns the lines with XML special characters replaced.
func (l Lines) Escaped() []string {
	out := make([]string, len(l))
	for i, s := range l {
		out[i] = Escape(s)
	}
	return out
}

// Text is the wrapped title and description of one article.
type Text struct {
	Title       Lines
	Description Lines
}

// Layout sanitizes and wraps an article's title and description.
func Layout(title, description string) Text {
	return Text{
		Title:       Wrap(Sanitize(title), TitleBudget),
		Description: Wrap(Sanitize(description), DescriptionBudget),
	}
}

// Escape replaces &, <, >, " and ' with XML entities.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Sanitize drops invalid UTF-8 and the control characters XML 1.0 forbids,
// then collapses runs of whitespace into single spaces. Anything that looks
// like markup is kept as text; Escape makes it safe.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(xmlChar, strings.ToValidUTF8(s, ""))
	return strings.Join(strings.Fields(s), " ")
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return ' '
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

// Wrap splits s into at most two lines of budget runes. The break falls on
// the last space at or before index budget, or exactly at budget when the
// text has no space there. A second line that still exceeds budget is cut to
// budget runes and suffixed with Ellipsis.
func Wrap(s string, budget int) Lines {
	if s == "" || budget <= 0 {
		return nil
	}
	r := []rune(s)
	if len(r) <= budget {
		return Lines{s}
	}

	cut, next := budget, budget
	for i := budget; i > 0; i-- {
		if r[i] == ' ' {
			cut, next = i, i+1
			break
		}
	}

	first := string(r[:cut])
	rest := r[next:]
	switch {
	case len(rest) == 0:
		return Lines{first}
	case len(rest) > budget:
		return Lines{first, string(rest[:budget]) + Ellipsis}
	}
	return Lines{first, string(rest)}
}

// Tags returns the first MaxTags non-empty tags, each prefixed with "#".
func Tags(tags []string) []string {
	parts := make([]string, 0, MaxTags)
	for _, t := range tags {
		t = strings.TrimLeft(Sanitize(t), "#")
		if t == "" {
			continue
		}
		parts = append(parts, "#"+t)
		if len(parts) == MaxTags {
			break
		}
	}
	return parts
}

// JoinTags joins tags produced by Tags into one strip.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// FormatTags renders the first MaxTags non-empty tags as "#a  #b  #c".
func FormatTags(tags []string) string {
	return JoinTags(Tags(tags))
}
