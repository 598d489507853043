package badge

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultArticleHost is the content site whose article URLs are accepted.
const DefaultArticleHost = "dev.to"

// Theme selects one of the two color palettes.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named by s, or ThemeLight for anything else.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeLight
	}
}

// Component is an optional part of the card that can be hidden.
type Component string

const (
	ComponentReactions Component = "reactions"
	ComponentTags      Component = "tags"
	ComponentMinReads  Component = "minreads"
	ComponentImage     Component = "image"
)

// Hidden is the set of components requested to be left out. Unknown names
// are kept but match no component.
type Hidden map[Component]struct{}

// ParseHidden parses a comma-separated list such as "image, Tags".
func ParseHidden(s string) Hidden {
	h := Hidden{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			h[Component(tok)] = struct{}{}
		}
	}
	return h
}

// Has reports whether c is hidden.
func (h Hidden) Has(c Component) bool {
	_, ok := h[c]
	return ok
}

// Request is a validated badge request.
type Request struct {
	Username string
	Slug     string
	Theme    Theme
	Hidden   Hidden
}

// Reasons carried by InputError.
const (
	ReasonBadHost            = "bad-host"
	ReasonMalformedURL       = "malformed-url"
	ReasonMissingIdentifiers = "missing-identifiers"
)

// ErrInvalidInput is wrapped by every InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes why request parameters were rejected.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// IsInvalidInput reports whether err came from ParseRequest.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// ParseRequest builds a Request from query parameters. An article URL in
// "url" takes precedence over "username" and "slug"; its host must be
// articleHost (or its www. form).
func ParseRequest(q url.Values, articleHost string) (Request, error) {
	if articleHost == "" {
		articleHost = DefaultArticleHost
	}
	req := Request{
		Username: strings.TrimSpace(q.Get("username")),
		Slug:     strings.TrimSpace(q.Get("slug")),
		Theme:    ParseTheme(q.Get("theme")),
		Hidden:   ParseHidden(q.Get("hide")),
	}

	if raw := strings.TrimSpace(q.Get("url")); raw != "" {
		username, slug, err := splitArticleURL(raw, articleHost)
		if err != nil {
			return Request{}, err
		}
		req.Username, req.Slug = username, slug
	}

	if req.Username == "" || req.Slug == "" {
		return Request{}, &InputError{Reason: ReasonMissingIdentifiers}
	}
	return req, nil
}

func splitArticleURL(raw, articleHost string) (string, string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", &InputError{Reason: ReasonMalformedURL}
	}
	host := strings.ToLower(u.Hostname())
	want := strings.ToLower(articleHost)
	if host != want && host != "www."+want {
		return "", "", &InputError{Reason: ReasonBadHost}
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", "", nil
	}
	return segments[0], segments[1], nil
}
