package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNotFound is returned when the content API has no such article.
	ErrNotFound = errors.New("article not found")
	// ErrUpstream covers every other lookup failure: transport errors,
	// unexpected statuses and undecodable bodies.
	ErrUpstream = errors.New("content api request failed")
)

// IsNotFound reports whether err means the article does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpstream reports whether err is a content API failure.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

const (
	// DefaultBaseURL is the public dev.to API root.
	DefaultBaseURL = "https://dev.to/api"

	defaultTimeout       = 10 * time.Second
	defaultUserAgent     = "devto-badge/1.0"
	defaultMaxImageBytes = 5 << 20 // 5MB
	maxArticleBytes      = 2 << 20
	acceptArticle        = "application/vnd.forem.api-v1+json"
)

var tracer = otel.Tracer("github.com/azis14/devto-badge/article")

// Client fetches articles and images from the content API. It is safe for
// concurrent use.
type Client struct {
	baseURL       string
	http          *http.Client
	userAgent     string
	maxImageBytes int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent sent upstream.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxImageBytes caps the size of a single fetched image.
func WithMaxImageBytes(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxImageBytes = n
		}
	}
}

// NewClient creates a Client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: defaultTimeout},
		userAgent:     defaultUserAgent,
		maxImageBytes: defaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches a single article by its author's username and slug.
func (c *Client) Lookup(ctx context.Context, username, slug string) (Article, error) {
	ctx, span := tracer.Start(ctx, "article.Lookup", trace.WithAttributes(
		attribute.String("article.username", username),
		attribute.String("article.slug", slug),
	))
	defer span.End()

	endpoint := c.baseURL + "/articles/" + url.PathEscape(username) + "/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Article{}, recordErr(span, fmt.Errorf("%w: build request: %w", ErrUpstream, err))
	}
	req.Header.Set("Accept", acceptArticle)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Article{}, recordErr(span, fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Article{}, recordErr(span, fmt.Errorf("%w: %s/%s", ErrNotFound, username, slug))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Article{}, recordErr(span, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}

	var body apiArticle
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxArticleBytes)).Decode(&body); err != nil {
		return Article{}, recordErr(span, fmt.Errorf("%w: decode article: %w", ErrUpstream, err))
	}
	return body.toArticle(), nil
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
