package devtobadge

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/azis14/devto-badge/article"
	"github.com/azis14/devto-badge/badge"
)

// Config holds all configuration for the badge service. Field tags match
// the keys read by the command line loader.
type Config struct {
	Addr          string        `mapstructure:"addr"`            // Listen address (default ":3000")
	APIBaseURL    string        `mapstructure:"api_base_url"`    // Content API root (default "https://dev.to/api")
	ArticleHost   string        `mapstructure:"article_host"`    // Host accepted in ?url= (default "dev.to")
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`    // Upstream request timeout (default 10s)
	MaxImageBytes int64         `mapstructure:"max_image_bytes"` // Largest image that will be embedded (default 5MB)
	UserAgent     string        `mapstructure:"user_agent"`      // User-Agent sent upstream
	ServiceName   string        `mapstructure:"service_name"`    // Name used for trace spans (default "devto-badge")

	MetricsEnabled bool `mapstructure:"metrics_enabled"` // Serve /metrics
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = article.DefaultBaseURL
	}
	if c.ArticleHost == "" {
		c.ArticleHost = badge.DefaultArticleHost
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.MaxImageBytes == 0 {
		c.MaxImageBytes = 5 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = "devto-badge/1.0 (+https://github.com/azis14/devto-badge)"
	}
	if c.ServiceName == "" {
		c.ServiceName = "devto-badge"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used by the App and its builder.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Logger = l
		}
	}
}

// WithHTTPClient sets the client used for every upstream request. Its own
// timeout applies instead of Config.HTTPTimeout.
func WithHTTPClient(h *http.Client) Option {
	return func(a *App) {
		a.httpClient = h
	}
}
