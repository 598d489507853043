// Package devtobadge serves SVG badges for dev.to articles, built with Go,
// Echo, templ and svgo.
//
// A badge is requested with either ?username=&slug= or ?url= pointing at an
// article. The App looks the article up, embeds its images inline and
// answers with a self-contained SVG that Markdown renderers can show as an
// image.
package devtobadge

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/azis14/devto-badge/article"
	"github.com/azis14/devto-badge/badge"
)

// App is the badge service. It wires together the content API client, the
// badge builder, handlers and middleware.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Logger  *zap.Logger
	Builder *badge.Builder

	httpClient *http.Client
	registry   *prometheus.Registry
	metrics    *metrics
}

// New creates an App with routes and middleware installed. Call Start to
// serve it, or use App.Echo directly as an http.Handler.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.Config.HTTPTimeout}
	}

	client := article.NewClient(a.Config.APIBaseURL,
		article.WithHTTPClient(a.httpClient),
		article.WithUserAgent(a.Config.UserAgent),
		article.WithMaxImageBytes(a.Config.MaxImageBytes),
	)
	a.Builder = badge.NewBuilder(client, client, a.Logger.Named("badge"))

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = newMetrics(a.registry)

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Start serves HTTP on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.Logger.Info("listening", zap.String("addr", a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/badge", a.handleBadge)
	e.GET("/healthz", handleHealth)

	if a.Config.MetricsEnabled {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: a.registry,
		}))
	}
}
