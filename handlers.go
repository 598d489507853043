package devtobadge

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/azis14/devto-badge/article"
	"github.com/azis14/devto-badge/badge"
)

// themeKey stores the resolved theme on the echo context so the error
// handler can draw the fallback card in the same palette.
const themeKey = "badge.theme"

func (a *App) handleBadge(c echo.Context) error {
	start := time.Now()

	req, err := badge.ParseRequest(c.QueryParams(), a.Config.ArticleHost)
	switch {
	case badge.IsInvalidInput(err):
		a.metrics.observe(outcomeInvalid, start)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case err != nil:
		a.metrics.observe(outcomeError, start)
		return err
	}
	c.Set(themeKey, req.Theme)

	out, err := a.Builder.Build(c.Request().Context(), req)
	switch {
	case article.IsNotFound(err):
		a.metrics.observe(outcomeNotFound, start)
		return echo.NewHTTPError(http.StatusNotFound, "article not found").SetInternal(err)
	case article.IsUpstream(err):
		a.metrics.observe(outcomeUpstream, start)
		return err
	case err != nil:
		a.metrics.observe(outcomeError, start)
		return err
	}

	outcome := outcomeOK
	if len(out.Missing) > 0 {
		outcome = outcomeDegraded
		a.metrics.missing(out.Missing)
		a.Logger.Info("badge rendered without some images",
			zap.String("username", req.Username),
			zap.String("slug", req.Slug),
			zap.Strings("missing", out.Missing),
		)
	}
	a.metrics.observe(outcome, start)

	c.Response().Header().Set("Cache-Control", out.CacheControl)
	return c.Blob(http.StatusOK, out.ContentType, out.Markup)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// httpErrorHandler answers client errors with plain text and everything
// else with the themed error card, so embedded badges never show as a
// broken image.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if code < http.StatusInternalServerError {
		_ = c.String(code, msg)
		return
	}

	a.Logger.Error("server error",
		zap.Error(err),
		zap.String("uri", c.Request().RequestURI),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
	_ = RenderStatus(c, code, badge.ErrorCard(themeFrom(c)))
}

func themeFrom(c echo.Context) badge.Theme {
	if t, ok := c.Get(themeKey).(badge.Theme); ok {
		return t
	}
	return badge.ThemeLight
}
