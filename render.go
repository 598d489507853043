package devtobadge

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/azis14/devto-badge/badge"
)

// RenderStatus writes an SVG templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, badge.ContentType)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
