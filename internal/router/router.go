// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shootit/greme/internal/handler"
	"github.com/shootit/greme/internal/middleware"
	"github.com/shootit/greme/internal/server"
)

// New builds the Echo instance with the global middleware chain and all
// route groups registered.
//
// Middleware order matters: request id first so every later layer can
// correlate, then the New Relic transaction, then the context enhancer
// that builds the request-scoped logger on top of both.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()

	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(middleware.RequestID())
	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Tracing.EnhanceTracing())
	r.Use(m.Global.CORS())
	r.Use(m.Global.Secure())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())

	registerSystemRoutes(r, h)
	registerAPIRoutes(r, h, m)

	return r
}
