// Package router wires HTTP routes to their handlers for both binaries.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/scalexlabs/marketing-dashboard/internal/handler"
	"github.com/scalexlabs/marketing-dashboard/internal/middleware"
	"github.com/scalexlabs/marketing-dashboard/internal/session"
)

// RegisterDashboard registers the dashboard application's routes. The
// limiter wraps only the credential-bearing POSTs. The session diagnostic
// is exposed only in the dev environment because its payload includes
// resolved database credentials.
func RegisterDashboard(e *echo.Echo, a *handler.AuthHandler, d *handler.DashboardHandler, sessions session.Store, limiter echo.MiddlewareFunc, devMode bool) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)

	e.GET("/login", a.LoginPage)
	e.POST("/login", a.Login, limiter)
	e.GET("/logout", a.Logout)
	e.GET("/register", a.RegisterPage)
	e.POST("/register", a.Register, limiter)

	requireSession := middleware.RequireSession(sessions)
	e.GET("/dashboard", d.Dashboard, requireSession)
	e.GET("/get_chart/:chart_id", d.GetChart, requireSession)

	if devMode {
		e.GET("/session", d.SessionInfo)
	}
}

// RegisterMockAPI registers the static chart API. CORS stays permissive so
// the statically hosted frontend can call it cross-origin.
func RegisterMockAPI(e *echo.Echo, h *handler.ChartHandler) {
	e.Use(echomw.CORS())
	e.POST("/api/v1/chart/:chart_id", h.GetChart)
}
