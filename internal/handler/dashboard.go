package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
	"github.com/scalexlabs/marketing-dashboard/internal/kpi"
	"github.com/scalexlabs/marketing-dashboard/internal/middleware"
	"github.com/scalexlabs/marketing-dashboard/internal/session"
)

// KPIProvider computes KPI sets from a tenant's database credentials.
// Implemented by *kpi.Engine; faked in tests.
type KPIProvider interface {
	Engagement(ctx context.Context, creds database.Credentials) kpi.Set
	Campaign(ctx context.Context, creds database.Credentials) kpi.Set
}

// DashboardHandler serves the authenticated pages and the dev-only session
// diagnostic.
type DashboardHandler struct {
	Sessions session.Store
	KPI      KPIProvider
}

// Root redirects the bare host to the login page.
func Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// Health reports liveness for load balancers.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Dashboard renders the main analysis page for the logged-in tenant.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"AppID": c.Get(middleware.CtxAppID),
	})
}

// GetChart dispatches the two KPI views. An empty KPI set means the data
// was unavailable; the template renders placeholders, not an error page.
func (h *DashboardHandler) GetChart(c echo.Context) error {
	rec := c.Get(middleware.CtxSession).(*session.Record)
	chartID := c.Param("chart_id")
	log.Printf("dashboard: chart_id=%s app_id=%s", chartID, rec.User)

	switch chartID {
	case "business-kpis":
		kpis := h.KPI.Engagement(c.Request().Context(), rec.DBConfig)
		return c.Render(http.StatusOK, "kpi_chart.html", echo.Map{"AppID": rec.User, "KPIs": kpis})
	case "key-performance-indicators":
		kpis := h.KPI.Campaign(c.Request().Context(), rec.DBConfig)
		return c.Render(http.StatusOK, "campaign_kpi_chart.html", echo.Map{"AppID": rec.User, "KPIs": kpis})
	}
	return c.NoContent(http.StatusNoContent)
}

// SessionInfo dumps the caller's session record. Registered only in the dev
// environment: the record contains resolved database credentials.
func (h *DashboardHandler) SessionInfo(c echo.Context) error {
	data := echo.Map{"user": nil, "db_config": nil, "last_active": nil}
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if rec, err := h.Sessions.Get(c.Request().Context(), cookie.Value); err == nil {
			data["user"] = rec.User
			data["db_config"] = rec.DBConfig
			data["last_active"] = rec.LastActive
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"session data": data})
}
