// Package middleware contains reusable HTTP middleware for the dashboard.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/session"
)

// Context keys populated by RequireSession for downstream handlers.
const (
	CtxAppID        = "app_id"
	CtxSession      = "session"
	CtxSessionToken = "session_token"
)

// RequireSession guards a route behind a live session. A request without a
// cookie, or whose token resolves to no record, is redirected to the login
// page rather than erroring.
func RequireSession(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			rec, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil || rec == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(CtxAppID, rec.User)
			c.Set(CtxSession, rec)
			c.Set(CtxSessionToken, cookie.Value)
			return next(c)
		}
	}
}
