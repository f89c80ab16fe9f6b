package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/config"
	"github.com/scalexlabs/marketing-dashboard/internal/queue"
	"github.com/scalexlabs/marketing-dashboard/internal/repository"
	"github.com/scalexlabs/marketing-dashboard/internal/secrets"
	queue_publisher "github.com/scalexlabs/marketing-dashboard/internal/service"
	"github.com/scalexlabs/marketing-dashboard/internal/session"
	"github.com/scalexlabs/marketing-dashboard/internal/tenant"
	"github.com/scalexlabs/marketing-dashboard/internal/utils"
)

// AuthHandler bundles dependencies for the login, logout and registration
// endpoints. Every failure path is converted into a redirect carrying an
// error tag; nothing surfaces as a hard HTTP failure.
type AuthHandler struct {
	Cfg      config.Config
	Users    repository.UserStore
	Tenants  tenant.Directory
	Secrets  secrets.Resolver
	Sessions session.Store
	Events   *queue_publisher.Publisher
}

var loginErrorMessages = map[string]string{
	"incorrect_password": "Incorrect password. Please try again.",
	"user_not_exist":     "No account found for that App ID.",
	"unexpected":         "Something went wrong. Please try again.",
}

var registerErrorMessages = map[string]string{
	"password_mismatch": "Passwords do not match.",
	"invalid_app":       "This App ID is not registered with us.",
	"app_id_exists":     "An account for this App ID already exists.",
	"unexpected":        "Something went wrong. Please try again.",
}

// LoginPage renders the login form, with an inline message when the request
// carries an error tag from a prior redirect.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Error": loginErrorMessages[c.QueryParam("error")],
	})
}

// Login verifies the submitted credentials against the users table, then
// resolves the tenant's own database credentials and writes a fresh session.
func (h *AuthHandler) Login(c echo.Context) error {
	appID := strings.TrimSpace(c.FormValue("app_id"))
	password := c.FormValue("password")
	ctx := c.Request().Context()

	u, err := h.Users.Find(ctx, appID)
	if err != nil {
		log.Printf("auth: login lookup failed for app_id=%s: %v", appID, err)
		return c.Redirect(http.StatusFound, "/login?error=unexpected")
	}
	if u == nil {
		log.Printf("auth: login failed, app_id %s does not exist", appID)
		return c.Redirect(http.StatusFound, "/login?error=user_not_exist")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		log.Printf("auth: incorrect password for app_id=%s", appID)
		return c.Redirect(http.StatusFound, "/login?error=incorrect_password")
	}

	// Discard whatever session the client already holds before issuing a
	// new one.
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		_ = h.Sessions.Clear(ctx, cookie.Value)
	}

	dbConfig, err := h.Secrets.Resolve(ctx, secrets.TenantSecretName(appID))
	if err != nil {
		log.Printf("auth: tenant credentials unavailable for app_id=%s: %v", appID, err)
		return c.Redirect(http.StatusFound, "/login?error=unexpected")
	}

	token := session.NewToken()
	rec := session.Record{User: appID, DBConfig: dbConfig, LastActive: time.Now().UTC()}
	if err := h.Sessions.Set(ctx, token, rec); err != nil {
		log.Printf("auth: session write failed for app_id=%s: %v", appID, err)
		return c.Redirect(http.StatusFound, "/login?error=unexpected")
	}
	c.SetCookie(h.sessionCookie(token, int(h.Cfg.SessionTTL/time.Second)))

	_ = h.Events.UserLoggedIn(ctx, queue.UserLoggedInEvent{
		AppID:      appID,
		LoggedInAt: rec.LastActive.Format(time.RFC3339),
	})
	log.Printf("auth: user %s logged in", appID)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the server-side record and expires the cookie. Safe to call
// without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		_ = h.Sessions.Clear(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{
		"Error": registerErrorMessages[c.QueryParam("error")],
	})
}

// Register validates the form, verifies the app id against the tenant
// directory and inserts the user. Both preconditions run before any write.
func (h *AuthHandler) Register(c echo.Context) error {
	appID := strings.TrimSpace(c.FormValue("app_id"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")
	clientID := strings.TrimSpace(c.FormValue("client_id"))
	email := strings.TrimSpace(c.FormValue("email"))
	ctx := c.Request().Context()

	if password != confirm {
		return c.Redirect(http.StatusFound, "/register?error=password_mismatch")
	}
	if !h.Tenants.Exists(ctx, appID) {
		log.Printf("auth: registration rejected, app_id %s not in tenant directory", appID)
		return c.Redirect(http.StatusFound, "/register?error=invalid_app")
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("auth: password hash failed for app_id=%s: %v", appID, err)
		return c.Redirect(http.StatusFound, "/register?error=unexpected")
	}

	err = h.Users.Create(ctx, repository.User{
		AppID:        appID,
		PasswordHash: hash,
		ClientID:     clientID,
		Email:        email,
	})
	if err == repository.ErrAppIDExists {
		return c.Redirect(http.StatusFound, "/register?error=app_id_exists")
	}
	if err != nil {
		log.Printf("auth: registration failed for app_id=%s: %v", appID, err)
		return c.Redirect(http.StatusFound, "/register?error=unexpected")
	}

	_ = h.Events.UserRegistered(ctx, queue.UserRegisteredEvent{
		AppID:        appID,
		ClientID:     clientID,
		Email:        email,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})
	log.Printf("auth: user %s registered", appID)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
