package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
	"github.com/scalexlabs/marketing-dashboard/internal/kpi"
	"github.com/scalexlabs/marketing-dashboard/internal/session"
)

func seedSession(t *testing.T, store *session.MemoryStore) string {
	t.Helper()
	token := session.NewToken()
	err := store.Set(context.Background(), token, session.Record{
		User:     "acme",
		DBConfig: tenantBundle,
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return token
}

func authedRequest(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

func TestRootRedirectsToLogin(t *testing.T) {
	e := newApp(appDeps{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Errorf("code=%d loc=%q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestHealth(t *testing.T) {
	e := newApp(appDeps{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestDashboardWithoutSessionRedirects(t *testing.T) {
	e := newApp(appDeps{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Errorf("code=%d loc=%q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestDashboardWithStaleCookieRedirects(t *testing.T) {
	e := newApp(appDeps{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/dashboard", session.NewToken()))
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Errorf("code=%d loc=%q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestDashboardRendersForSession(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)
	e := newApp(appDeps{store: store})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/dashboard", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "acme") {
		t.Errorf("page does not mention the tenant: %q", rec.Body.String())
	}
}

func TestGetChartEngagementView(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)
	var gotCreds database.Credentials
	kpis := &fakeKPI{engagementFn: func(creds database.Credentials) kpi.Set {
		gotCreds = creds
		return kpi.Set{"Click-Through Rate": "25.0%"}
	}}
	e := newApp(appDeps{store: store, kpis: kpis})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/get_chart/business-kpis", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Click-Through Rate") || !strings.Contains(body, "25.0%") {
		t.Errorf("KPI row missing from page: %q", body)
	}
	// The engine must see the tenant's bundle from the session record.
	if gotCreds != tenantBundle {
		t.Errorf("engine got creds %+v", gotCreds)
	}
}

func TestGetChartCampaignView(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)
	kpis := &fakeKPI{campaignFn: func(database.Credentials) kpi.Set {
		return kpi.Set{"Impressions": 12000.0}
	}}
	e := newApp(appDeps{store: store, kpis: kpis})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/get_chart/key-performance-indicators", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Impressions") {
		t.Errorf("campaign row missing: %q", rec.Body.String())
	}
}

func TestGetChartUnknownID(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)
	e := newApp(appDeps{store: store})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/get_chart/something-else", token))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestGetChartEmptyKPISetRendersPlaceholder(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)
	kpis := &fakeKPI{engagementFn: func(database.Credentials) kpi.Set {
		return kpi.Set{}
	}}
	e := newApp(appDeps{store: store, kpis: kpis})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/get_chart/business-kpis", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No data available") {
		t.Errorf("placeholder missing: %q", rec.Body.String())
	}
}

func TestSessionInfoDevOnly(t *testing.T) {
	store := session.NewMemoryStore(session.DefaultTTL)
	token := seedSession(t, store)

	// Hidden outside the dev environment.
	e := newApp(appDeps{store: store, devMode: false})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/session", token))
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-dev status = %d, want 404", rec.Code)
	}

	e = newApp(appDeps{store: store, devMode: true})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, authedRequest("/session", token))
	if rec.Code != http.StatusOK {
		t.Fatalf("dev status = %d", rec.Code)
	}
	var payload map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data := payload["session data"]
	if data["user"] != "acme" {
		t.Errorf("user = %v", data["user"])
	}
	if data["db_config"] == nil {
		t.Error("db_config missing")
	}
}

func TestSessionInfoWithoutSession(t *testing.T) {
	e := newApp(appDeps{devMode: true})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data := payload["session data"]
	if data["user"] != nil || data["db_config"] != nil || data["last_active"] != nil {
		t.Errorf("expected null fields, got %v", data)
	}
}
