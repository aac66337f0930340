package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

func TestRecoverer(t *testing.T) {
	h := Recoverer(render.New(), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A server error occurred.") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestMethodOverride(t *testing.T) {
	var got string
	h := MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/api/products/1", nil)
	req.Header.Set("X-HTTP-Method-Override", "patch")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-HTTP-Method-Override", "DELETE")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != http.MethodGet {
		t.Errorf("GET was overridden to %s", got)
	}
}

func TestForwardedProto(t *testing.T) {
	var base string
	h := ForwardedProto(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base = helpers.RequestBaseURL(r)
	}))

	tests := map[string]string{
		"https":       "https://example.com",
		"HTTPS, http": "https://example.com",
		"javascript":  "http://example.com",
		"":            "http://example.com",
	}
	for header, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)
		if header != "" {
			req.Header.Set("X-Forwarded-Proto", header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if base != want {
			t.Errorf("X-Forwarded-Proto %q: base = %q, want %q", header, base, want)
		}
	}
}

type fakeSessions struct{ user string }

func (f fakeSessions) GetStaffUser(*http.Request) string                             { return f.user }
func (f fakeSessions) SetStaffUser(http.ResponseWriter, *http.Request, string) error { return nil }
func (f fakeSessions) ClearSession(http.ResponseWriter, *http.Request) error         { return nil }

func TestAdminAuthMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = StaffUser(r)
	})

	rec := httptest.NewRecorder()
	AdminAuthMiddleware(fakeSessions{}, render.New(), zap.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/", nil))
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), helpers.CodeNotAuthenticated) {
		t.Errorf("anonymous: status %d body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	AdminAuthMiddleware(fakeSessions{user: "admin"}, render.New(), zap.NewNop())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/", nil))
	if rec.Code != http.StatusOK || seen != "admin" {
		t.Errorf("staff: status %d user %q", rec.Code, seen)
	}
}
