package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askmatic/askly-server/internal/auth"
	"github.com/askmatic/askly-server/internal/config"
)

func newIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer(config.AuthConfig{
		Secret:         "gate-test-secret",
		TokenTTL:       time.Hour,
		CookieName:     "token",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
	})
	if err != nil {
		t.Fatalf("NewIssuer err: %v", err)
	}
	return issuer
}

func gatedHandler(t *testing.T, issuer *auth.Issuer, sawUser *string) http.Handler {
	t.Helper()
	return SessionGate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			t.Fatal("gate passed request without user ID")
		}
		*sawUser = id
		w.WriteHeader(http.StatusOK)
	}))
}

func TestSessionGateAcceptsValidCookie(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue("user-7")
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	var sawUser string
	handler := gatedHandler(t, issuer, &sawUser)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sawUser != "user-7" {
		t.Fatalf("unexpected user ID: %s", sawUser)
	}
}

func TestSessionGateRejectsMissingCookie(t *testing.T) {
	issuer := newIssuer(t)
	var sawUser string
	handler := gatedHandler(t, issuer, &sawUser)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if sawUser != "" {
		t.Fatal("handler ran despite missing cookie")
	}
}

func TestSessionGateRejectsTamperedToken(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue("user-7")
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	var sawUser string
	handler := gatedHandler(t, issuer, &sawUser)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token + "broken"})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if sawUser != "" {
		t.Fatal("handler ran despite tampered token")
	}
}
