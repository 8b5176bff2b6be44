package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askmatic/askly-server/internal/config"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:         "unit-test-secret",
		TokenTTL:       24 * time.Hour,
		CookieName:     "token",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""

	_, err := NewIssuer(cfg)
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.Secret = "a-different-secret"
	otherIssuer, err := NewIssuer(other)
	require.NoError(t, err)

	token, err := otherIssuer.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	// Issue in the past, verify in the present.
	issuer.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCookieSetAndClearAttributesMatch(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	setRec := httptest.NewRecorder()
	issuer.SetSessionCookie(setRec, "abc")
	clearRec := httptest.NewRecorder()
	issuer.ClearSessionCookie(clearRec)

	setCookie := setRec.Result().Cookies()[0]
	clearCookie := clearRec.Result().Cookies()[0]

	assert.Equal(t, setCookie.Name, clearCookie.Name)
	assert.Equal(t, setCookie.Path, clearCookie.Path)
	assert.Equal(t, setCookie.HttpOnly, clearCookie.HttpOnly)
	assert.Equal(t, setCookie.Secure, clearCookie.Secure)
	assert.Equal(t, int(testConfig().TokenTTL.Seconds()), setCookie.MaxAge)
	assert.Negative(t, clearCookie.MaxAge)
	assert.Empty(t, clearCookie.Value)
}
