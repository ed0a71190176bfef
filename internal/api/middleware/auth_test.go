package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/pkg/token"
)

func testIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return issuer
}

func invokeAuth(t *testing.T, issuer *token.Issuer, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := testIssuer(t)
	pair, err := issuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	c, err := invokeAuth(t, issuer, "Bearer "+pair.AccessToken)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if got, _ := c.Get(ContextUserID).(string); got != "user-1" {
		t.Fatalf("expected user id in context, got %q", got)
	}
}

func TestAuth_RejectsBadHeaders(t *testing.T) {
	issuer := testIssuer(t)
	pair, err := issuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", pair.AccessToken},
		{"wrong scheme", "Basic " + pair.AccessToken},
		{"garbage token", "Bearer not-a-jwt"},
		// Refresh tokens never pass the access gate.
		{"refresh token", "Bearer " + pair.RefreshToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invokeAuth(t, issuer, tc.header)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}

func TestAuth_RejectsExpiredToken(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	expiredIssuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Now:           func() time.Time { return past },
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	pair, err := expiredIssuer.IssuePair("user-1")
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	_, err = invokeAuth(t, testIssuer(t), "Bearer "+pair.AccessToken)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}
