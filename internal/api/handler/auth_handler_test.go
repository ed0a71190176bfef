package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/api"
	"github.com/daybook/journal-api/internal/api/handler"
	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, name string) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, name string) (*ports.AuthResult, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func authTestServer(svc ports.AuthService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	h := handler.NewAuthHandler(svc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, email, _, name string) (*ports.AuthResult, error) {
			return &ports.AuthResult{
				Tokens: ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
				User:   &domain.User{ID: "user-1", Email: email, Name: name, Role: domain.RoleStandard},
			}, nil
		},
	}
	e := authTestServer(svc)

	rec := postJSON(e, "/auth/register", `{"email":"a@example.com","password":"ValidPass123!","name":"Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.AccessToken != "acc" || resp.RefreshToken != "ref" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp.User.Role != domain.RoleStandard {
		t.Fatalf("unexpected role: %s", resp.User.Role)
	}
	// The credential hash must never serialize.
	if strings.Contains(rec.Body.String(), "credentialHash") {
		t.Fatalf("credential hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{"weak password", domain.NewValidationError("password must contain a digit"), http.StatusBadRequest, "password must contain a digit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuthService{
				registerFn: func(context.Context, string, string, string) (*ports.AuthResult, error) {
					return nil, tc.err
				},
			}
			rec := postJSON(authTestServer(svc), "/auth/register", `{"email":"a@example.com","password":"x","name":"A"}`)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := errorMessage(t, rec); got != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, got)
			}
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	rec := postJSON(authTestServer(svc), "/auth/login", `{"email":"a@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "invalid email or password" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestAuthHandler_Login_Locked(t *testing.T) {
	until := time.Now().UTC().Add(10 * time.Minute)
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, &domain.LockedError{Until: until}
		},
	}

	rec := postJSON(authTestServer(svc), "/auth/login", `{"email":"a@example.com","password":"ValidPass123!"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); !strings.HasPrefix(got, "account locked, try again in") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "good-token" {
				return nil, domain.ErrInvalidToken
			}
			return &ports.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil
		},
	}
	e := authTestServer(svc)

	rec := postJSON(e, "/auth/refresh", `{"refreshToken":"good-token"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(e, "/auth/refresh", `{"refreshToken":"stale"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = postJSON(e, "/auth/refresh", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "refreshToken is required" {
		t.Fatalf("unexpected message: %q", got)
	}
}
