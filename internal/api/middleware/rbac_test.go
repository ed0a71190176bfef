package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/core/domain"
)

type roleRepo struct {
	users map[string]*domain.User
}

func (r *roleRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *roleRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *roleRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *roleRepo) UpdateLockout(_ context.Context, id string, attempts int, until *time.Time) error {
	return nil
}

func (r *roleRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *roleRepo) List(_ context.Context, limit, offset int) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func invokeRBAC(t *testing.T, repo *roleRepo, userID string, roles ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(ContextUserID, userID)
	}

	handler := RequireRole(repo, roles...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	repo := &roleRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Role: domain.RoleAdministrator},
	}}

	rec, err := invokeRBAC(t, repo, "user-1", domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_ForbidsOtherRoles(t *testing.T) {
	repo := &roleRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Role: domain.RoleStandard},
	}}

	rec, err := invokeRBAC(t, repo, "user-1", domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("forbidden responses are written directly: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_ReadsCurrentRoleFromStore(t *testing.T) {
	repo := &roleRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Role: domain.RoleStandard},
	}}

	rec, err := invokeRBAC(t, repo, "user-1", domain.RoleProfessional, domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before promotion, got %d", rec.Code)
	}

	// Promote without re-issuing any token: the next request must pass
	// because the gate re-reads the stored role.
	if err := repo.UpdateRole(context.Background(), "user-1", domain.RoleProfessional); err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	rec, err = invokeRBAC(t, repo, "user-1", domain.RoleProfessional, domain.RoleAdministrator)
	if err != nil {
		t.Fatalf("expected request to pass after promotion, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after promotion, got %d", rec.Code)
	}
}

func TestRequireRole_UnknownOrMissingCaller(t *testing.T) {
	repo := &roleRepo{users: map[string]*domain.User{}}

	if _, err := invokeRBAC(t, repo, "", domain.RoleAdministrator); err == nil {
		t.Fatalf("expected 401 without a caller id")
	}

	_, err := invokeRBAC(t, repo, "ghost", domain.RoleAdministrator)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown account, got %v", err)
	}
}
