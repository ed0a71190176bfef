package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

// UserService exposes profile reads and the admin-facing user operations.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = nopAuditSink{}
	}
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) (*ports.UserPage, error) {
	limit, offset = clampPage(limit, offset)
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ports.UserPage{Users: users, Total: total, Limit: limit, Offset: offset}, nil
}

// ChangeRole persists an out-of-band role change. Takes effect on the user's
// next protected request — no new token is needed, since the authorization
// gate re-reads the role from the store.
func (s *UserService) ChangeRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role must be one of: standard, professional, administrator")
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ports.AuditEvent{
		Action:  ports.AuditRoleChange,
		UserID:  user.ID,
		Email:   user.Email,
		Success: true,
		Reason:  role,
		At:      time.Now().UTC(),
	})
	s.log.Info().Str("user_id", user.ID).Str("role", role).Msg("role changed")

	return user, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
