package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
	"github.com/daybook/journal-api/internal/pkg/credential"
	"github.com/daybook/journal-api/internal/pkg/token"
)

// AuthService implements registration, login, and refresh-token rotation.
type AuthService struct {
	users   ports.UserRepository
	hasher  *credential.Hasher
	issuer  *token.Issuer
	lockout domain.LockoutPolicy
	audit   ports.AuditSink
	clock   ports.Clock
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *credential.Hasher,
	issuer *token.Issuer,
	lockout domain.LockoutPolicy,
	audit ports.AuditSink,
	clock ports.Clock,
	log zerolog.Logger,
) *AuthService {
	if clock == nil {
		clock = ports.ClockFunc(time.Now)
	}
	if audit == nil {
		audit = nopAuditSink{}
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		issuer:  issuer,
		lockout: lockout,
		audit:   audit,
		clock:   clock,
		log:     log,
	}
}

// Register creates a standard-role account and returns a token pair alongside
// the created profile.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, domain.NewValidationError("email, password and name are required")
	}
	if !wellFormedEmail(email) {
		return nil, domain.NewValidationError("email is malformed")
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.clock.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:          email,
		Name:           name,
		CredentialHash: hash,
		Role:           domain.RoleStandard,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		// The unique email index closes the lookup/insert race: a concurrent
		// duplicate surfaces here as ErrEmailTaken.
		return nil, fmt.Errorf("register: %w", err)
	}

	pair, err := s.issuer.IssuePair(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.audit.Record(ports.AuditEvent{
		Action:  ports.AuditRegister,
		UserID:  created.ID,
		Email:   created.Email,
		Success: true,
		At:      now,
	})
	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	return &ports.AuthResult{
		Tokens: ports.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
		User:   created,
	}, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords return the same generic error; locked accounts are rejected
// before the credential is even compared.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	now := s.clock.Now().UTC()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit.Record(ports.AuditEvent{Action: ports.AuditLogin, Email: email, Reason: "unknown_email", At: now})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.lockout.IsLocked(user, now) {
		s.audit.Record(ports.AuditEvent{Action: ports.AuditLogin, UserID: user.ID, Email: email, Reason: "locked", At: now})
		return nil, &domain.LockedError{Until: *user.LockoutUntil}
	}

	if !s.hasher.Compare(password, user.CredentialHash) {
		s.lockout.RecordFailure(user, now)
		if err := s.users.UpdateLockout(ctx, user.ID, user.FailedLoginAttempts, user.LockoutUntil); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to persist lockout counters")
		}
		reason := "bad_password"
		if user.LockoutUntil != nil {
			reason = "locked"
			s.audit.Record(ports.AuditEvent{Action: ports.AuditLockout, UserID: user.ID, Email: email, At: now})
			s.log.Warn().Str("user_id", user.ID).Int("attempts", user.FailedLoginAttempts).Msg("account locked")
		}
		s.audit.Record(ports.AuditEvent{Action: ports.AuditLogin, UserID: user.ID, Email: email, Reason: reason, At: now})
		return nil, domain.ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockoutUntil != nil {
		s.lockout.RecordSuccess(user)
		if err := s.users.UpdateLockout(ctx, user.ID, 0, nil); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to reset lockout counters")
		}
	}

	pair, err := s.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.audit.Record(ports.AuditEvent{Action: ports.AuditLogin, UserID: user.ID, Email: email, Success: true, At: now})

	return &ports.AuthResult{
		Tokens: ports.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
		User:   user,
	}, nil
}

// Refresh verifies a refresh token and issues a brand-new pair. The subject
// is re-read so deleted accounts cannot rotate.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	pair, err := s.issuer.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	s.audit.Record(ports.AuditEvent{Action: ports.AuditRefresh, UserID: user.ID, Success: true, At: s.clock.Now().UTC()})

	return &ports.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// wellFormedEmail requires a local part, an @, and a dotted domain.
func wellFormedEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	dom := email[at+1:]
	dot := strings.Index(dom, ".")
	return dot > 0 && dot < len(dom)-1
}

type nopAuditSink struct{}

func (nopAuditSink) Record(ports.AuditEvent) {}
