package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernwood/authd/internal/auth/domain"
	"github.com/fernwood/authd/internal/auth/store"
	"github.com/fernwood/authd/pkg/cryptox"
	"github.com/fernwood/authd/pkg/jwtx"
	"github.com/fernwood/authd/pkg/slogx"
)

var (
	// ErrEmailTaken reports a registration against an existing email.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// One sentinel for both, so the response cannot be used to probe
	// which emails have accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated reports a login against an inactive account.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrInvalidRefresh covers every refresh failure: bad signature,
	// expiry, malformed token, unknown subject and inactive account all
	// collapse into it.
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

// PasswordPolicyError aggregates the strength rules a rejected password
// violated. It carries rule messages only, never the password itself.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return "password validation failed: " + strings.Join(e.Violations, ", ")
}

// RegisterParams are the fields for a new registration. Role is optional
// and defaults to member.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// AuthService orchestrates registration, login, token refresh and
// credential validation. It holds no mutable state; every operation is
// independent and safe to run concurrently.
type AuthService struct {
	Store store.Store

	AccessSecret  []byte
	AccessTTL     time.Duration
	RefreshSecret []byte
	RefreshTTL    time.Duration
}

// Register creates an account and mints its first token pair.
//
// Nothing is written to the store until the email is known to be free and
// the password has passed policy, so a failed registration leaves no
// partial state. The store hashes the password as part of the write.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*domain.AuthResult, error) {
	_, err := s.Store.Users().FindByEmail(ctx, p.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if validation := ValidatePasswordStrength(p.Password); !validation.IsValid {
		return nil, &PasswordPolicyError{Violations: validation.Errors}
	}

	user, err := s.Store.Users().CreateUser(ctx, store.CreateUserParams{
		Email:     p.Email,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      p.Role,
	})
	if err != nil {
		// Two registrations can race past the lookup; the store's unique
		// constraint is the authority.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.mintAuthResult(user)
}

// Login authenticates an email/password pair and mints a token pair.
// Unknown email and wrong password return the identical sentinel; only a
// deactivated account is distinguished.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDeactivated
	}

	if !cryptox.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.mintAuthResult(user)
}

// ValidateUser is the non-erroring variant of Login for lower-level
// checks: it reports the user and true on success, and a zero user and
// false on any of not-found, inactive or bad password.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (domain.User, bool) {
	user, err := s.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, false
	}
	if !user.Active || !cryptox.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, false
	}
	return user, true
}

// RefreshToken verifies a refresh token and mints a fresh pair from the
// account's current state. Both tokens rotate; the superseded refresh
// token stays verifiable until its expiry since no revocation list exists.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	log := slogx.FromContext(ctx)

	claims, err := jwtx.Verify(refreshToken, s.RefreshSecret)
	if err != nil {
		// Cause stays in the logs; callers only ever see the collapsed
		// sentinel.
		log.Debug("refresh token rejected", "err", err)
		return nil, ErrInvalidRefresh
	}

	user, err := s.Store.Users().FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("refresh subject not found", "subject", claims.Subject)
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.Active {
		log.Debug("refresh for deactivated account", "user_id", user.ID)
		return nil, ErrInvalidRefresh
	}

	return s.mintAuthResult(user)
}

// mintAuthResult signs the access and refresh tokens for user. The two
// signings have no data dependency, so the refresh token is signed on a
// separate goroutine while the access token signs here.
func (s *AuthService) mintAuthResult(user domain.User) (*domain.AuthResult, error) {
	now := time.Now().UTC()
	role := user.Role.String()

	type signResult struct {
		token string
		err   error
	}
	refreshDone := make(chan signResult, 1)
	go func() {
		token, err := jwtx.Sign(
			jwtx.NewClaims(user.ID, user.Email, role, s.RefreshTTL, now),
			s.RefreshSecret,
		)
		refreshDone <- signResult{token: token, err: err}
	}()

	accessToken, accessErr := jwtx.Sign(
		jwtx.NewClaims(user.ID, user.Email, role, s.AccessTTL, now),
		s.AccessSecret,
	)
	refresh := <-refreshDone

	if accessErr != nil {
		return nil, fmt.Errorf("sign access token: %w", accessErr)
	}
	if refresh.err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", refresh.err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refresh.token,
		User:         user.Redacted(),
	}, nil
}
