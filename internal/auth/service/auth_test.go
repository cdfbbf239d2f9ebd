package service

import (
	"context"
	"testing"
	"time"

	"github.com/fernwood/authd/internal/auth/domain"
	"github.com/fernwood/authd/internal/auth/store"
	"github.com/fernwood/authd/internal/auth/store/drivers/sqlite"
	"github.com/fernwood/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	testAccessSecret  = []byte("unit-test-access-secret")
	testRefreshSecret = []byte("unit-test-refresh-secret")
)

// countingStore wraps a Store and counts CreateUser invocations.
type countingStore struct {
	store.Store
	creates int
}

func (c *countingStore) Users() store.Users {
	return &countingUsers{Users: c.Store.Users(), counter: &c.creates}
}

type countingUsers struct {
	store.Users
	counter *int
}

func (c *countingUsers) CreateUser(ctx context.Context, p store.CreateUserParams) (domain.User, error) {
	*c.counter++
	return c.Users.CreateUser(ctx, p)
}

func newAuthService(t *testing.T) (*AuthService, *countingStore) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	counting := &countingStore{Store: st}
	return &AuthService{
		Store:         counting,
		AccessSecret:  testAccessSecret,
		AccessTTL:     15 * time.Minute,
		RefreshSecret: testRefreshSecret,
		RefreshTTL:    7 * 24 * time.Hour,
	}, counting
}

func registerParams(email string) RegisterParams {
	return RegisterParams{
		Email:     email,
		Password:  "StrongPass123!",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestRegister(t *testing.T) {
	svc, counting := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Equal(t, "a@b.com", result.User.Email)
	require.Equal(t, domain.RoleMember, result.User.Role)
	require.Equal(t, 1, counting.creates)

	// Both tokens carry the new account as subject, each under its own
	// secret.
	access, err := jwtx.Verify(result.AccessToken, testAccessSecret)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, access.Subject)

	refresh, err := jwtx.Verify(result.RefreshToken, testRefreshSecret)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, refresh.Subject)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, counting := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerParams("a@b.com"))
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 1, counting.creates, "conflict must not reach the store write")
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, counting := newAuthService(t)
	ctx := context.Background()

	p := registerParams("weak@b.com")
	p.Password = "Weak1!"

	_, err := svc.Register(ctx, p)

	var policyErr *PasswordPolicyError
	require.ErrorAs(t, err, &policyErr)
	require.Contains(t, policyErr.Violations, "Password must be at least 8 characters long")
	require.Equal(t, 0, counting.creates, "rejected password must not reach the store")
}

func TestRegisterExplicitRole(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	p := registerParams("root@b.com")
	p.Role = domain.RoleAdmin

	result, err := svc.Register(ctx, p)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, result.User.Role)

	access, err := jwtx.Verify(result.AccessToken, testAccessSecret)
	require.NoError(t, err)
	require.Equal(t, "admin", access.Role)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@b.com", "StrongPass123!")
		require.NoError(t, err)

		access, err := jwtx.Verify(result.AccessToken, testAccessSecret)
		require.NoError(t, err)
		require.Equal(t, registered.User.ID, access.Subject)
		require.Equal(t, "a@b.com", access.Email)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, unknownErr := svc.Login(ctx, "ghost@b.com", "StrongPass123!")
		_, wrongErr := svc.Login(ctx, "a@b.com", "WrongPass123!")

		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		require.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("deactivated account fails with the right password", func(t *testing.T) {
		inactive := false
		_, err := svc.Store.Users().UpdateUser(ctx, registered.User.ID, store.UpdateUserParams{
			Active: &inactive,
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@b.com", "StrongPass123!")
		require.ErrorIs(t, err, ErrAccountDeactivated)
	})
}

func TestValidateUser(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, ok := svc.ValidateUser(ctx, "a@b.com", "StrongPass123!")
		require.True(t, ok)
		require.Equal(t, registered.User.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, ok := svc.ValidateUser(ctx, "a@b.com", "WrongPass123!")
		require.False(t, ok)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, ok := svc.ValidateUser(ctx, "ghost@b.com", "StrongPass123!")
		require.False(t, ok)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := false
		_, err := svc.Store.Users().UpdateUser(ctx, registered.User.ID, store.UpdateUserParams{
			Active: &inactive,
		})
		require.NoError(t, err)

		_, ok := svc.ValidateUser(ctx, "a@b.com", "StrongPass123!")
		require.False(t, ok)
	})
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)

	t.Run("valid refresh rotates both tokens", func(t *testing.T) {
		result, err := svc.RefreshToken(ctx, registered.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, registered.AccessToken, result.AccessToken)
		require.NotEqual(t, registered.RefreshToken, result.RefreshToken)

		refresh, err := jwtx.Verify(result.RefreshToken, testRefreshSecret)
		require.NoError(t, err)
		require.Equal(t, registered.User.ID, refresh.Subject)
	})

	t.Run("access token never passes as refresh token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, registered.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		expired, err := jwtx.Sign(
			jwtx.NewClaims(registered.User.ID, "a@b.com", "member", -time.Minute, time.Now().UTC()),
			testRefreshSecret,
		)
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, expired)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		orphan, err := jwtx.Sign(
			jwtx.NewClaims("01JGONEGONEGONEGONEGONEXX", "gone@b.com", "member", time.Hour, time.Now().UTC()),
			testRefreshSecret,
		)
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, orphan)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("deactivated account collapses into the same error", func(t *testing.T) {
		inactive := false
		_, err := svc.Store.Users().UpdateUser(ctx, registered.User.ID, store.UpdateUserParams{
			Active: &inactive,
		})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, registered.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestAuthResultNeverExposesPasswordHash(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams("a@b.com"))
	require.NoError(t, err)

	// The user view is a redacted projection; the hash only lives on the
	// store record.
	stored, err := svc.Store.Users().FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotContains(t, result.AccessToken, stored.PasswordHash)
	require.NotContains(t, result.RefreshToken, stored.PasswordHash)
}
