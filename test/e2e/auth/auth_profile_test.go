package auth_test

import (
	"net/http"
	"testing"

	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestProfile verifies an access token resolves to the redacted account view.
func TestProfile(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registered := registerUser(t, client, "erin@example.com")

	profile, err := client.Profile(t.Context(), registered.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, profile.ID)
	require.Equal(t, "erin@example.com", profile.Email)
	require.Equal(t, "Test", profile.FirstName)
	require.Equal(t, "User", profile.LastName)
	require.Equal(t, "member", profile.Role)
}

// TestProfileRequiresToken verifies the profile endpoint rejects requests
// without a usable access token.
func TestProfileRequiresToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	// No token at all
	_, err := client.Profile(t.Context(), "")
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)

	// Garbage token
	_, err = client.Profile(t.Context(), "not-a-jwt")
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

// TestProfileRejectsRefreshToken verifies the refresh token cannot be used
// where an access token is expected.
func TestProfileRejectsRefreshToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registered := registerUser(t, client, "frank@example.com")

	_, err := client.Profile(t.Context(), registered.RefreshToken)
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

// TestLogout verifies logout acknowledges the session end. Tokens are
// stateless, so the access token still works afterwards; clients are
// expected to discard it.
func TestLogout(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registered := registerUser(t, client, "grace@example.com")

	msg, err := client.Logout(t.Context(), registered.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "Successfully logged out", msg.Message)

	// No server-side revocation: the token remains valid until expiry
	_, err = client.Profile(t.Context(), registered.AccessToken)
	require.NoError(t, err)
}
