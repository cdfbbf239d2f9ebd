package auth_test

import (
	"net/http"
	"testing"

	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginRefresh tests the complete flow:
// 1. Register a new account
// 2. Login with the same credentials
// 3. Refresh the token pair
// 4. Verify token rotation (new tokens are different from old tokens)
func TestRegisterLoginRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	// Register
	registered := registerUser(t, client, "alice@example.com")
	t.Logf("Registration successful, user ID: %s", registered.User.ID)

	// Login
	loggedIn, err := client.Login(t.Context(), "alice@example.com", testPassword)
	require.NoError(t, err)
	assertAuthResponse(t, loggedIn)
	require.Equal(t, registered.User.ID, loggedIn.User.ID, "Login should resolve to the registered account")

	// Refresh
	refreshed, err := client.Refresh(t.Context(), loggedIn.RefreshToken)
	require.NoError(t, err)
	assertAuthResponse(t, refreshed)

	// Verify token rotation
	require.NotEqual(t, loggedIn.AccessToken, refreshed.AccessToken, "Access token should be rotated")
	require.NotEqual(t, loggedIn.RefreshToken, refreshed.RefreshToken, "Refresh token should be rotated")

	t.Logf("Refresh successful, tokens rotated")
}

// TestRegisterDuplicateEmail verifies a second registration against the same
// email is rejected with a conflict and does not disturb the first account.
func TestRegisterDuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	registerUser(t, client, "bob@example.com")

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:     "bob@example.com",
		Password:  testPassword,
		FirstName: "Other",
		LastName:  "Bob",
	})
	assertAPIError(t, err, http.StatusConflict, authsdk.ErrorCodeConflict)

	// The original account still logs in
	loggedIn, err := client.Login(t.Context(), "bob@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, "Test", loggedIn.User.FirstName, "First registration should be untouched")
}

// TestRegisterWeakPassword verifies policy violations come back as a 400 with
// the rule messages in the description.
func TestRegisterWeakPassword(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Email:     "carol@example.com",
		Password:  "weak",
		FirstName: "Carol",
		LastName:  "User",
	})
	assertAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeValidationFailed)

	apiErr := err.(*authsdk.APIError)
	require.Contains(t, apiErr.Description, "Password must be at least 8 characters long")
	require.Contains(t, apiErr.Description, "Password must contain at least one uppercase letter")

	// A rejected registration must not create the account
	_, err = client.Login(t.Context(), "carol@example.com", "weak")
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

// TestRefreshRejectsAccessToken verifies the two token kinds are not
// interchangeable: an access token presented for refresh is rejected.
func TestRefreshRejectsAccessToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)
	registered := registerUser(t, client, "dave@example.com")

	_, err := client.Refresh(t.Context(), registered.AccessToken)
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}

// TestRefreshRejectsGarbage covers malformed refresh tokens.
func TestRefreshRejectsGarbage(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewClient(baseURL)

	_, err := client.Refresh(t.Context(), "not-a-jwt")
	assertAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized)
}
