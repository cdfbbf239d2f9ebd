package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	t.Parallel()

	t.Run("strong password passes", func(t *testing.T) {
		result := ValidatePasswordStrength("StrongPass123!")
		require.True(t, result.IsValid)
		require.Empty(t, result.Errors)
	})

	t.Run("too short", func(t *testing.T) {
		result := ValidatePasswordStrength("Short1!")
		require.False(t, result.IsValid)
		require.Contains(t, result.Errors, "Password must be at least 8 characters long")
	})

	t.Run("missing lowercase", func(t *testing.T) {
		result := ValidatePasswordStrength("PASSWORD123!")
		require.False(t, result.IsValid)
		require.Contains(t, result.Errors, "Password must contain at least one lowercase letter")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		result := ValidatePasswordStrength("password123!")
		require.False(t, result.IsValid)
		require.Contains(t, result.Errors, "Password must contain at least one uppercase letter")
	})

	t.Run("missing number", func(t *testing.T) {
		result := ValidatePasswordStrength("Password!")
		require.False(t, result.IsValid)
		require.Contains(t, result.Errors, "Password must contain at least one number")
	})

	t.Run("missing special character", func(t *testing.T) {
		result := ValidatePasswordStrength("Password123")
		require.False(t, result.IsValid)
		require.Contains(t, result.Errors, "Password must contain at least one special character (@$!%*?&)")
	})

	t.Run("collects one message per violated rule", func(t *testing.T) {
		result := ValidatePasswordStrength("weak")
		require.False(t, result.IsValid)
		require.Equal(t, []string{
			"Password must be at least 8 characters long",
			"Password must contain at least one uppercase letter",
			"Password must contain at least one number",
			"Password must contain at least one special character (@$!%*?&)",
		}, result.Errors)
	})

	t.Run("violates everything", func(t *testing.T) {
		result := ValidatePasswordStrength("")
		require.False(t, result.IsValid)
		require.Len(t, result.Errors, 5)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		// 8 runes incl. multi-byte ones; all other rules satisfied.
		result := ValidatePasswordStrength("Aa1!žžžž")
		require.NotContains(t, result.Errors, "Password must be at least 8 characters long")
	})
}
