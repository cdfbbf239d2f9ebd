package domain

// TokenPayload are the claims bound into both tokens of a pair: the subject
// (user id), email and role current at mint time.
type TokenPayload struct {
	Subject string
	Email   string
	Role    Role
}

// AuthResult is what every successful authentication event returns: a
// short-lived access token, a long-lived refresh token and the redacted
// user view they were minted for.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         UserView
}
