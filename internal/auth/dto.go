package auth

import "regexp"

// Permissive but non-trivial: requires local@domain.tld with no spaces and
// a real TLD segment.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidateTokenDTO is the input to the generic token validation flow. Both
// constraints are optional.
type ValidateTokenDTO struct {
	Token              string
	RequiredPermission string
	RequiredTokenType  string
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
