package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bloghub/blog-management/internal"
)

// Tagged verification errors. Flows match on these with errors.Is instead
// of inspecting library error types.
var (
	ErrSecretNotConfigured = errors.New("JWT secret not configured")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenNotYetValid    = errors.New("token not yet valid")
	ErrTokenMalformed      = errors.New("token malformed or signature invalid")
)

// Claims is the payload embedded in every signed token. Permissions are a
// snapshot taken at issuance; changing a user's permissions does not affect
// already-issued tokens until they expire or are refreshed.
type Claims struct {
	UserID      int64    `json:"user_id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
	TokenType   string   `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens. It is stateless: it never
// consults storage, so refresh-token revocation checks live in the service
// layer.
type TokenService struct {
	secret     []byte
	AccessTTL  time.Duration
	AdminTTL   time.Duration
	RefreshTTL time.Duration
}

// NewTokenService builds a token codec for the given signing secret. A blank
// or whitespace-only secret is a startup-time configuration failure.
func NewTokenService(secret string, accessTTL, adminTTL, refreshTTL time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretNotConfigured
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if adminTTL <= 0 {
		adminTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		AdminTTL:   adminTTL,
		RefreshTTL: refreshTTL,
	}, nil
}

func (t *TokenService) IssueAccessToken(user *User) (string, error) {
	return t.sign(user, TokenTypeAccess, t.AccessTTL)
}

// IssueAdminToken issues a longer-lived admin token. The user must hold the
// admin permission; the check runs before any signing occurs.
func (t *TokenService) IssueAdminToken(user *User) (string, error) {
	if !user.IsAdmin() {
		return "", internal.ErrAdminRequired
	}
	return t.sign(user, TokenTypeAdmin, t.AdminTTL)
}

func (t *TokenService) IssueRefreshToken(user *User) (string, error) {
	return t.sign(user, TokenTypeRefresh, t.RefreshTTL)
}

func (t *TokenService) sign(user *User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Permissions: user.Permissions,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp have seconds granularity; jti keeps two tokens signed
			// within the same second from being byte-identical.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and time-based claims of a token. The library
// validates exp with zero leeway, so a token whose exp equals the current
// second is already expired.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenMalformed
		default:
			return nil, fmt.Errorf("token verification failed: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// HasPermission is a pure membership check on the claims snapshot.
func (t *TokenService) HasPermission(claims *Claims, permission string) bool {
	for _, p := range claims.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (t *TokenService) IsType(claims *Claims, tokenType string) bool {
	return claims.TokenType == tokenType
}

// ExtractTokenFromHeader accepts only the exact "Bearer <token>" form, with
// a case-sensitive scheme. Anything else yields the empty string.
func ExtractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}
