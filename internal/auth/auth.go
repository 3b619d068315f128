package auth

import (
	"context"
	"errors"
	"time"
)

// Token types embedded in signed claims. Admin tokens live longer than
// access tokens and may only be issued to users holding the admin permission.
const (
	TokenTypeAccess  = "access"
	TokenTypeAdmin   = "admin"
	TokenTypeRefresh = "refresh"
)

const (
	PermissionAdmin       = "admin"
	PermissionReadPosts   = "read_posts"
	PermissionCreatePosts = "create_posts"
	PermissionEditPosts   = "edit_posts"
	PermissionDeletePosts = "delete_posts"
)

// ErrUserNotFound is returned by repositories when no user row matches.
var ErrUserNotFound = errors.New("user not found")

// User is the identity record. PasswordHash and RefreshTokens never leave
// the auth package through API responses.
type User struct {
	ID            int64          `json:"id"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	IsActive      bool           `json:"-"`
	Permissions   []string       `json:"permissions,omitempty"`
	RefreshTokens []RefreshToken `json:"-"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
}

// RefreshToken is one entry of a user's stored refresh-token collection.
// Tokens are stored raw and compared by exact string match.
type RefreshToken struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasPermission(PermissionAdmin)
}

// FindRefreshToken looks up a stored token by exact string match. Expired
// entries are still returned; callers must re-check expiry rather than rely
// on cleanup having run.
func (u *User) FindRefreshToken(token string) (RefreshToken, bool) {
	for _, t := range u.RefreshTokens {
		if t.Token == token {
			return t, true
		}
	}
	return RefreshToken{}, false
}

// Info is the caller-facing projection of a user.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		Permissions: u.Permissions,
	}
}

type UserInfo struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

// AuthResponse is returned by both the login and refresh flows.
type AuthResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// ValidationResult is the outcome of the token validation flow. The flow
// never returns a Go error; failures are reported through Error.
type ValidationResult struct {
	IsValid bool      `json:"is_valid"`
	Error   string    `json:"error,omitempty"`
	Payload *Claims   `json:"payload,omitempty"`
	User    *UserInfo `json:"user,omitempty"`
}

// UserRepository is the persistence port consumed by the auth service.
// Storage failures propagate unchanged; the service does not retry.
type UserRepository interface {
	FindByEmail(email string) (*User, error)
	FindByID(userID int64) (*User, error)
	AddRefreshToken(userID int64, token RefreshToken) error
	RemoveRefreshToken(userID int64, token string) error
	CleanExpiredTokens(userID int64) error
	Create(user *User) error
	Update(user *User) error
}

type ServiceAPI interface {
	Login(dto LoginDTO) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
	ValidateToken(dto ValidateTokenDTO) ValidationResult
}

type ctxKey string

const (
	ContextUserKey  ctxKey = "user"
	ContextTokenKey ctxKey = "token"
)

func UserFromContext(ctx context.Context) (*UserInfo, bool) {
	u, ok := ctx.Value(ContextUserKey).(*UserInfo)
	return u, ok
}

func TokenFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ContextTokenKey).(*Claims)
	return c, ok
}
