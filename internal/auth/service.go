package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bloghub/blog-management/internal"
)

// Service implements the login, refresh and validation flows on top of the
// stateless token codec and the user store. Login and Refresh return errors;
// ValidateToken always returns a result object because it runs on every
// protected request and must not abort request handling.
type Service struct {
	repo   UserRepository
	tokens *TokenService
	hasher *PasswordHasher
	logger *slog.Logger
}

func NewService(repo UserRepository, tokens *TokenService, hasher *PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Login verifies credentials, issues a token pair and persists the new
// refresh token. Unknown email and wrong password surface the same generic
// error; the real cause goes to the log only.
func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if dto.Email == "" || dto.Password == "" {
		return nil, internal.ErrCredentialsRequired
	}
	if !ValidEmail(dto.Email) {
		return nil, internal.ErrInvalidEmailFormat
	}

	user, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("login rejected: unknown email", "email", dto.Email)
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("login failed: user lookup", "email", dto.Email, "error", err)
		return nil, err
	}

	if !s.hasher.Verify(dto.Password, user.PasswordHash) {
		s.logger.Warn("login rejected: password mismatch", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	// Opportunistic maintenance; must complete before new tokens are issued.
	if err := s.repo.CleanExpiredTokens(user.ID); err != nil {
		s.logger.Error("login failed: token cleanup", "email", dto.Email, "error", err)
		return nil, err
	}

	resp, err := s.issueTokenPair(user)
	if err != nil {
		s.logger.Error("login failed: token issuance", "email", dto.Email, "error", err)
		return nil, err
	}
	return resp, nil
}

// Refresh rotates a refresh token: the presented token must verify, exist in
// the user's stored collection and be unexpired there. The old token is
// removed before the replacement is persisted.
func (s *Service) Refresh(refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, internal.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		s.logger.Warn("refresh rejected: verification failed", "error", err)
		return nil, internal.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("refresh rejected: user not found", "user_id", claims.UserID)
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("refresh failed: user lookup", "user_id", claims.UserID, "error", err)
		return nil, err
	}

	stored, found := user.FindRefreshToken(refreshToken)
	if !found || stored.Expired(time.Now()) {
		s.logger.Warn("refresh rejected: token not stored or expired", "user_id", user.ID)
		return nil, internal.ErrInvalidRefreshToken
	}

	if err := s.repo.CleanExpiredTokens(user.ID); err != nil {
		s.logger.Error("refresh failed: token cleanup", "user_id", user.ID, "error", err)
		return nil, err
	}

	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	// Remove-then-add: a partial failure leaves the old token revoked rather
	// than two live tokens.
	if err := s.repo.RemoveRefreshToken(user.ID, refreshToken); err != nil {
		s.logger.Error("refresh failed: token removal", "user_id", user.ID, "error", err)
		return nil, err
	}
	if err := s.storeRefreshToken(user.ID, newRefresh); err != nil {
		s.logger.Error("refresh failed: token persistence", "user_id", user.ID, "error", err)
		return nil, err
	}

	return &AuthResponse{
		User:         user.Info(),
		AccessToken:  access,
		RefreshToken: newRefresh,
	}, nil
}

// ValidateToken is the authorization gate for protected requests. Refresh
// tokens additionally require a live entry in the user's stored collection;
// access and admin tokens are validated statelessly.
func (s *Service) ValidateToken(dto ValidateTokenDTO) ValidationResult {
	if dto.Token == "" {
		return ValidationResult{Error: "Token is required"}
	}

	claims, err := s.tokens.Verify(dto.Token)
	if err != nil {
		return ValidationResult{Error: "Invalid or expired token"}
	}

	if dto.RequiredTokenType != "" && !s.tokens.IsType(claims, dto.RequiredTokenType) {
		return ValidationResult{Error: fmt.Sprintf("Token type %s required", dto.RequiredTokenType)}
	}

	if dto.RequiredPermission != "" && !s.tokens.HasPermission(claims, dto.RequiredPermission) {
		return ValidationResult{Error: fmt.Sprintf("Permission %s required", dto.RequiredPermission)}
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ValidationResult{Error: "User not found"}
		}
		s.logger.Error("token validation: user lookup failed", "user_id", claims.UserID, "error", err)
		return ValidationResult{Error: "Token validation failed"}
	}

	if claims.TokenType == TokenTypeRefresh {
		stored, found := user.FindRefreshToken(dto.Token)
		if !found || stored.Expired(time.Now()) {
			return ValidationResult{Error: "Refresh token not found or expired"}
		}
	}

	info := user.Info()
	return ValidationResult{
		IsValid: true,
		Payload: claims,
		User:    &info,
	}
}

func (s *Service) issueTokenPair(user *User) (*AuthResponse, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(user.ID, refresh); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.Info(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) storeRefreshToken(userID int64, token string) error {
	now := time.Now()
	return s.repo.AddRefreshToken(userID, RefreshToken{
		Token:     token,
		ExpiresAt: now.Add(s.tokens.RefreshTTL),
		CreatedAt: now,
	})
}
