package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bloghub/blog-management/internal/transport"
	"github.com/bloghub/blog-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Error("login failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Login successful", resp)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Refresh(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Token refreshed", resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ExtractTokenFromHeader(r.Header.Get("Authorization"))
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	result := h.Service.ValidateToken(ValidateTokenDTO{Token: token})
	if !result.IsValid {
		h.WriteError(w, http.StatusUnauthorized, result.Error)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Authenticator gates a route group on a valid access token carrying the
// given permission (empty means any authenticated user). The validated user
// and claims are attached to the request context.
func (h *Handler) Authenticator(requiredPermission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lg := logger.From(r.Context())

			token := ExtractTokenFromHeader(r.Header.Get("Authorization"))
			if token == "" {
				lg.Warn("auth middleware: missing authorization token")
				h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			result := h.Service.ValidateToken(ValidateTokenDTO{
				Token:              token,
				RequiredTokenType:  TokenTypeAccess,
				RequiredPermission: requiredPermission,
			})
			if !result.IsValid {
				lg.Warn("auth middleware: token rejected", "reason", result.Error)
				h.WriteError(w, http.StatusUnauthorized, result.Error)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserKey, result.User)
			ctx = context.WithValue(ctx, ContextTokenKey, result.Payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate requires a valid access token without a permission constraint.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return h.Authenticator("")(next)
}
