package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fernwood/authd/internal/auth/service"
	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/fernwood/authd/pkg/httpx"
	"github.com/fernwood/authd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange an email and password for an access/refresh token pair
//	@Description	Unknown emails and wrong passwords produce the same response, so the endpoint cannot be used to probe for accounts
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.AuthResponse	"access_token, refresh_token, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "email and password are required",
		})
		return
	}

	result, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeUnauthorized,
				ErrorDescription: "Invalid credentials",
			})
		case errors.Is(err, service.ErrAccountDeactivated):
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeUnauthorized,
				ErrorDescription: "Account is deactivated",
			})
		default:
			log.Error("failed to log in user", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(result))
}
