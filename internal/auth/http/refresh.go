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

type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange a valid refresh token for a fresh access/refresh token pair
//	@Description	Every refresh failure (bad signature, expiry, unknown or deactivated account) returns the same response
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RefreshRequest	true	"refreshToken"
//	@Success		200		{object}	authsdk.AuthResponse	"access_token, refresh_token, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if req.RefreshToken == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "refreshToken is required",
		})
		return
	}

	result, err := h.AuthService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeUnauthorized,
				ErrorDescription: "Invalid refresh token",
			})
			return
		}
		log.Error("failed to refresh tokens", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to refresh tokens",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(result))
}
