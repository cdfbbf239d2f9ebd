package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fernwood/authd/internal/auth/domain"
	"github.com/fernwood/authd/internal/auth/service"
	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/fernwood/authd/pkg/httpx"
	"github.com/fernwood/authd/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account and return its first access/refresh token pair
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"email, password, firstName, lastName, optional role"
//	@Success		201		{object}	authsdk.AuthResponse	"access_token, refresh_token, user"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "email is required",
		})
		return
	}
	if req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "password is required",
		})
		return
	}

	role := domain.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "role must be one of: member, admin",
		})
		return
	}

	result, err := h.AuthService.Register(ctx, service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		var policyErr *service.PasswordPolicyError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeConflict,
				ErrorDescription: "User with this email already exists",
			})
		case errors.As(err, &policyErr):
			httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeValidationFailed,
				ErrorDescription: "Password validation failed: " + strings.Join(policyErr.Violations, ", "),
			})
		default:
			log.Error("failed to register user", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to register user",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse(result))
}

// authResponse maps a minted token pair onto the wire shape shared by
// register, login and refresh.
func authResponse(result *domain.AuthResult) authsdk.AuthResponse {
	return authsdk.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: authsdk.UserResponse{
			ID:        result.User.ID,
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Role:      result.User.Role.String(),
		},
	}
}
