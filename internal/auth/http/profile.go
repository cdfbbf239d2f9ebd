package http

import (
	"errors"
	"net/http"

	"github.com/fernwood/authd/internal/auth/service"
	"github.com/fernwood/authd/internal/auth/store"
	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/fernwood/authd/pkg/httpx"
	"github.com/fernwood/authd/pkg/slogx"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Profile Endpoint
//	@Description	Return the account record behind the presented access token, without password material
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.UserResponse	"id, email, firstName, lastName, role"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeUnauthorized,
			ErrorDescription: "Missing authentication context",
		})
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// A verified token whose subject no longer exists reads the same
		// as any other invalid credential.
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
				Error:            authsdk.ErrorCodeUnauthorized,
				ErrorDescription: "Account no longer exists",
			})
			return
		}
		log.Error("failed to load profile", "err", err, "user_id", userID)
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to load profile",
		})
		return
	}

	view := user.Redacted()
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		ID:        view.ID,
		Email:     view.Email,
		FirstName: view.FirstName,
		LastName:  view.LastName,
		Role:      view.Role.String(),
	})
}
