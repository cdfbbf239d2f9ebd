package http

import (
	"net/http"

	"github.com/fernwood/authd/pkg/authsdk"
	"github.com/fernwood/authd/pkg/httpx"
)

type LogoutHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Acknowledge the end of a session
//	@Description	Tokens are stateless and stay valid until expiry; clients discard them on logout
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MessageResponse	"message"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "Successfully logged out",
	})
}
