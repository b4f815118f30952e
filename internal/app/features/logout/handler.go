// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("logout", zap.String("user_id", u.ID), zap.String("role", u.Role))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
}

// ServeLogout handles POST /logout and sends the browser home.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// APILogout handles POST /api/auth/logout.
func (h *Handler) APILogout(w http.ResponseWriter, r *http.Request) {
	h.signOut(w, r)
	apiutil.WriteJSON(w, http.StatusOK, map[string]bool{"signedOut": true})
}
