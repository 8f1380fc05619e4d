package httpapi

import (
	"net/http"
	"strings"
	"time"

	"sdgdash.org/internal/audit"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx := audit.WithActor(r.Context(), req.Username)
	if err := a.sess.Login(ctx, req.Username, req.Password); err != nil {
		audit.LogEvent(ctx, "session.login.rejected", nil)
		handleServiceError(w, r, err)
		return
	}
	audit.LogEvent(ctx, "session.login", nil)
	writeJSON(w, http.StatusOK, a.sessionState())
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if err := a.sess.Logout(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	audit.LogEvent(r.Context(), "session.logout", nil)
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": false,
	})
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, a.sessionState())
}

func (a *API) sessionState() map[string]any {
	state := map[string]any{
		"authenticated": a.sess.IsAuthenticated(),
	}
	if exp, ok := a.sess.ExpiresAt(); ok {
		state["expires_at"] = exp.UTC().Format(time.RFC3339)
	}
	return state
}
