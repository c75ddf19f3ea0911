package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/middleware"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/service"
	"github.com/gorilla/sessions"
)

// AuthService defines the interface for login validation required by the
// AuthHandler.
type AuthService interface {
	// Login authenticates an actor by NT ID, optionally elevating to the
	// admin role when the password matches.
	Login(ctx context.Context, ntID, password string, wantAdmin bool) (models.Identity, error)
}

// AuthHandler handles login and logout, mapping identities onto cookie
// sessions.
type AuthHandler struct {
	// AuthService validates the submitted credentials.
	AuthService AuthService
	// Sessions stores login sessions in signed cookies.
	Sessions *sessions.CookieStore
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	// NTID is the user identifier; required.
	NTID string `json:"nt_id"`
	// Password is checked only when IsAdmin is set.
	Password string `json:"password"`
	// IsAdmin requests the admin role.
	IsAdmin bool `json:"is_admin"`
}

// Login handles POST /api/login. On success it stores the identity in a
// session cookie and echoes it back.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NTID == "" {
		writeMessage(w, http.StatusBadRequest, false, "NT ID is required")
		return
	}

	id, err := h.AuthService.Login(r.Context(), req.NTID, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			writeMessage(w, http.StatusUnauthorized, false, "Invalid credentials")
			return
		}
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}

	session, _ := h.Sessions.Get(r, middleware.SessionName)
	session.Values[middleware.SessionKeyNTID] = id.NTID
	session.Values[middleware.SessionKeyRole] = id.Role
	if err := session.Save(r, w); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"nt_id":   id.NTID,
		"role":    id.Role,
	})
}

// Logout handles POST /api/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to clear session")
		return
	}
	writeMessage(w, http.StatusOK, true, "You have been logged out.")
}
