package middleware

import (
	"context"
	"net/http"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"github.com/gorilla/sessions"
)

type ctxKey string

const identityKey ctxKey = "identity"

// SessionName is the cookie name carrying the login session.
const SessionName = "lab-session"

// Session value keys, shared with the login handler.
const (
	SessionKeyNTID = "nt_id"
	SessionKeyRole = "role"
)

// SessionAuth gates routes on a valid login session. On success it
// resolves the session into a models.Identity and stores it in the
// request context, so handlers never read ambient session state.
type SessionAuth struct {
	// Store is the cookie store holding login sessions.
	Store *sessions.CookieStore
}

// identity extracts the actor from the request's session. ok is false
// when the session is missing or incomplete.
func (a *SessionAuth) identity(r *http.Request) (models.Identity, bool) {
	session, err := a.Store.Get(r, SessionName)
	if err != nil {
		return models.Identity{}, false
	}
	ntID, ok := session.Values[SessionKeyNTID].(string)
	if !ok || ntID == "" {
		return models.Identity{}, false
	}
	role, ok := session.Values[SessionKeyRole].(string)
	if !ok {
		role = models.RoleUser
	}
	return models.Identity{NTID: ntID, Role: role}, true
}

// RequireLogin rejects requests without a login session with 401 and
// otherwise forwards with the identity in the context.
func (a *SessionAuth) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.identity(r)
		if !ok {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin behaves like RequireLogin but additionally rejects
// non-admin actors with 403.
func (a *SessionAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.identity(r)
		if !ok {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		if !id.IsAdmin() {
			http.Error(w, "admin privileges required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentityFromContext extracts the authenticated actor from the
// request context. ok is false when no auth middleware ran.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}
