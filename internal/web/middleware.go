package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"medtrack/web/domain"
)

type ctxKey string

const (
	ctxSessionID ctxKey = "sessionID"
	ctxToken     ctxKey = "token"
	ctxPrincipal ctxKey = "principal"
)

const sessionCookie = "medtrack_session"

// withSession attaches a session id cookie to every visitor and resolves
// the session's principal before any page renders. Resolution validates
// the stored credential against the backend; with no credential stored it
// is a pure local lookup.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}

		principal, err := h.sessions.Resolve(r.Context(), sid)
		if err != nil {
			h.log.WithError(err).Error("session resolution failed")
			principal = nil
		}
		tok, err := h.sessions.Token(sid)
		if err != nil {
			tok = ""
		}

		ctx := context.WithValue(r.Context(), ctxSessionID, sid)
		ctx = context.WithValue(ctx, ctxToken, tok)
		ctx = context.WithValue(ctx, ctxPrincipal, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth protects a route subtree: unauthenticated visitors are sent
// to the login page. No role check happens here; the backend is the
// authorization boundary.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionID).(string)
	return sid
}

func token(r *http.Request) string {
	tok, _ := r.Context().Value(ctxToken).(string)
	return tok
}

func principal(r *http.Request) *domain.Principal {
	p, _ := r.Context().Value(ctxPrincipal).(*domain.Principal)
	return p
}
