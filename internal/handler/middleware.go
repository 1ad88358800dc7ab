package handler

import (
	"net/http"

	"image-panel/internal/domain"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the panel session ID
const SessionCookieName = "panel_session"

// SessionMiddleware ties every request to a panel session
type SessionMiddleware struct {
	logger domain.Logger
	secure bool
}

// NewSessionMiddleware creates the middleware; secure marks the cookie HTTPS-only
func NewSessionMiddleware(logger domain.Logger, secure bool) *SessionMiddleware {
	return &SessionMiddleware{logger: logger, secure: secure}
}

// Middleware reuses a valid session cookie or issues a new one
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = id.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
			m.logger.Debug("Session started", "session_id", sessionID)
		}

		next.ServeHTTP(w, r.WithContext(withSessionID(r.Context(), sessionID)))
	})
}
