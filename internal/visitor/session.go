package visitor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the visitor session id across pages.
const CookieName = "funnel_session"

type ctxKey string

const sessionKey ctxKey = "funnel.session_id"

// WithSessionID stores the visitor session id in context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionIDFromContext extracts the visitor session id if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(sessionKey)
	if val == nil {
		return "", false
	}
	sessionID, ok := val.(string)
	return sessionID, ok && sessionID != ""
}

// NewSessionID creates a random session identifier.
func NewSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// Middleware assigns a session cookie to first-time visitors and puts the
// session id in the request context for downstream handlers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			sessionID = c.Value
		}
		if sessionID == "" {
			sessionID = NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}
