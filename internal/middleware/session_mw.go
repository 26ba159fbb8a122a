package middleware

import (
	"encoding/json"

	"billed/internal/auth"
	"billed/internal/model"
	"billed/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// CookieName is the cookie carrying the signed session token
	CookieName = "billed_session"
	// StorageKey is the gin context key holding the per-request storage
	StorageKey = "sessionStorage"
)

// SessionMiddleware turns the session cookie into a per-request storage blob.
// A missing or invalid cookie yields empty storage; the route guards decide
// what that means.
func SessionMiddleware(codec *auth.TokenCodec, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage := session.NewMemoryStorage()

		if token, err := c.Cookie(CookieName); err == nil && token != "" {
			claims, err := codec.Validate(token)
			if err != nil {
				log.Warn().Err(err).Msg("invalid session token, treating as logged out")
			} else {
				blob, err := json.Marshal(model.Session{Type: claims.Type, Email: claims.Email})
				if err == nil {
					storage.SetItem(session.UserKey, string(blob))
				}
			}
		}

		c.Set(StorageKey, storage)
		c.Next()
	}
}

// StorageFrom returns the request's session storage, always non-nil
func StorageFrom(c *gin.Context) *session.MemoryStorage {
	if v, ok := c.Get(StorageKey); ok {
		if storage, ok := v.(*session.MemoryStorage); ok {
			return storage
		}
	}
	return session.NewMemoryStorage()
}
