package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/session"
)

const (
	sessionCookie = "storefront_session"
	sessionKey    = "sessionID"
)

// sessionMiddleware resolves the shopper session from the cookie, issuing a
// fresh token (and setting the cookie) when none resolves.
func sessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if token, err := c.Cookie(sessionCookie); err == nil {
			sessionID, _ = sessions.Resolve(token)
		}
		if sessionID == "" {
			token, id, err := sessions.Issue()
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
			c.SetCookie(sessionCookie, token, sessions.TTLSeconds(), "/", "", false, true)
			sessionID = id
		}
		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
