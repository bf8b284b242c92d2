package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "session_id"

const contextKeyUID = "uid"

// TokenVerifier verifies a bearer access token into a uid.
type TokenVerifier interface {
	ParseAccessToken(tokenStr string) (*Claims, error)
}

// UIDFromContext returns the uid set by RequireAuth, or "" if unauthenticated.
func UIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUID)
	if !ok {
		return ""
	}
	uid, _ := v.(string)
	return uid
}

// SetUID stores a uid in the request context. Exported for handler tests.
func SetUID(c *gin.Context, uid string) {
	c.Set(contextKeyUID, uid)
}

// RequireAuth accepts either an Authorization bearer access token or a
// session cookie, and puts the resolved uid in context. Otherwise 401.
func RequireAuth(tokens TokenVerifier, sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := bearerUID(c, tokens); ok {
			SetUID(c, uid)
			c.Next()
			return
		}
		if sessions != nil {
			if sessionID, err := c.Cookie(SessionCookieName); err == nil && sessionID != "" {
				if uid, ok := sessions.GetUID(c.Request.Context(), sessionID); ok {
					SetUID(c, uid)
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
}

func bearerUID(c *gin.Context, tokens TokenVerifier) (string, bool) {
	if tokens == nil {
		return "", false
	}
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	tokenStr := strings.TrimSpace(header[len(prefix):])
	if tokenStr == "" {
		return "", false
	}
	claims, err := tokens.ParseAccessToken(tokenStr)
	if err != nil {
		return "", false
	}
	return claims.UID, true
}
