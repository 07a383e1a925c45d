package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TheWaulicus/wolves-den-inventory/session"
)

const SessionCookie = "wdi_session"

// AuthRequired resolves the current actor from the session cookie or a
// bearer token and puts the opaque actor id into the gin context.
func AuthRequired(sess session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionID(c)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		s, err := sess.Get(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}
		c.Set("actorID", s.ActorID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if ck, err := c.Request.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// ActorID reads the actor id set by AuthRequired.
func ActorID(c *gin.Context) string {
	v, _ := c.Get("actorID")
	id, _ := v.(string)
	return id
}
