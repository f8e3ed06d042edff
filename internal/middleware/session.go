package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fabienpiette/recipe_finder/internal/activity"
)

const contextSession = "session"

// Session resolves the anonymous session from the X-Session-ID header,
// minting a token when none was sent. A minted token is echoed back so the
// client can reuse it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := activity.ResolveSession(c.GetHeader(activity.SessionHeader))
		if session.Minted {
			c.Header(activity.SessionHeader, session.Token)
		}

		c.Set(contextSession, session)
		c.Next()
	}
}

// GetSession returns the session resolved for this request. Outside the
// Session middleware it resolves a fresh one.
func GetSession(c *gin.Context) activity.Session {
	if v, ok := c.Get(contextSession); ok {
		if session, ok := v.(activity.Session); ok {
			return session
		}
	}
	return activity.ResolveSession(c.GetHeader(activity.SessionHeader))
}
