package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCtxKey = "session_id"
)

// sessionMiddleware resolves the caller's session id from X-Session-ID. A
// missing or malformed id is replaced with a fresh one, which is echoed back
// so the client can reuse it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(sessionHeader))
		if err != nil {
			id = uuid.New()
		}
		sid := id.String()
		c.Set(sessionCtxKey, sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
