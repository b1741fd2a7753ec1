package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkomarov/garagehub/internal/common"
	"github.com/dkomarov/garagehub/internal/server/auth"
)

// userIDKey is the gin context key the authenticated user id is stored under.
const userIDKey = "userID"

// BearerAuth validates the Authorization header and stores the token's user
// id in the request context. Requests without a valid token are rejected
// with 401 before any handler runs.
func BearerAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}

		tokenString := strings.TrimPrefix(header, common.BearerPrefix)
		userID, err := auth.GetUserIDFromToken(tokenString, []byte(secretKey))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
