package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"power-store/utils"
)

const playerIDKey = "playerID"

// Auth requires a Bearer token and stores the caller's player id in the
// context.
func Auth(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(playerIDKey, claims.PlayerID)
		c.Next()
	}
}

// PlayerID is the authenticated caller. Only valid behind Auth.
func PlayerID(c *gin.Context) int64 {
	return c.GetInt64(playerIDKey)
}
