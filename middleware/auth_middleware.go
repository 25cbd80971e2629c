package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cristalclean/api/utils"
)

// AuthRequired protects the admin group. The JWT comes from the login
// cookie or an Authorization header; the token store check lets logout
// revoke a token before its expiry.
func AuthRequired(secret string, tokens *utils.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("admin_token")
		if err != nil {
			tokenString = c.GetHeader("Authorization")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
				return
			}
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}
		}

		claims, err := utils.ValidateJWT(secret, tokenString)
		if err != nil {
			log.Printf("AuthRequired: Invalid admin token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}
		if !tokens.Valid(claims.TokenID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Token revoked"})
			return
		}

		c.Set("token_id", claims.TokenID)
		c.Next()
	}
}
