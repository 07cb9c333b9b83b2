package middleware

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer ID token locally against the identity
// platform's signing keys and stores the subject uid and email on the
// request context.
func AuthMiddleware(verifier domain.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Authorization header must be a Bearer token", nil)
			c.Abort()
			return
		}

		claims, err := verifier.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", err.Error())
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UID)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		c.Next()
	}
}
