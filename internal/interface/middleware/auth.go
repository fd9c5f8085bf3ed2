package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-api/pkg/helpers"
	"go-blog-api/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
)

// Auth reads the session cookie, verifies the token, and injects the claim
// into the Gin context. Verification failures are clean 401s, never faults.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(helpers.TokenCookie)
		claims, err := jwt.Verify(token)
		if err != nil {
			msg := "invalid token"
			switch {
			case errors.Is(err, helpers.ErrTokenMissing):
				msg = "missing token"
			case errors.Is(err, helpers.ErrTokenExpired):
				msg = "token expired"
			}
			response.AbortError(c, http.StatusUnauthorized, "auth", msg, nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Next()
	}
}
