package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"Doodly/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates operational endpoints behind a static bearer secret from
// config. Constant-time compare.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "missing admin token")
			return
		}
		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			response.Abort(c, http.StatusUnauthorized, "invalid admin token")
			return
		}
		c.Next()
	}
}
