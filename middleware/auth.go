package middleware

import (
	"net/http"
	"strings"
	"time"

	"Doodly/pkg/context"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates a Bearer access token for the given audience ("parent" or
// "child") and stores the identity in the gin context. Tokens close to
// expiry get a replacement in X-New-Access-Token.
func Auth(secret []byte, audience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		if claims.Audience != audience {
			response.Abort(c, http.StatusForbidden, "wrong account type for this endpoint")
			return
		}

		maybeRotate(c, secret, claims)
		setIdentity(c, claims)
		c.Next()
	}
}

// AuthAny accepts either audience; handlers branch on what they find in the
// context. Used for endpoints both parents and children may call.
func AuthAny(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}

		maybeRotate(c, secret, claims)
		setIdentity(c, claims)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "missing Authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "malformed Authorization header")
		return nil, false
	}

	claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	return claims, true
}

func maybeRotate(c *gin.Context, secret []byte, claims *jwt.Claims) {
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > 5*time.Minute {
		return
	}
	newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Audience, jwt.TypeAccess, time.Hour)
	if err != nil {
		return
	}
	c.Header("X-New-Access-Token", newToken)
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(context.CtxAudience, claims.Audience)
	switch claims.Audience {
	case jwt.AudienceChild:
		c.Set(context.CtxChildID, claims.UserID)
	case jwt.AudienceParent:
		c.Set(context.CtxParentID, claims.UserID)
	}
}
