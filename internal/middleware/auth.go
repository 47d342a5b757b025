package middleware

import (
	"net/http"
	"strings"

	"expense-tracker-backend/internal/service"
	"expense-tracker-backend/internal/util"

	"github.com/gin-gonic/gin"
)

const ctxClaimsKey = "authClaims"

// AuthMiddleware extracts the Bearer token, verifies it and puts the
// caller's claims into the request scope. Requests without a valid token
// never reach the handlers behind it.
func AuthMiddleware(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing or invalid token")
			c.Abort()
			return
		}

		claims, err := identity.VerifyToken(tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid/expired token")
			c.Abort()
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified claims set by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// CurrentUserID returns the authenticated caller's user id.
func CurrentUserID(c *gin.Context) (uint, bool) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
