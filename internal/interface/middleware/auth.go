package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/pkg/helpers"
	"github.com/garagemlabs/garagem-api/pkg/response"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the access token and sets userID, userName and userEmail in
// the Gin context. Tokens are stateless; no server-side session lookup.
// Clients always get a generic 401; the parse detail (expired, malformed,
// bad signature) only goes to the log.
func Auth(jwt *helpers.JWTManager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			log.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("access token rejected")
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Nome)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the user identity when a valid token is present but never
// rejects the request. Routes behind it serve both anonymous and
// authenticated callers; an expired or garbled token is treated as anonymous.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("userName", claims.Nome)
				c.Set("userEmail", claims.Email)
			}
		}
		c.Next()
	}
}
