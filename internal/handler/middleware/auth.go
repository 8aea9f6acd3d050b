package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/pkg/cookie"
	"aura-inn/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

var _ TokenValidator = (*jwt.Service)(nil)

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxAdminKey     = "admin_username"
	ctxAdminRoleKey = "admin_role"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAdmin accepts the session cookie first and falls back to a Bearer token.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.NewResponse(http.StatusUnauthorized, "Access token required", nil))
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.NewResponse(http.StatusUnauthorized, "Invalid or expired token", nil))
			return
		}

		c.Set(ctxAdminKey, claims.Subject)
		c.Set(ctxAdminRoleKey, claims.Role)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.Subject,
			"role":    claims.Role,
		})
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAdminUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxAdminKey)
	if !exists {
		return "", false
	}
	name, ok := v.(string)
	return name, ok && name != ""
}
