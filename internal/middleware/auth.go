package middleware

import (
	"net/http"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/pkg/apperror"
	"anoa.com/kolabboard/pkg/response"
	"anoa.com/kolabboard/pkg/token"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens token.Service
}

func NewAuthMiddleware(tokens token.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth verifies the bearer token and stores the principal on the
// context. Handlers read it back through response.GetPrincipal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))

		// Fallback to query parameter "token" (browsers can't set headers on WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		principal, err := m.tokens.Verify(tokenString)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		c.Set(response.PrincipalKey, *principal)
		c.Set(response.UserIDKey, principal.ID.String())
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := response.GetPrincipal(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		if !entity.NormalizeRole(principal.Role).Is(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": apperror.ErrForbidden.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
