package middleware

import (
	"strings"

	"broadcast_backend/internal/auth"
	"broadcast_backend/internal/logger"
	"broadcast_backend/pkg/apperrors"
	"broadcast_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет JWT и кладет userID/siteAdmin в gin.Context
type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// Required - запрос без валидного токена отклоняется с 401
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := auth.ParseToken(tokenStr, m.secret)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Invalid token", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// Optional - токен не обязателен; без него запрос выполняется как гость (userID = 0).
// Невалидный токен все равно отклоняется, чтобы клиент узнал об истекшей сессии.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Set(string(contextkeys.UserIDKey), uint(0))
			c.Set(string(contextkeys.SiteAdminKey), false)
			c.Next()
			return
		}

		claims, err := auth.ParseToken(tokenStr, m.secret)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireSiteAdmin ставится после Required
func (m *AuthMiddleware) RequireSiteAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsSiteAdmin(c) {
			logger.CtxWarn(c.Request.Context(), "Access denied: site admin required", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.UserIDKey), claims.UserID)
	c.Set(string(contextkeys.SiteAdminKey), claims.SiteAdmin)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

// GetUserID извлекает ID пользователя из контекста (0 - гость)
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return 0
	}
	id, ok := userID.(uint)
	if !ok {
		return 0
	}
	return id
}

func IsSiteAdmin(c *gin.Context) bool {
	return c.GetBool(string(contextkeys.SiteAdminKey))
}
