package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/domain"
	"fynix/internal/logger"
	"fynix/internal/service"
)

const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

func bearerToken(c *gin.Context) (string, bool) {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

// AuthMiddleware validates the bearer token and stores the caller's tenant,
// user and role on the context. Rejected tokens are logged at debug level.
func AuthMiddleware(authService service.AuthService, log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log).Named("auth")
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Debug("token rejected",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole lets the request through only when the caller holds one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			abort(c, http.StatusForbidden, "FORBIDDEN", "role not found in context")
			return
		}
		if _, ok := allowed[role]; !ok {
			abort(c, http.StatusForbidden, "FORBIDDEN", "role "+string(role)+" may not perform this action")
			return
		}
		c.Next()
	}
}

func contextUUID(c *gin.Context, key string) (uuid.UUID, error) {
	val, _ := c.Get(key)
	id, ok := val.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// GetTenantID returns the authenticated tenant.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	return contextUUID(c, ContextKeyTenantID)
}

// GetUserID returns the authenticated user.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	return contextUUID(c, ContextKeyUserID)
}

func GetRole(c *gin.Context) domain.UserRole {
	return domain.UserRole(c.GetString(ContextKeyRole))
}
