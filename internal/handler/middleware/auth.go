package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"field-rental/internal/domain/user"
	"field-rental/internal/handler/httperr"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errNotAnOperator = errors.New("operator role required")
	errNoAuthContext = errors.New("auth context missing")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, errMissingToken,
				httperr.New(http.StatusUnauthorized, "UNAUTHORIZED", "Access token required"))
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if errs.Is(err, usecase.ErrTokenExpired) {
			httperr.AbortWithError(c, err,
				httperr.New(http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token expired"))
			return
		}
		if err != nil {
			slog.WarnContext(c.Request.Context(), "token validation failed", "error", err.Error())
			httperr.AbortWithError(c, err,
				httperr.New(http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token"))
			return
		}

		c.Set(ctxUserIDKey, identity.UserID)
		c.Set(ctxUserRoleKey, identity.Role)
		c.Next()
	}
}

// RequireOperator must run after RequireAuth.
func (m *AuthMiddleware) RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, errNoAuthContext,
				httperr.New(http.StatusInternalServerError, "INTERNAL", "Internal server error"))
			return
		}
		if !role.CanOperate() {
			httperr.AbortWithError(c, errNotAnOperator,
				httperr.New(http.StatusForbidden, "FORBIDDEN", "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}
