package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
)

// ContextKeyIdentity is the gin context key of the resolved *models.Identity
const ContextKeyIdentity = "identity"

// DefaultTokenHeader carries the bearer token when no other header is configured
const DefaultTokenHeader = "Authentication-Token"

// IdentityResolver maps a bearer token to an identity
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	resolver    IdentityResolver
	tokenHeader string
}

// NewAuthMiddleware creates a new AuthMiddleware reading tokens from
// tokenHeader, or from the Authorization header as a Bearer token.
func NewAuthMiddleware(resolver IdentityResolver, tokenHeader string) *AuthMiddleware {
	if strings.TrimSpace(tokenHeader) == "" {
		tokenHeader = DefaultTokenHeader
	}
	return &AuthMiddleware{
		resolver:    resolver,
		tokenHeader: tokenHeader,
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(m.tokenHeader)); token != "" {
		return auth.ExtractBearerToken(token)
	}
	return auth.ExtractBearerToken(c.GetHeader("Authorization"))
}

// Authenticate resolves the request token and stores the identity in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		identity, err := m.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// RoleRequired aborts with 403 unless the authenticated identity holds role
func (m *AuthMiddleware) RoleRequired(role models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		if !identity.HasRole(role) {
			HandleAPIError(c, apperrors.NewForbiddenError(string(role)+" role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by Authenticate
func IdentityFromContext(c *gin.Context) (*models.Identity, bool) {
	value, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok && identity != nil
}
