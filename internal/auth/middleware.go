package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mosquito-alert/internal/domain"
)

// ContextUserIDKey is the fiber locals key carrying the authenticated user id.
const ContextUserIDKey = "auth_user_id"

// SessionReader exposes the current session to the middleware without
// depending on the store package.
type SessionReader interface {
	CurrentUser() *domain.User
}

// AuthMiddleware guards routes that require an authenticated session.
type AuthMiddleware struct {
	tokens  *TokenManager
	session SessionReader
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager, session SessionReader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, session: session}
}

// Handle validates the bearer token and checks it matches the active session.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		return domain.ErrNotAuthenticated
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return domain.ErrNotAuthenticated
	}

	current := m.session.CurrentUser()
	if current == nil || current.ID != claims.UserID {
		return domain.ErrNotAuthenticated
	}

	c.Locals(ContextUserIDKey, claims.UserID)
	return c.Next()
}
