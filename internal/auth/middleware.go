package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/contact-funnel/internal/repository"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// TokenHeader is the request header carrying the bearer credential.
const TokenHeader = "x-auth-token"

const claimsKey = "auth_claims"

// Middleware validates bearer tokens and, for admin routes, re-checks the
// caller's admin flag against the credential store instead of trusting the
// token's embedded claim.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return apperrors.NewUnauthorized("no token, authorization denied")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("token is not valid")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// AdminOnly enforces authentication plus a live admin check. The user is
// re-fetched so a revoked admin flag takes effect before token expiry.
func (m *Middleware) AdminOnly(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return apperrors.NewUnauthorized("no token, authorization denied")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("token is not valid")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewForbidden("access denied, admin privileges required")
		}
		return apperrors.MapError(err)
	}
	if !user.IsAdmin {
		return apperrors.NewForbidden("access denied, admin privileges required")
	}

	claims.IsAdmin = true
	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated caller's claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
