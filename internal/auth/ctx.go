package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/jobboard/internal/model"
)

type localsKey string

const (
	// ContextKey is the locals key holding the authenticated user
	ContextKey localsKey = "auth:user"
	// ClaimsContextKey is the locals key holding the validated claims
	ClaimsContextKey localsKey = "auth:claims"
)

// UserFromContext returns the authenticated user attached by Protected
func UserFromContext(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals(ContextKey).(*model.User)
	return user, ok && user != nil
}

// ClaimsFromContext returns the validated claims attached by Protected
func ClaimsFromContext(c *fiber.Ctx) (AuthClaims, bool) {
	claims, ok := c.Locals(ClaimsContextKey).(AuthClaims)
	return claims, ok && claims != nil
}
