package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/goliatone/jobboard/internal/model"
)

// MiddlewareConfig configures the route guards
type MiddlewareConfig struct {
	Tokens TokenService
	Users  UserStore
	Logger Logger
	// ErrorHandler renders guard failures, defaults to a JSON body
	// with a single message field
	ErrorHandler fiber.ErrorHandler
}

func (cfg *MiddlewareConfig) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = writeGuardError
	}
}

// Protected returns a handler that requires a valid bearer token and a
// live account behind it. On success the user and claims are stored in
// the request locals for downstream handlers.
func Protected(cfg MiddlewareConfig) fiber.Handler {
	cfg.setDefaults()

	return func(c *fiber.Ctx) error {
		raw, err := tokenFromHeader(c)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.Tokens.Validate(raw)
		if err != nil {
			cfg.Logger.Debug("rejected token", "error", err)
			return cfg.ErrorHandler(c, ErrTokenInvalid)
		}

		uid, err := uuid.Parse(claims.UserID())
		if err != nil {
			return cfg.ErrorHandler(c, ErrTokenInvalid)
		}

		user, err := cfg.Users.ByID(c.UserContext(), uid)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return cfg.ErrorHandler(c, ErrUserGone)
			}
			cfg.Logger.Error("failed to load token subject", "error", err, "uid", uid)
			return cfg.ErrorHandler(c, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load account"))
		}

		c.Locals(ContextKey, user)
		c.Locals(ClaimsContextKey, claims)

		return c.Next()
	}
}

// RequireRoles returns a handler that only lets the listed roles through.
// It expects Protected to have run first.
func RequireRoles(roles ...model.UserRole) fiber.Handler {
	return RequireRolesWithConfig(MiddlewareConfig{}, roles...)
}

// RequireRolesWithConfig is RequireRoles with a custom error handler
func RequireRolesWithConfig(cfg MiddlewareConfig, roles ...model.UserRole) fiber.Handler {
	cfg.setDefaults()

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return cfg.ErrorHandler(c, ErrNotAuthenticated)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return cfg.ErrorHandler(c, ErrAccessDenied)
	}
}

func tokenFromHeader(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrNoToken
	}

	return strings.TrimSpace(parts[1]), nil
}

func writeGuardError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	message := ErrTokenInvalid.Message

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		if rich.Code != 0 {
			status = rich.Code
		}
		message = rich.Message
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}
