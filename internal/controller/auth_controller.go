package controller

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/model"
)

// AuthController serves signup, login, and the whoami endpoint for both
// account roles.
type AuthController struct {
	Auther *auth.Auther
	Logger Logger
}

func NewAuthController(auther *auth.Auther) *AuthController {
	return &AuthController{
		Auther: auther,
		Logger: defLogger{},
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	a.Logger = logger
	return a
}

type SignupRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (p SignupRequest) Validate() *goerrors.Error {
	if strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Email) == "" ||
		p.Password == "" {
		return goerrors.New(
			"Name, email and password are required",
			goerrors.CategoryValidation,
		).WithCode(goerrors.CodeBadRequest)
	}

	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Email, is.Email),
			validation.Field(&p.Password, validation.Length(6, 128)),
		)
	}, "Invalid signup payload"); err != nil {
		return err.WithCode(goerrors.CodeBadRequest)
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (p LoginRequest) Validate() *goerrors.Error {
	if strings.TrimSpace(p.Email) == "" || p.Password == "" {
		return goerrors.New(
			"Email and password are required",
			goerrors.CategoryValidation,
		).WithCode(goerrors.CodeBadRequest)
	}
	return nil
}

// Signup registers a new account under the given role and returns a
// freshly minted token alongside the public view of the user.
func (a *AuthController) Signup(role model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(SignupRequest)
		if err := c.BodyParser(payload); err != nil {
			return respondError(c, badRequestBody(err))
		}

		if err := payload.Validate(); err != nil {
			return respondError(c, err)
		}

		token, user, err := a.Auther.SignUp(
			c.UserContext(),
			payload.Name,
			payload.Email,
			payload.Password,
			role,
		)
		if err != nil {
			a.Logger.Debug("signup rejected for %s: %v", role, err)
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": fmt.Sprintf("%s registered successfully", role),
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Login authenticates credentials scoped to the given role.
func (a *AuthController) Login(role model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(LoginRequest)
		if err := c.BodyParser(payload); err != nil {
			return respondError(c, badRequestBody(err))
		}

		if err := payload.Validate(); err != nil {
			return respondError(c, err)
		}

		token, user, err := a.Auther.Login(
			c.UserContext(),
			payload.Email,
			payload.Password,
			role,
		)
		if err != nil {
			a.Logger.Debug("login rejected for %s: %v", role, err)
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("%s logged in successfully", role),
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// Me echoes back the account resolved by the auth guard.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	return c.JSON(fiber.Map{
		"user": user.Public(),
	})
}
