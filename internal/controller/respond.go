package controller

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// respondError maps a rich error to its HTTP status and renders the
// {"message": ...} body every endpoint uses for failures. Anything that
// is not a rich error is masked as a 500 so internals never leak.
func respondError(c *fiber.Ctx, err error) error {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		rich = goerrors.Wrap(
			err,
			goerrors.CategoryInternal,
			"An unexpected server error occurred",
		).WithCode(goerrors.CodeInternal)
	}

	status := rich.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"message": rich.Message,
	})
}

func badRequestBody(err error) error {
	return goerrors.Wrap(
		err,
		goerrors.CategoryBadInput,
		"Invalid request body",
	).WithCode(goerrors.CodeBadRequest)
}
