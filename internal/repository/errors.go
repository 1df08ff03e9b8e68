package repository

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// IsRecordNotFound reports whether the error is a missing-record error
// from any of the repositories.
func IsRecordNotFound(err error) bool {
	return repository.IsRecordNotFound(err)
}

// IsUniqueViolation reports whether the error came from a unique index.
// Both the sqlite and postgres drivers surface these as plain strings.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	for _, fragment := range []string{
		"UNIQUE constraint failed",
		"duplicate key value violates unique constraint",
		"constraint failed: UNIQUE",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

// conflict wraps a unique index violation as a rich conflict error
func conflict(err error, msg string, metadata map[string]any) error {
	return goerrors.Wrap(err, goerrors.CategoryConflict, msg).
		WithCode(goerrors.CodeConflict).
		WithMetadata(metadata)
}
