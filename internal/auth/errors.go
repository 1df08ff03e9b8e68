package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeNoToken            = "NO_TOKEN"
	textCodeTokenInvalid       = "TOKEN_INVALID"
	textCodeIdentityGone       = "IDENTITY_GONE"
	textCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	textCodeAccessDenied       = "ACCESS_DENIED"
	textCodeEmailTaken         = "EMAIL_TAKEN"
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// ErrNoToken is returned when a protected route is hit without a bearer token.
var ErrNoToken = goerrors.New("No token provided", goerrors.CategoryAuth).
	WithTextCode(textCodeNoToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid covers every token verification failure, expiry included.
// Callers get a single message so the response does not leak which check failed.
var ErrTokenInvalid = goerrors.New("Invalid or expired token", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenInvalid).
	WithCode(goerrors.CodeUnauthorized)

// ErrUserGone is returned when a valid token references a deleted account.
var ErrUserGone = goerrors.New("User no longer exists", goerrors.CategoryAuth).
	WithTextCode(textCodeIdentityGone).
	WithCode(goerrors.CodeUnauthorized)

var ErrNotAuthenticated = goerrors.New("Not authenticated", goerrors.CategoryAuth).
	WithTextCode(textCodeNotAuthenticated).
	WithCode(goerrors.CodeUnauthorized)

var ErrAccessDenied = goerrors.New("Access denied: insufficient permissions", goerrors.CategoryAuthz).
	WithTextCode(textCodeAccessDenied).
	WithCode(goerrors.CodeForbidden)

// ErrEmailInUse is returned on signup when the email belongs to an existing
// account, regardless of that account's role.
var ErrEmailInUse = goerrors.New("Email already in use", goerrors.CategoryConflict).
	WithTextCode(textCodeEmailTaken).
	WithCode(goerrors.CodeConflict)

// ErrInvalidPassword is returned when the password does not match the stored
// hash for an existing account.
var ErrInvalidPassword = goerrors.New("Invalid email or password", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeBadRequest)
