package controller

import goerrors "github.com/goliatone/go-errors"

const (
	textCodeJobNotFound         = "JOB_NOT_FOUND"
	textCodeApplicationNotFound = "APPLICATION_NOT_FOUND"
	textCodeProfileNotFound     = "PROFILE_NOT_FOUND"
	textCodeNotAuthorized       = "NOT_AUTHORIZED"
	textCodeAlreadyApplied      = "APPLICATION_EXISTS"
	textCodeInvalidStatus       = "INVALID_APPLICATION_STATUS"
)

var ErrJobNotFound = goerrors.New(
	"Job not found",
	goerrors.CategoryNotFound,
).WithTextCode(textCodeJobNotFound).WithCode(goerrors.CodeNotFound)

var ErrApplicationNotFound = goerrors.New(
	"Application not found",
	goerrors.CategoryNotFound,
).WithTextCode(textCodeApplicationNotFound).WithCode(goerrors.CodeNotFound)

var ErrProfileNotFound = goerrors.New(
	"Profile not found",
	goerrors.CategoryNotFound,
).WithTextCode(textCodeProfileNotFound).WithCode(goerrors.CodeNotFound)

var ErrApplicantProfileNotFound = goerrors.New(
	"Applicant profile not found",
	goerrors.CategoryNotFound,
).WithTextCode(textCodeProfileNotFound).WithCode(goerrors.CodeNotFound)

// ErrNotAuthorized covers resource ownership checks. Role checks use the
// auth guard's ErrAccessDenied instead.
var ErrNotAuthorized = goerrors.New(
	"Not authorized",
	goerrors.CategoryAuthz,
).WithTextCode(textCodeNotAuthorized).WithCode(goerrors.CodeForbidden)

// ErrAlreadyApplied is a conflict on the (job, applicant) pair but the API
// contract reports it as a plain 400.
var ErrAlreadyApplied = goerrors.New(
	"Already applied for this job",
	goerrors.CategoryConflict,
).WithTextCode(textCodeAlreadyApplied).WithCode(goerrors.CodeBadRequest)

var ErrInvalidStatus = goerrors.New(
	"Invalid status",
	goerrors.CategoryValidation,
).WithTextCode(textCodeInvalidStatus).WithCode(goerrors.CodeBadRequest)
