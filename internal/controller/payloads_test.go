package controller

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{Name: "Dana", Email: "dana@example.com", Password: "secret1"}
	require.Nil(t, valid.Validate())

	t.Run("rejects malformed emails", func(t *testing.T) {
		bad := SignupRequest{Name: "Dana", Email: "not-an-email", Password: "secret1"}
		err := bad.Validate()
		require.NotNil(t, err)
		assert.Equal(t, goerrors.CategoryValidation, err.Category)
		assert.Equal(t, goerrors.CodeBadRequest, err.Code)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		short := SignupRequest{Name: "Dana", Email: "dana@example.com", Password: "abc"}
		err := short.Validate()
		require.NotNil(t, err)
		assert.Equal(t, goerrors.CodeBadRequest, err.Code)
	})

	t.Run("requires all fields", func(t *testing.T) {
		err := SignupRequest{Email: "dana@example.com", Password: "secret1"}.Validate()
		require.NotNil(t, err)
		assert.Equal(t, "Name, email and password are required", err.Message)
	})
}

func TestLoginRequestValidate(t *testing.T) {
	require.Nil(t, LoginRequest{Email: "dana@example.com", Password: "secret1"}.Validate())

	err := LoginRequest{Email: "dana@example.com"}.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "Email and password are required", err.Message)
	assert.Equal(t, goerrors.CodeBadRequest, err.Code)
}

func TestJobPayloadValidate(t *testing.T) {
	valid := JobPayload{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Location:    "Berlin",
		SalaryMin:   50000,
		SalaryMax:   90000,
	}
	require.Nil(t, valid.Validate())

	t.Run("rejects an inverted salary range", func(t *testing.T) {
		inverted := valid
		inverted.SalaryMin = 90000
		inverted.SalaryMax = 50000
		err := inverted.Validate()
		require.NotNil(t, err)
		assert.Equal(t, goerrors.CodeBadRequest, err.Code)
	})

	t.Run("requires a title", func(t *testing.T) {
		missing := valid
		missing.Title = ""
		err := missing.Validate()
		require.NotNil(t, err)
		assert.Equal(t, goerrors.CategoryValidation, err.Category)
	})
}

func TestEmployerProfilePayloadValidate(t *testing.T) {
	valid := EmployerProfilePayload{
		CompanyName:  "Initech",
		ContactEmail: "hr@initech.example",
	}
	require.NoError(t, valid.Validate())

	err := EmployerProfilePayload{ContactEmail: "hr@initech.example"}.Validate()
	require.Error(t, err)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	assert.Equal(t, goerrors.CodeBadRequest, rich.Code)
}

func TestJobseekerProfilePayloadValidate(t *testing.T) {
	require.NoError(t, JobseekerProfilePayload{Location: "Berlin", Experience: 3}.Validate())

	err := JobseekerProfilePayload{Experience: -1}.Validate()
	require.Error(t, err)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	assert.Equal(t, goerrors.CodeBadRequest, rich.Code)
}
