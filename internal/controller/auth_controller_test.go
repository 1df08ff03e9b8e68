package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	t.Run("registers a jobseeker and returns a token", func(t *testing.T) {
		env := setupEnv(t)

		res := env.request(t, http.MethodPost, "/api/auth/jobseeker/signup", "", map[string]any{
			"name":     "Ada Lovelace",
			"email":    "ada@example.com",
			"password": "sekret-pass",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "jobseeker registered successfully", messageOf(body))
		assert.NotEmpty(t, body["token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", user["email"])
		assert.Equal(t, "jobseeker", user["role"])
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("rejects a duplicate email with a conflict", func(t *testing.T) {
		env := setupEnv(t)
		env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodPost, "/api/auth/employer/signup", "", map[string]any{
			"name":     "Ada Again",
			"email":    "ada@example.com",
			"password": "sekret-pass",
		})
		require.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, "Email already in use", messageOf(decodeBody(t, res)))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		env := setupEnv(t)

		res := env.request(t, http.MethodPost, "/api/auth/jobseeker/signup", "", map[string]any{
			"email": "ada@example.com",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Name, email and password are required", messageOf(decodeBody(t, res)))
	})

	t.Run("rejects a malformed email with a bad request", func(t *testing.T) {
		env := setupEnv(t)

		res := env.request(t, http.MethodPost, "/api/auth/jobseeker/signup", "", map[string]any{
			"name":     "Ada Lovelace",
			"email":    "not-an-email",
			"password": "sekret-pass",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid signup payload", messageOf(decodeBody(t, res)))
	})
}

func TestLogin(t *testing.T) {
	t.Run("authenticates with valid credentials", func(t *testing.T) {
		env := setupEnv(t)
		env.signup(t, "employer", "Grace Hopper", "grace@example.com")

		res := env.request(t, http.MethodPost, "/api/auth/employer/login", "", map[string]any{
			"email":    "grace@example.com",
			"password": "sekret-pass",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "employer logged in successfully", messageOf(body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("rejects credentials scoped to the wrong role", func(t *testing.T) {
		env := setupEnv(t)
		env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodPost, "/api/auth/employer/login", "", map[string]any{
			"email":    "ada@example.com",
			"password": "sekret-pass",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid credentials for employer", messageOf(decodeBody(t, res)))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		env := setupEnv(t)
		env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodPost, "/api/auth/jobseeker/login", "", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong-pass",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid email or password", messageOf(decodeBody(t, res)))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		env := setupEnv(t)

		res := env.request(t, http.MethodPost, "/api/auth/jobseeker/login", "", map[string]any{
			"email": "ada@example.com",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Email and password are required", messageOf(decodeBody(t, res)))
	})
}

func TestMe(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		env := setupEnv(t)
		token, id := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, id, user["id"])
		assert.Equal(t, "ada@example.com", user["email"])
	})

	t.Run("requires a token", func(t *testing.T) {
		env := setupEnv(t)

		res := env.request(t, http.MethodGet, "/api/auth/me", "", nil)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "No token provided", messageOf(decodeBody(t, res)))
	})
}
