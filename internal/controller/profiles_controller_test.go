package controller

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobseekerProfile(t *testing.T) {
	t.Run("saves and rereads the profile", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.multipartRequest(t, "/api/jobseeker/profile", token, map[string]string{
			"phone":      "+14155552671",
			"location":   "London",
			"skills":     "go, sql , distributed systems",
			"experience": "4",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "Profile saved", messageOf(body))

		profile, ok := body["profile"].(map[string]any)
		require.True(t, ok)
		skills, _ := profile["skills"].([]any)
		assert.Equal(t, []any{"go", "sql", "distributed systems"}, skills)

		res = env.request(t, http.MethodGet, "/api/jobseeker/profile/me", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		profile, _ = decodeBody(t, res)["profile"].(map[string]any)
		assert.Equal(t, "London", profile["location"])
		assert.EqualValues(t, 4, profile["experience"])
	})

	t.Run("second save replaces the first", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.multipartRequest(t, "/api/jobseeker/profile", token, map[string]string{
			"phone":    "+14155552671",
			"location": "London",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()

		res = env.multipartRequest(t, "/api/jobseeker/profile", token, map[string]string{
			"phone":    "+14155552671",
			"location": "Cambridge",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()

		res = env.request(t, http.MethodGet, "/api/jobseeker/profile/me", token, nil)
		profile, _ := decodeBody(t, res)["profile"].(map[string]any)
		assert.Equal(t, "Cambridge", profile["location"])
	})

	t.Run("rejects an invalid phone number", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.multipartRequest(t, "/api/jobseeker/profile", token, map[string]string{
			"phone":    "not-a-phone",
			"location": "London",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid phone number", messageOf(decodeBody(t, res)))
	})

	t.Run("missing own profile is not found", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodGet, "/api/jobseeker/profile/me", token, nil)
		require.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Profile not found", messageOf(decodeBody(t, res)))
	})
}

func TestApplicantProfile(t *testing.T) {
	t.Run("employer reads the public fields only", func(t *testing.T) {
		env := setupEnv(t)
		employer, _ := env.signup(t, "employer", "Grace Hopper", "grace@example.com")
		seeker, seekerID := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.multipartRequest(t, "/api/jobseeker/profile", seeker, map[string]string{
			"phone":    "+14155552671",
			"location": "London",
			"skills":   "go",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()

		res = env.request(t, http.MethodGet, "/api/jobseeker/profile/applicant/"+seekerID, employer, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		profile, ok := decodeBody(t, res)["profile"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "London", profile["location"])
		assert.NotContains(t, profile, "resume_text")
	})

	t.Run("missing profile is not found", func(t *testing.T) {
		env := setupEnv(t)
		employer, _ := env.signup(t, "employer", "Grace Hopper", "grace@example.com")

		res := env.request(t, http.MethodGet, "/api/jobseeker/profile/applicant/"+uuid.NewString(), employer, nil)
		require.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Applicant profile not found", messageOf(decodeBody(t, res)))
	})

	t.Run("jobseekers cannot read other applicants", func(t *testing.T) {
		env := setupEnv(t)
		seeker, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodGet, "/api/jobseeker/profile/applicant/"+uuid.NewString(), seeker, nil)
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})
}

func TestEmployerProfile(t *testing.T) {
	t.Run("saves and rereads the company profile", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "employer", "Grace Hopper", "grace@example.com")

		res := env.request(t, http.MethodPost, "/api/employer/profile", token, map[string]any{
			"company_name":  "Acme Systems",
			"website":       "https://acme.example.com",
			"industry":      "Software",
			"contact_email": "jobs@acme.example.com",
			"contact_phone": "+14155552671",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Profile saved", messageOf(decodeBody(t, res)))

		res = env.request(t, http.MethodGet, "/api/employer/profile/me", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		profile, _ := decodeBody(t, res)["profile"].(map[string]any)
		assert.Equal(t, "Acme Systems", profile["company_name"])
	})

	t.Run("requires company name and contact email", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "employer", "Grace Hopper", "grace@example.com")

		res := env.request(t, http.MethodPost, "/api/employer/profile", token, map[string]any{
			"industry": "Software",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("jobseekers are rejected", func(t *testing.T) {
		env := setupEnv(t)
		token, _ := env.signup(t, "jobseeker", "Ada Lovelace", "ada@example.com")

		res := env.request(t, http.MethodPost, "/api/employer/profile", token, map[string]any{
			"company_name":  "Acme Systems",
			"contact_email": "jobs@acme.example.com",
		})
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})
}
