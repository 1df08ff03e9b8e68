package controller

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/repository"
	"github.com/goliatone/jobboard/internal/upload"

	_ "github.com/mattn/go-sqlite3"
)

const testSchema = `
CREATE TABLE users (
    id TEXT NOT NULL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    user_role TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    deleted_at TIMESTAMP NULL
);

CREATE TABLE jobs (
    id TEXT NOT NULL PRIMARY KEY,
    employer_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    qualifications TEXT,
    responsibilities TEXT,
    location TEXT NOT NULL,
    salary_min INTEGER NOT NULL DEFAULT 0,
    salary_max INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (employer_id) REFERENCES users (id) ON DELETE CASCADE
);

CREATE TABLE job_applications (
    id TEXT NOT NULL PRIMARY KEY,
    job_id TEXT NOT NULL,
    applicant_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'applied',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (job_id) REFERENCES jobs (id) ON DELETE CASCADE,
    FOREIGN KEY (applicant_id) REFERENCES users (id) ON DELETE CASCADE,
    CONSTRAINT uq_job_applicant UNIQUE (job_id, applicant_id)
);

CREATE TABLE jobseeker_profiles (
    id TEXT NOT NULL PRIMARY KEY,
    user_id TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL,
    location TEXT NOT NULL,
    skills TEXT,
    experience INTEGER NOT NULL DEFAULT 0,
    resume_url TEXT,
    resume_text TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
);

CREATE TABLE employer_profiles (
    id TEXT NOT NULL PRIMARY KEY,
    user_id TEXT NOT NULL UNIQUE,
    company_name TEXT NOT NULL,
    website TEXT,
    industry TEXT,
    contact_email TEXT NOT NULL,
    contact_phone TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
);
`

type testEnv struct {
	app   *fiber.App
	repos repository.Manager
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())
	_, err = bunDB.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)
	_, err = bunDB.Exec(testSchema)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = bunDB.Close()
		_ = db.Close()
	})

	repos := repository.NewManager(bunDB)
	tokens := auth.NewTokenService(
		[]byte("controller-test-signing-key"),
		1,
		"jobboard",
		jwt.ClaimStrings{"jobboard:api"},
		nil,
	)
	auther := auth.NewAuthenticator(repos.Users(), tokens)

	resumes, err := upload.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	app := fiber.New()
	RegisterRoutes(app, Deps{
		Repos:   repos,
		Auther:  auther,
		Tokens:  tokens,
		Resumes: resumes,
	})

	return &testEnv{app: app, repos: repos}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func (e *testEnv) multipartRequest(t *testing.T, path, token string, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, val := range fields {
		require.NoError(t, writer.WriteField(key, val))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()

	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

// signup registers an account through the public endpoint and returns the
// token plus the new user's ID.
func (e *testEnv) signup(t *testing.T, role, name, email string) (string, string) {
	t.Helper()

	res := e.request(t, http.MethodPost, "/api/auth/"+role+"/signup", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "sekret-pass",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeBody(t, res)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)

	return token, id
}

func (e *testEnv) createJob(t *testing.T, token, title, location string, salaryMin, salaryMax int) string {
	t.Helper()

	res := e.request(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title":       title,
		"description": "Build and operate things",
		"location":    location,
		"salary_min":  salaryMin,
		"salary_max":  salaryMax,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeBody(t, res)
	job, ok := body["job"].(map[string]any)
	require.True(t, ok)
	id, _ := job["id"].(string)
	require.NotEmpty(t, id)

	return id
}

func messageOf(body map[string]any) string {
	msg, _ := body["message"].(string)
	return msg
}
