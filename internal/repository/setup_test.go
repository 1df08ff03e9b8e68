package repository

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/jobboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteCreateUsers = `CREATE TABLE users (
    id TEXT NOT NULL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    user_role TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    deleted_at TIMESTAMP NULL
);`

	sqliteCreateJobs = `CREATE TABLE jobs (
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
);`

	sqliteCreateApplications = `CREATE TABLE job_applications (
    id TEXT NOT NULL PRIMARY KEY,
    job_id TEXT NOT NULL,
    applicant_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'applied',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    FOREIGN KEY (job_id) REFERENCES jobs (id) ON DELETE CASCADE,
    FOREIGN KEY (applicant_id) REFERENCES users (id) ON DELETE CASCADE,
    CONSTRAINT uq_job_applicant UNIQUE (job_id, applicant_id)
);`

	sqliteCreateJobseekerProfiles = `CREATE TABLE jobseeker_profiles (
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
);`

	sqliteCreateEmployerProfiles = `CREATE TABLE employer_profiles (
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
);`
)

func setupDB(t *testing.T) (*bun.DB, func()) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	for _, stmt := range []string{
		sqliteCreateUsers,
		sqliteCreateJobs,
		sqliteCreateApplications,
		sqliteCreateJobseekerProfiles,
		sqliteCreateEmployerProfiles,
	} {
		_, err = bunDB.Exec(stmt)
		require.NoError(t, err)
	}

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return bunDB, cleanup
}

func seedUser(t *testing.T, db *bun.DB, email string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New(),
		Name:         "Seeded User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}

	_, err := db.Exec(
		"INSERT INTO users (id, name, email, password_hash, user_role) VALUES (?, ?, ?, ?, ?)",
		user.ID.String(), user.Name, user.Email, user.PasswordHash, string(user.Role),
	)
	require.NoError(t, err)

	return user
}

func seedJob(t *testing.T, db *bun.DB, employerID uuid.UUID, title, location string, salaryMin int) *model.Job {
	t.Helper()

	job := &model.Job{
		ID:          uuid.New(),
		EmployerID:  employerID,
		Title:       title,
		Description: "Build and operate things",
		Location:    location,
		SalaryMin:   salaryMin,
		SalaryMax:   salaryMin * 2,
	}

	_, err := db.Exec(
		"INSERT INTO jobs (id, employer_id, title, description, location, salary_min, salary_max) VALUES (?, ?, ?, ?, ?, ?, ?)",
		job.ID.String(), job.EmployerID.String(), job.Title, job.Description, job.Location, job.SalaryMin, job.SalaryMax,
	)
	require.NoError(t, err)

	return job
}
