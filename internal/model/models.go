package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record behind every authenticated request.
// The password is only ever stored as a bcrypt hash.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// NormalizeEmail lowercases and trims the email before any lookup or write
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Public returns a copy safe to embed in API responses
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// Job is a posting owned by exactly one employer
type Job struct {
	bun.BaseModel    `bun:"table:jobs,alias:job"`
	ID               uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	EmployerID       uuid.UUID  `bun:"employer_id,notnull,type:uuid" json:"employer_id,omitempty"`
	Employer         *User      `bun:"rel:belongs-to,join:employer_id=id" json:"employer,omitempty"`
	Title            string     `bun:"title,notnull" json:"title,omitempty"`
	Description      string     `bun:"description,notnull" json:"description,omitempty"`
	Qualifications   []string   `bun:"qualifications" json:"qualifications,omitempty"`
	Responsibilities []string   `bun:"responsibilities" json:"responsibilities,omitempty"`
	Location         string     `bun:"location,notnull" json:"location,omitempty"`
	SalaryMin        int        `bun:"salary_min,notnull" json:"salary_min"`
	SalaryMax        int        `bun:"salary_max,notnull" json:"salary_max"`
	CreatedAt        *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// JobApplication links one applicant to one job. The (job, applicant) pair
// is unique at the storage layer; a concurrent double-apply resolves to one
// row and one conflict error.
type JobApplication struct {
	bun.BaseModel `bun:"table:job_applications,alias:app"`
	ID            uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	JobID         uuid.UUID         `bun:"job_id,notnull,type:uuid,unique:uq_job_applicant" json:"job_id,omitempty"`
	Job           *Job              `bun:"rel:belongs-to,join:job_id=id" json:"job,omitempty"`
	ApplicantID   uuid.UUID         `bun:"applicant_id,notnull,type:uuid,unique:uq_job_applicant" json:"applicant_id,omitempty"`
	Applicant     *User             `bun:"rel:belongs-to,join:applicant_id=id" json:"applicant,omitempty"`
	Status        ApplicationStatus `bun:"status,notnull,default:'applied'" json:"status,omitempty"`
	CreatedAt     *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus backfills the default status on records created before the
// column default existed
func (a *JobApplication) EnsureStatus() {
	if a.Status == "" {
		a.Status = StatusApplied
	}
}

// JobseekerProfile holds the applicant-facing profile, one per user
type JobseekerProfile struct {
	bun.BaseModel `bun:"table:jobseeker_profiles,alias:jsp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Phone         string     `bun:"phone,notnull" json:"phone,omitempty"`
	Location      string     `bun:"location,notnull" json:"location,omitempty"`
	Skills        []string   `bun:"skills" json:"skills,omitempty"`
	Experience    int        `bun:"experience" json:"experience"`
	ResumeURL     string     `bun:"resume_url" json:"resume_url,omitempty"`
	ResumeText    string     `bun:"resume_text,type:text" json:"resume_text,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EmployerProfile holds the company-facing profile, one per user
type EmployerProfile struct {
	bun.BaseModel `bun:"table:employer_profiles,alias:emp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CompanyName   string     `bun:"company_name,notnull" json:"company_name,omitempty"`
	Website       string     `bun:"website" json:"website,omitempty"`
	Industry      string     `bun:"industry" json:"industry,omitempty"`
	ContactEmail  string     `bun:"contact_email,notnull" json:"contact_email,omitempty"`
	ContactPhone  string     `bun:"contact_phone,notnull" json:"contact_phone,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
