package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Manager exposes all repositories
type Manager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Jobs() Jobs
	Applications() Applications
	JobseekerProfiles() JobseekerProfiles
	EmployerProfiles() EmployerProfiles
}

type mngr struct {
	db                *bun.DB
	users             Users
	jobs              Jobs
	applications      Applications
	jobseekerProfiles JobseekerProfiles
	employerProfiles  EmployerProfiles
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:                db,
		users:             NewUsersRepository(db),
		jobs:              NewJobsRepository(db),
		applications:      NewApplicationsRepository(db),
		jobseekerProfiles: NewJobseekerProfilesRepository(db),
		employerProfiles:  NewEmployerProfilesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.jobs == nil {
		return errors.New("repository jobs should be initialized")
	}

	if m.applications == nil {
		return errors.New("repository applications should be initialized")
	}

	if m.jobseekerProfiles == nil {
		return errors.New("repository jobseekerProfiles should be initialized")
	}

	if m.employerProfiles == nil {
		return errors.New("repository employerProfiles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Jobs() Jobs {
	return m.jobs
}

func (m mngr) Applications() Applications {
	return m.applications
}

func (m mngr) JobseekerProfiles() JobseekerProfiles {
	return m.jobseekerProfiles
}

func (m mngr) EmployerProfiles() EmployerProfiles {
	return m.employerProfiles
}
