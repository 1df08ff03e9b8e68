package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/jobboard/internal/model"
)

type JobseekerProfiles interface {
	repository.Repository[*model.JobseekerProfile]

	ByUserID(ctx context.Context, userID uuid.UUID) (*model.JobseekerProfile, error)
	Save(ctx context.Context, profile *model.JobseekerProfile) (*model.JobseekerProfile, error)
}

type jobseekerProfiles struct {
	repository.Repository[*model.JobseekerProfile]
	db *bun.DB
}

var _ JobseekerProfiles = (*jobseekerProfiles)(nil)

func NewJobseekerProfilesRepository(db *bun.DB) JobseekerProfiles {
	repo := repository.NewRepository[*model.JobseekerProfile](db, repository.ModelHandlers[*model.JobseekerProfile]{
		NewRecord: func() *model.JobseekerProfile { return &model.JobseekerProfile{} },
		GetID: func(p *model.JobseekerProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *model.JobseekerProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &jobseekerProfiles{
		Repository: repo,
		db:         db,
	}
}

func (a *jobseekerProfiles) ByUserID(ctx context.Context, userID uuid.UUID) (*model.JobseekerProfile, error) {
	record := &model.JobseekerProfile{}
	err := a.db.NewSelect().
		Model(record).
		Relation("User").
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"user_id": userID.String()})
		}
		return nil, err
	}

	return record, nil
}

// Save creates the profile on first write and updates it afterwards,
// one profile per account.
func (a *jobseekerProfiles) Save(ctx context.Context, profile *model.JobseekerProfile) (*model.JobseekerProfile, error) {
	existing, err := a.ByUserID(ctx, profile.UserID)
	if err == nil {
		profile.ID = existing.ID
		return a.Repository.UpdateTx(ctx, a.db, profile,
			repository.UpdateByID(profile.ID.String()),
			repository.UpdateSkipZeroValues(),
		)
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	return a.Repository.CreateTx(ctx, a.db, profile)
}

type EmployerProfiles interface {
	repository.Repository[*model.EmployerProfile]

	ByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployerProfile, error)
	Save(ctx context.Context, profile *model.EmployerProfile) (*model.EmployerProfile, error)
}

type employerProfiles struct {
	repository.Repository[*model.EmployerProfile]
	db *bun.DB
}

var _ EmployerProfiles = (*employerProfiles)(nil)

func NewEmployerProfilesRepository(db *bun.DB) EmployerProfiles {
	repo := repository.NewRepository[*model.EmployerProfile](db, repository.ModelHandlers[*model.EmployerProfile]{
		NewRecord: func() *model.EmployerProfile { return &model.EmployerProfile{} },
		GetID: func(p *model.EmployerProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *model.EmployerProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	return &employerProfiles{
		Repository: repo,
		db:         db,
	}
}

func (a *employerProfiles) ByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployerProfile, error) {
	record := &model.EmployerProfile{}
	err := a.db.NewSelect().
		Model(record).
		Relation("User").
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"user_id": userID.String()})
		}
		return nil, err
	}

	return record, nil
}

func (a *employerProfiles) Save(ctx context.Context, profile *model.EmployerProfile) (*model.EmployerProfile, error) {
	existing, err := a.ByUserID(ctx, profile.UserID)
	if err == nil {
		profile.ID = existing.ID
		return a.Repository.UpdateTx(ctx, a.db, profile,
			repository.UpdateByID(profile.ID.String()),
			repository.UpdateSkipZeroValues(),
		)
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	return a.Repository.CreateTx(ctx, a.db, profile)
}
