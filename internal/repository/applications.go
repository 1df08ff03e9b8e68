package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/jobboard/internal/model"
)

type Applications interface {
	repository.Repository[*model.JobApplication]

	ByID(ctx context.Context, id uuid.UUID) (*model.JobApplication, error)
	ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.JobApplication, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*model.JobApplication, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int, error)

	Submit(ctx context.Context, application *model.JobApplication) (*model.JobApplication, error)
	SubmitTx(ctx context.Context, tx bun.IDB, application *model.JobApplication) (*model.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.JobApplication, error)
	UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status model.ApplicationStatus) (*model.JobApplication, error)
}

type applications struct {
	repository.Repository[*model.JobApplication]
	db *bun.DB
}

var (
	_ Applications                                 = (*applications)(nil)
	_ repository.Repository[*model.JobApplication] = (*applications)(nil)
)

func NewApplicationsRepository(db *bun.DB) Applications {
	repo := repository.NewRepository[*model.JobApplication](db, repository.ModelHandlers[*model.JobApplication]{
		NewRecord: func() *model.JobApplication { return &model.JobApplication{} },
		GetID: func(a *model.JobApplication) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *model.JobApplication, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
	})

	return &applications{
		Repository: repo,
		db:         db,
	}
}

func (a *applications) ByID(ctx context.Context, id uuid.UUID) (*model.JobApplication, error) {
	return a.ByIDTx(ctx, a.db, id)
}

func (a *applications) ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.JobApplication, error) {
	record := &model.JobApplication{}
	err := tx.NewSelect().
		Model(record).
		Relation("Job").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (a *applications) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.JobApplication, error) {
	records := []*model.JobApplication{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Job").
		Where("?TableAlias.applicant_id = ?", applicantID).
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

func (a *applications) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*model.JobApplication, error) {
	records := []*model.JobApplication{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Applicant").
		Where("?TableAlias.job_id = ?", jobID).
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

func (a *applications) CountByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	return a.db.NewSelect().
		Model((*model.JobApplication)(nil)).
		Where("?TableAlias.job_id = ?", jobID).
		Count(ctx)
}

// Submit inserts a new application, relying on the composite unique index
// over (job_id, applicant_id) to reject a second application to the same job.
func (a *applications) Submit(ctx context.Context, application *model.JobApplication) (*model.JobApplication, error) {
	return a.SubmitTx(ctx, a.db, application)
}

func (a *applications) SubmitTx(ctx context.Context, tx bun.IDB, application *model.JobApplication) (*model.JobApplication, error) {
	prepareApplicationDefaults(application)

	record, err := a.Repository.CreateTx(ctx, tx, application)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, conflict(err, "application already submitted", map[string]any{
				"job_id":       application.JobID.String(),
				"applicant_id": application.ApplicantID.String(),
			})
		}
		return nil, err
	}

	return record, nil
}

func (a *applications) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicationStatus) (*model.JobApplication, error) {
	return a.UpdateStatusTx(ctx, a.db, id, status)
}

func (a *applications) UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status model.ApplicationStatus) (*model.JobApplication, error) {
	record := &model.JobApplication{
		ID:     id,
		Status: status,
	}

	return a.Repository.UpdateTx(ctx, tx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateSkipZeroValues(),
	)
}

func prepareApplicationDefaults(record *model.JobApplication) {
	if record == nil {
		return
	}

	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
