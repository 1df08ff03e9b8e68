package repository

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/jobboard/internal/model"
)

// JobSearchParams narrows a job listing. Zero fields are ignored.
type JobSearchParams struct {
	Keyword   string
	Location  string
	MinSalary *int
	MaxSalary *int
}

type Jobs interface {
	repository.Repository[*model.Job]

	ByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.Job, error)
	All(ctx context.Context) ([]*model.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*model.Job, error)
	Search(ctx context.Context, params JobSearchParams) ([]*model.Job, error)

	Post(ctx context.Context, job *model.Job) (*model.Job, error)
	Amend(ctx context.Context, job *model.Job) (*model.Job, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type jobs struct {
	repository.Repository[*model.Job]
	db *bun.DB
}

var (
	_ Jobs                              = (*jobs)(nil)
	_ repository.Repository[*model.Job] = (*jobs)(nil)
)

func NewJobsRepository(db *bun.DB) Jobs {
	repo := repository.NewRepository[*model.Job](db, repository.ModelHandlers[*model.Job]{
		NewRecord: func() *model.Job { return &model.Job{} },
		GetID: func(j *model.Job) uuid.UUID {
			if j == nil {
				return uuid.Nil
			}
			return j.ID
		},
		SetID: func(j *model.Job, id uuid.UUID) {
			if j != nil {
				j.ID = id
			}
		},
	})

	return &jobs{
		Repository: repo,
		db:         db,
	}
}

func (a *jobs) ByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	return a.ByIDTx(ctx, a.db, id)
}

func (a *jobs) ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.Job, error) {
	record := &model.Job{}
	err := tx.NewSelect().
		Model(record).
		Relation("Employer").
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

func (a *jobs) All(ctx context.Context) ([]*model.Job, error) {
	records := []*model.Job{}
	err := a.db.NewSelect().
		Model(&records).
		Relation("Employer").
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

func (a *jobs) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*model.Job, error) {
	records := []*model.Job{}
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.employer_id = ?", employerID).
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

func (a *jobs) Search(ctx context.Context, params JobSearchParams) ([]*model.Job, error) {
	records := []*model.Job{}

	q := a.db.NewSelect().
		Model(&records).
		Relation("Employer").
		Order("created_at DESC")

	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("lower(?TableAlias.title) LIKE ?", pattern).
				WhereOr("lower(?TableAlias.description) LIKE ?", pattern)
		})
	}

	if location := strings.TrimSpace(params.Location); location != "" {
		q = q.Where("lower(?TableAlias.location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	// salary filters bound the advertised floor, an opening paying
	// "80k and up" matches a search capped at 100k
	if params.MinSalary != nil {
		q = q.Where("?TableAlias.salary_min >= ?", *params.MinSalary)
	}
	if params.MaxSalary != nil {
		q = q.Where("?TableAlias.salary_min <= ?", *params.MaxSalary)
	}

	err := q.Scan(ctx)
	return records, err
}

func (a *jobs) Post(ctx context.Context, job *model.Job) (*model.Job, error) {
	prepareJobDefaults(job)
	return a.Repository.CreateTx(ctx, a.db, job)
}

func (a *jobs) Amend(ctx context.Context, job *model.Job) (*model.Job, error) {
	return a.Repository.UpdateTx(ctx, a.db, job,
		repository.UpdateByID(job.ID.String()),
		repository.UpdateSkipZeroValues(),
	)
}

func (a *jobs) Remove(ctx context.Context, id uuid.UUID) error {
	record := &model.Job{ID: id}
	_, err := a.db.NewDelete().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	return err
}

func prepareJobDefaults(record *model.Job) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
