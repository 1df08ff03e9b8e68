package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/jobboard/internal/model"
)

type Users interface {
	repository.Repository[*model.User]

	ByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByEmailTx(ctx context.Context, tx bun.IDB, email string) (*model.User, error)
	ByEmailAndRole(ctx context.Context, email string, role model.UserRole) (*model.User, error)
	ByEmailAndRoleTx(ctx context.Context, tx bun.IDB, email string, role model.UserRole) (*model.User, error)

	Register(ctx context.Context, user *model.User) (*model.User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *model.User) (*model.User, error)
}

type users struct {
	repository.Repository[*model.User]
	db *bun.DB
}

var (
	_ Users                              = (*users)(nil)
	_ repository.Repository[*model.User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*model.User](db, repository.ModelHandlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
		GetID: func(u *model.User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *model.User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) ByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return a.ByIDTx(ctx, a.db, id)
}

func (a *users) ByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*model.User, error) {
	record := &model.User{}
	err := tx.NewSelect().
		Model(record).
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

func (a *users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return a.ByEmailTx(ctx, a.db, email)
}

func (a *users) ByEmailTx(ctx context.Context, tx bun.IDB, email string) (*model.User, error) {
	record := &model.User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", model.NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) ByEmailAndRole(ctx context.Context, email string, role model.UserRole) (*model.User, error) {
	return a.ByEmailAndRoleTx(ctx, a.db, email, role)
}

func (a *users) ByEmailAndRoleTx(ctx context.Context, tx bun.IDB, email string, role model.UserRole) (*model.User, error) {
	record := &model.User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", model.NormalizeEmail(email)).
		Where("?TableAlias.user_role = ?", string(role)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email, "role": string(role)})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, user *model.User) (*model.User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *model.User) (*model.User, error) {
	prepareUserDefaults(user)

	record, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, conflict(err, "email already registered", map[string]any{
				"email": user.Email,
			})
		}
		return nil, err
	}

	return record, nil
}

func prepareUserDefaults(record *model.User) {
	if record == nil {
		return
	}

	record.Email = model.NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
