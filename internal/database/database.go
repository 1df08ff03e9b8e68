package database

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/jobboard/internal/config"
	"github.com/goliatone/jobboard/internal/model"
)

var _ persistence.Config = config.Persistence{}

// Connect opens the database, registers the models, runs the embedded
// migrations, and hands back the bun handle.
func Connect(ctx context.Context, cfg config.Persistence, logger glog.Logger) (*bun.DB, error) {
	db, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	persistence.RegisterModel((*model.User)(nil))
	persistence.RegisterModel((*model.Job)(nil))
	persistence.RegisterModel((*model.JobApplication)(nil))
	persistence.RegisterModel((*model.JobseekerProfile)(nil))
	persistence.RegisterModel((*model.EmployerProfile)(nil))

	client, err := persistence.New(cfg, db, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	if logger != nil {
		client.SetLogger(logger)
	}

	migrations, err := fs.Sub(GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}

	client.RegisterDialectMigrations(
		migrations,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	return client.DB(), nil
}
