package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkravcov/authgate/internal/dbx"
	"github.com/mkravcov/authgate/internal/server/repositories/settings"
	"github.com/mkravcov/authgate/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Settings(db dbx.DBTX) settings.Repository
}
