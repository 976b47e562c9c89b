// Package repomanager vends repository implementations bound to a database
// handle and runs work inside transactions, so services never depend on a
// concrete storage backend.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/activities"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/goals"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	// Conn is the non-transactional handle to pass to the repository
	// constructors outside WithTx.
	Conn() dbx.DBTX

	// WithTx runs fn in one transaction; repositories built from tx see and
	// roll back together.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error

	Users(db dbx.DBTX) users.Repository
	Activities(db dbx.DBTX) activities.Repository
	Goals(db dbx.DBTX) goals.Repository
}
