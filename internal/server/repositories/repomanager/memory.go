package repomanager

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/activities"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/goals"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/memory"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one memory.Store.
// The DBTX arguments are ignored.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error          { return nil }
func (m *InMemoryRepositoryManager) Close() error                            { return nil }
func (m *InMemoryRepositoryManager) Conn() dbx.DBTX                          { return nil }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return m.store.WithTx(ctx, func(ctx context.Context) error {
		return fn(ctx, nil)
	})
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memory.NewUsersRepository(m.store)
}

func (m *InMemoryRepositoryManager) Activities(dbx.DBTX) activities.Repository {
	return memory.NewActivitiesRepository(m.store)
}

func (m *InMemoryRepositoryManager) Goals(dbx.DBTX) goals.Repository {
	return memory.NewGoalsRepository(m.store)
}
