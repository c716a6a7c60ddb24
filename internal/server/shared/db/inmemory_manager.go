package db

import (
	"context"
	"database/sql"

	"taskpilot/internal/server/accounts"
	"taskpilot/internal/server/tasks"
)

type InMemoryRepositoryManager struct {
	accounts accounts.Repository
	tasks    tasks.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		tasks:    tasks.NewMemoryRepository(),
	}
}
