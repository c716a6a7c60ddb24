// Package db wires the storage backends together behind a single
// RepositoryManager so the services stay storage-agnostic.
package db

import (
	"context"
	"database/sql"

	"taskpilot/internal/server/accounts"
	"taskpilot/internal/server/tasks"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
	Tasks() tasks.Repository
}
