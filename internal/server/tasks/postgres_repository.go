package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskpilot/internal/dbx"
	"taskpilot/internal/shared"
)

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	query :=
		`INSERT INTO tasks (title, start_time, end_time, priority, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.StartTime, task.EndTime, task.Priority, task.Status).Scan(&task.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, task *Task) (*Task, error) {
	query :=
		`UPDATE tasks
		 SET title = $2, start_time = $3, end_time = $4, priority = $5, status = $6
		 WHERE id = $1
		 RETURNING id, title, start_time, end_time, priority, status
		 `

	updated := &Task{}
	err := r.db.QueryRowContext(ctx, query,
		id, task.Title, task.StartTime, task.EndTime, task.Priority, task.Status).Scan(
		&updated.ID, &updated.Title, &updated.StartTime, &updated.EndTime, &updated.Priority, &updated.Status)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1
		 `

	// deleting an absent id affects zero rows and is still a success
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, title, start_time, end_time, priority, status FROM tasks`)

	var conds []string
	var args []any

	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if col, ok := sortColumns[filter.SortBy]; ok {
		sb.WriteString(" ORDER BY " + col)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []*Task{}
	for rows.Next() {
		var item Task
		if err := rows.Scan(
			&item.ID, &item.Title, &item.StartTime, &item.EndTime, &item.Priority, &item.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
