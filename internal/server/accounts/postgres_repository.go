package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"taskpilot/internal/dbx"
	"taskpilot/internal/shared"
)

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query :=
		`SELECT id, email, password_hash, COALESCE(otp, ''), verified, created_at FROM accounts
		 WHERE email = $1
		 `

	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.OTP, &account.Verified, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	query :=
		`INSERT INTO accounts (email, password_hash, otp)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.OTP).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		// unique_violation on the email index closes the lookup-then-insert race
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) UpdateOTP(ctx context.Context, email, otp string) error {
	query :=
		`UPDATE accounts SET otp = $2
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email, otp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, email string) error {
	query :=
		`UPDATE accounts SET verified = true, otp = NULL
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}

	return nil
}
