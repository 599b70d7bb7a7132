package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index on lower(name) for active accounts.
const uniqueViolation = "23505"

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account and fills in the identifier and creation
// timestamp the store assigned.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (name, account_type, is_active)
		VALUES ($1, $2, $3)
		RETURNING account_id, created_at;
	`
	err = tx.QueryRow(ctx, query, account.Name, account.AccountType, account.IsActive).
		Scan(&account.AccountID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicateAccount, account.Name)
		}
		return fmt.Errorf("failed to save account %q: %w", account.Name, err)
	}

	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by its ID, retired or not.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, is_active, created_at
		FROM accounts
		WHERE account_id = $1;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}
	return account, nil
}

// FindActiveAccountByName retrieves the active account matching the name
// case-insensitively. Retired accounts never match, so a retired account's
// name is free for reuse.
func (r *PgxAccountRepository) FindActiveAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, is_active, created_at
		FROM accounts
		WHERE lower(name) = lower($1) AND is_active;
	`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active account named %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return account, nil
}

// ListActiveAccounts retrieves all active accounts ordered by identifier.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, is_active, created_at
		FROM accounts
		WHERE is_active
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

// RenameAccount updates the name of an active account.
func (r *PgxAccountRepository) RenameAccount(ctx context.Context, accountID int64, newName string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET name = $2
		WHERE account_id = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query, accountID, newName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicateAccount, newName)
		}
		return fmt.Errorf("failed to rename account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}

	return r.Commit(ctx, tx)
}

// RetireAccount marks an active account as retired. Already-retired accounts
// are reported as not found, never double-applied.
func (r *PgxAccountRepository) RetireAccount(ctx context.Context, accountID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET is_active = FALSE
		WHERE account_id = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to retire account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}

	return r.Commit(ctx, tx)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.AccountType,
		&account.IsActive,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
