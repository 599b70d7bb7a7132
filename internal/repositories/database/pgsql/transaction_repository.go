package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// transactionWithRefsQuery selects a transaction together with shallow
// summaries of both leg accounts. Legs carry no foreign keys, so the joins
// are LEFT and the summary columns may come back NULL.
const transactionWithRefsQuery = `
	SELECT t.transaction_id, t.description, t.date, t.amount,
	       t.debit_account_id, t.credit_account_id, t.is_active, t.created_at,
	       d.account_id, d.name, d.account_type,
	       c.account_id, c.name, c.account_type
	FROM transactions t
	LEFT JOIN accounts d ON d.account_id = t.debit_account_id
	LEFT JOIN accounts c ON c.account_id = t.credit_account_id
`

// SaveTransaction inserts a new transaction and fills in the identifier and
// creation timestamp the store assigned.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transactions (description, date, amount, debit_account_id, credit_account_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id, created_at;
	`
	err = tx.QueryRow(ctx, query,
		txn.Description,
		txn.Date,
		txn.Amount,
		txn.DebitAccountID,
		txn.CreditAccountID,
		txn.IsActive,
	).Scan(&txn.TransactionID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID, retired or not,
// with embedded account summaries for legs that resolve.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := transactionWithRefsQuery + ` WHERE t.transaction_id = $1;`

	txn, err := scanTransactionWithRefs(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %d: %w", transactionID, err)
	}
	return txn, nil
}

// ListActiveTransactions retrieves active transactions ordered newest date
// first, identifier ascending as the tiebreak so the order is stable and
// total. An optional account filter restricts to either leg.
func (r *PgxTransactionRepository) ListActiveTransactions(ctx context.Context, filterAccountID *int64) ([]domain.Transaction, error) {
	query := transactionWithRefsQuery + ` WHERE t.is_active`
	args := []any{}
	if filterAccountID != nil {
		query += ` AND (t.debit_account_id = $1 OR t.credit_account_id = $1)`
		args = append(args, *filterAccountID)
	}
	query += ` ORDER BY t.date DESC, t.transaction_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		txn, err := scanTransactionWithRefs(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return transactions, nil
}

// FindActiveTransactionsByAccountID retrieves the active transactions where
// the account sits on either leg. No account joins; this path feeds balance
// computation only.
func (r *PgxTransactionRepository) FindActiveTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, description, date, amount,
		       debit_account_id, credit_account_id, is_active, created_at
		FROM transactions
		WHERE is_active AND (debit_account_id = $1 OR credit_account_id = $1);
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.TransactionID,
			&txn.Description,
			&txn.Date,
			&txn.Amount,
			&txn.DebitAccountID,
			&txn.CreditAccountID,
			&txn.IsActive,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction overwrites all five mutable fields of an active
// transaction in place. Retired transactions are reported as not found.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET description = $2, date = $3, amount = $4, debit_account_id = $5, credit_account_id = $6
		WHERE transaction_id = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.Description,
		txn.Date,
		txn.Amount,
		txn.DebitAccountID,
		txn.CreditAccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, txn.TransactionID)
	}

	return r.Commit(ctx, tx)
}

// RetireTransaction marks an active transaction as retired.
func (r *PgxTransactionRepository) RetireTransaction(ctx context.Context, transactionID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET is_active = FALSE
		WHERE transaction_id = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to retire transaction %d: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}

	return r.Commit(ctx, tx)
}

func scanTransactionWithRefs(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var debitID, creditID sql.NullInt64
	var debitName, debitType, creditName, creditType sql.NullString

	err := row.Scan(
		&txn.TransactionID,
		&txn.Description,
		&txn.Date,
		&txn.Amount,
		&txn.DebitAccountID,
		&txn.CreditAccountID,
		&txn.IsActive,
		&txn.CreatedAt,
		&debitID, &debitName, &debitType,
		&creditID, &creditName, &creditType,
	)
	if err != nil {
		return nil, err
	}

	if debitID.Valid {
		txn.DebitAccount = &domain.AccountRef{
			AccountID:   debitID.Int64,
			Name:        debitName.String,
			AccountType: domain.AccountType(debitType.String),
		}
	}
	if creditID.Valid {
		txn.CreditAccount = &domain.AccountRef{
			AccountID:   creditID.Int64,
			Name:        creditName.String,
			AccountType: domain.AccountType(creditType.String),
		}
	}
	return &txn, nil
}
