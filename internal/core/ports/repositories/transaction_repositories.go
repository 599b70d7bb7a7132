package repositories

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier, retired
	// or not, with embedded account summaries for legs that resolve.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListActiveTransactions retrieves active transactions ordered newest date
	// first with identifier as the tiebreak, optionally filtered to those
	// where filterAccountID appears on either leg. Embeds account summaries.
	ListActiveTransactions(ctx context.Context, filterAccountID *int64) ([]domain.Transaction, error)

	// FindActiveTransactionsByAccountID retrieves the active transactions in
	// which the account appears as the debit or credit leg, for balance math.
	FindActiveTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Every
// method runs as a single atomic unit of work.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and fills in its assigned
	// identifier and creation timestamp.
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error

	// UpdateTransaction overwrites all five mutable fields of an active
	// transaction in place.
	UpdateTransaction(ctx context.Context, txn *domain.Transaction) error

	// RetireTransaction marks an active transaction as retired.
	RetireTransaction(ctx context.Context, transactionID int64) error
}

// TransactionRepository combines all transaction-related repository operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
