package repositories

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its identifier, retired or not.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindActiveAccountByName retrieves the active account whose name matches
	// under case-insensitive comparison. Retired accounts never match.
	FindActiveAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListActiveAccounts retrieves all active accounts ordered by identifier.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data. Every method runs
// as a single atomic unit of work: the write commits in full or not at all.
type AccountWriter interface {
	// SaveAccount persists a new account and fills in its assigned identifier
	// and creation timestamp.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// RenameAccount updates the name of an active account.
	RenameAccount(ctx context.Context, accountID int64, newName string) error

	// RetireAccount marks an active account as retired.
	RetireAccount(ctx context.Context, accountID int64) error
}

// AccountRepository combines all account-related repository operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
