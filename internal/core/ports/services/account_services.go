package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// ListActiveGrouped retrieves all active accounts partitioned by type,
	// each with its computed balance. Every type is present as a key, empty
	// groups included.
	ListActiveGrouped(ctx context.Context) (map[domain.AccountType][]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount registers a new active account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// RenameAccount changes an active account's name. Renaming to the current
	// name is a no-op that returns the unchanged account without a write.
	// The renamed bool reports whether a write happened.
	RenameAccount(ctx context.Context, accountID int64, newName string) (account *domain.Account, renamed bool, err error)

	// RetireAccount soft-deletes an active account and returns its final state.
	RetireAccount(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AccountCalculatorSvc defines balance computation for account data.
type AccountCalculatorSvc interface {
	// GetBalance computes the account's balance from its active transactions.
	// Works for retired accounts too; they simply no longer appear in listings.
	GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
