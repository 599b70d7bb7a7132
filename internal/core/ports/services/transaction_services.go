package services

import (
	"context"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
type TransactionReaderSvc interface {
	// ListActive retrieves active transactions, newest date first, optionally
	// filtered to those touching the given account on either leg.
	ListActive(ctx context.Context, filterAccountID *int64) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data.
type TransactionWriterSvc interface {
	// CreateTransaction validates and records a new transaction.
	CreateTransaction(ctx context.Context, req dto.SaveTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction re-validates and fully replaces the five mutable
	// fields of an active transaction.
	UpdateTransaction(ctx context.Context, transactionID int64, req dto.SaveTransactionRequest) (*domain.Transaction, error)

	// RetireTransaction soft-deletes an active transaction and returns the
	// post-retirement state of both leg accounts with balances populated.
	// A leg that no longer resolves to an account comes back nil.
	RetireTransaction(ctx context.Context, transactionID int64) (debit *domain.Account, credit *domain.Account, err error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
