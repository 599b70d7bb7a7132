package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// transactionDateLayouts are the accepted date formats, plain calendar date
// first. ISO datetimes are tolerated and truncated to their date, matching
// the clients that send timestamps with a trailing Z.
var transactionDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// TransactionService owns transaction identity, validation and lifecycle.
type TransactionService struct {
	transactionRepo portsrepo.TransactionRepository
	accountRepo     portsrepo.AccountReader
}

// NewTransactionService creates the transaction ledger service. The account
// reader resolves legs when reporting post-retirement balances.
func NewTransactionService(transactionRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountReader) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// ListActive returns active transactions newest date first, optionally
// filtered to those where the given account sits on either leg.
func (s *TransactionService) ListActive(ctx context.Context, filterAccountID *int64) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transactions, err := s.transactionRepo.ListActiveTransactions(ctx, filterAccountID)
	if err != nil {
		logger.Error("Failed to list transactions from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

// CreateTransaction validates and records a new transaction. The legs are
// only checked for being distinct; they may reference retired or unknown
// accounts.
func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, date, err := validateTransactionFields(req)
	if err != nil {
		return nil, err
	}

	transaction := domain.Transaction{
		Description:     req.Description,
		Date:            date,
		Amount:          amount,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		IsActive:        true,
	}

	if err := s.transactionRepo.SaveTransaction(ctx, &transaction); err != nil {
		logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created successfully in service", slog.Int64("transaction_id", transaction.TransactionID))
	return s.reload(ctx, transaction.TransactionID, &transaction)
}

// UpdateTransaction re-validates and fully replaces all five mutable fields
// of an active transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findActiveTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	amount, date, err := validateTransactionFields(req)
	if err != nil {
		return nil, err
	}

	existing.Description = req.Description
	existing.Date = date
	existing.Amount = amount
	existing.DebitAccountID = req.DebitAccountID
	existing.CreditAccountID = req.CreditAccountID

	if err := s.transactionRepo.UpdateTransaction(ctx, existing); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}

	logger.Info("Transaction updated successfully in service", slog.Int64("transaction_id", transactionID))
	return s.reload(ctx, transactionID, existing)
}

// RetireTransaction marks an active transaction as retired and reports the
// post-retirement state of both leg accounts with balances populated. Legs
// that do not resolve to an account come back nil.
func (s *TransactionService) RetireTransaction(ctx context.Context, transactionID int64) (*domain.Account, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.findActiveTransaction(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.transactionRepo.RetireTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to retire transaction in repository", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		}
		return nil, nil, err
	}

	debit, err := s.accountWithBalance(ctx, existing.DebitAccountID)
	if err != nil {
		return nil, nil, err
	}
	credit, err := s.accountWithBalance(ctx, existing.CreditAccountID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Transaction retired successfully in service", slog.Int64("transaction_id", transactionID))
	return debit, credit, nil
}

// findActiveTransaction looks a transaction up by id and treats retired
// transactions as not found, as every mutating operation must.
func (s *TransactionService) findActiveTransaction(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsActive {
		return nil, fmt.Errorf("%w: transaction %d is retired", apperrors.ErrNotFound, transactionID)
	}
	return transaction, nil
}

// reload re-reads a transaction so responses carry embedded account
// summaries. Falls back to the in-memory copy if the re-read fails.
func (s *TransactionService) reload(ctx context.Context, transactionID int64, fallback *domain.Transaction) (*domain.Transaction, error) {
	reloaded, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fallback, nil
	}
	return reloaded, nil
}

// accountWithBalance resolves a leg account and computes its current balance.
// A leg referencing an unknown account yields nil rather than an error.
func (s *TransactionService) accountWithBalance(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	transactions, err := s.transactionRepo.FindActiveTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for account %d: %w", accountID, err)
	}

	balance, err := accounting.Balance(account.AccountID, account.AccountType, transactions)
	if err != nil {
		return nil, err
	}
	account.Balance = balance
	return account, nil
}

// validateTransactionFields runs the shared create/update validation set:
// exact-decimal amount, calendar date, distinct legs. No sign or non-zero
// constraint on the amount, and no account-existence check on the legs.
func validateTransactionFields(req dto.SaveTransactionRequest) (decimal.Decimal, time.Time, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, req.Amount)
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, req.Date)
	}

	if req.DebitAccountID == req.CreditAccountID {
		return decimal.Zero, time.Time{}, apperrors.ErrSameAccounts
	}

	return amount, date, nil
}

func parseTransactionDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range transactionDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
