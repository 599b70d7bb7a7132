package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/finbooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/finbooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountService owns account identity, lifecycle and balance computation.
type AccountService struct {
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionReader
}

// NewAccountService creates the account registry service. The transaction
// reader is only used to compute balances.
func NewAccountService(accountRepo portsrepo.AccountRepository, transactionRepo portsrepo.TransactionReader) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// ListActiveGrouped returns all active accounts partitioned by type with
// computed balances. Every account type is present as a key, empty groups
// included, so callers never need to special-case missing types.
func (s *AccountService) ListActiveGrouped(ctx context.Context) (map[domain.AccountType][]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	groups := make(map[domain.AccountType][]domain.Account, len(domain.AccountTypes))
	for _, accountType := range domain.AccountTypes {
		groups[accountType] = []domain.Account{}
	}

	for _, acc := range accounts {
		balance, err := s.computeBalance(ctx, &acc)
		if err != nil {
			logger.Error("Failed to compute account balance", slog.String("error", err.Error()), slog.Int64("account_id", acc.AccountID))
			return nil, err
		}
		acc.Balance = balance
		groups[acc.AccountType] = append(groups[acc.AccountType], acc)
	}

	logger.Debug("Accounts listed successfully from service", slog.Int("count", len(accounts)))
	return groups, nil
}

// CreateAccount registers a new active account after validating the type
// against the closed enum and the name against active accounts.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType, ok := domain.ParseAccountType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, req.Type)
	}

	if err := s.checkNameAvailable(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	account := domain.Account{
		Name:        req.Name,
		AccountType: accountType,
		IsActive:    true,
		Balance:     decimal.Zero,
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateAccount) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_name", account.Name))
		}
		return nil, err
	}

	logger.Info("Account created successfully in service", slog.Int64("account_id", account.AccountID))
	return &account, nil
}

// RenameAccount changes an active account's name. Renaming to the exact
// current name succeeds without a write; the renamed result reports whether
// anything was persisted.
func (s *AccountService) RenameAccount(ctx context.Context, accountID int64, newName string) (*domain.Account, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findActiveAccount(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	if account.Name == newName {
		balance, err := s.computeBalance(ctx, account)
		if err != nil {
			return nil, false, err
		}
		account.Balance = balance
		logger.Debug("Rename is a no-op, skipping write", slog.Int64("account_id", accountID))
		return account, false, nil
	}

	if err := s.checkNameAvailable(ctx, newName, accountID); err != nil {
		return nil, false, err
	}

	if err := s.accountRepo.RenameAccount(ctx, accountID, newName); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateAccount) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to rename account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, false, err
	}

	account.Name = newName
	balance, err := s.computeBalance(ctx, account)
	if err != nil {
		return nil, false, err
	}
	account.Balance = balance

	logger.Info("Account renamed successfully in service", slog.Int64("account_id", accountID))
	return account, true, nil
}

// RetireAccount marks an active account as retired. Retirement does not
// cascade to transactions; existing ones keep referencing the account.
func (s *AccountService) RetireAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findActiveAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.RetireAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to retire account in repository", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	account.IsActive = false
	logger.Info("Account retired successfully in service", slog.Int64("account_id", accountID))
	return account, nil
}

// GetBalance computes the account's balance from its active transactions.
// Retired accounts remain computable for reporting.
func (s *AccountService) GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.computeBalance(ctx, account)
}

// findActiveAccount looks an account up by id and treats retired accounts as
// not found, which is how every mutating operation must see them.
func (s *AccountService) findActiveAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %d is retired", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// checkNameAvailable enforces case-insensitive name uniqueness among active
// accounts. selfID excludes the account being renamed so a case-only rename
// of an account's own name is not a clash.
func (s *AccountService) checkNameAvailable(ctx context.Context, name string, selfID int64) error {
	existing, err := s.accountRepo.FindActiveAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.AccountID != selfID {
		return fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, name)
	}
	return nil
}

func (s *AccountService) computeBalance(ctx context.Context, account *domain.Account) (decimal.Decimal, error) {
	transactions, err := s.transactionRepo.FindActiveTransactionsByAccountID(ctx, account.AccountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transactions for account %d: %w", account.AccountID, err)
	}
	return accounting.Balance(account.AccountID, account.AccountType, transactions)
}
