package accounting

import (
	"fmt"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedContribution applies the correct sign to a transaction amount based on
// the account type and the leg the account plays.
// A leg matching the account type's normal balance side increases the balance:
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func SignedContribution(amount decimal.Decimal, accountType domain.AccountType, leg domain.Side) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense:
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}

	if accountType.NormalSide() == leg {
		return amount, nil
	}
	return amount.Neg(), nil
}

// Balance sums the signed contributions of every transaction in which the
// account appears as either leg. Transactions that do not reference the
// account are rejected rather than skipped, since callers are expected to
// pre-filter to the account's legs. Exact decimal arithmetic throughout.
func Balance(accountID int64, accountType domain.AccountType, transactions []domain.Transaction) (decimal.Decimal, error) {
	balance := decimal.Zero

	for _, txn := range transactions {
		leg, ok := txn.LegFor(accountID)
		if !ok {
			return decimal.Zero, fmt.Errorf("transaction %d does not reference account %d", txn.TransactionID, accountID)
		}

		signed, err := SignedContribution(txn.Amount, accountType, leg)
		if err != nil {
			return decimal.Zero, fmt.Errorf("transaction %d: %w", txn.TransactionID, err)
		}
		balance = balance.Add(signed)
	}

	return balance, nil
}
