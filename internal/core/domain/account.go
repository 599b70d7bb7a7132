package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid account type in presentation order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// ParseAccountType resolves a case-insensitive type string to its enum value.
// The ok result is false for anything outside the closed set.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(strings.ToUpper(s))
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return t, true
	}
	return "", false
}

// NormalSide returns the side on which this account type's balance increases.
// ASSET and EXPENSE accounts are debit-normal; LIABILITY, EQUITY and INCOME
// accounts are credit-normal.
func (t AccountType) NormalSide() Side {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID   int64           `json:"id"`          // Primary key, assigned by the store at creation
	Name        string          `json:"name"`        // User-defined name, case-insensitively unique among active accounts
	AccountType AccountType     `json:"type"`        // ASSET, LIABILITY, etc.
	IsActive    bool            `json:"isActive"`    // Soft delete flag; retirement is one-way
	CreatedAt   time.Time       `json:"createdAt"`
	Balance     decimal.Decimal `json:"balance"` // Derived, computed on demand from active transactions
}
