package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether an account sits on the debit or the credit leg of a transaction.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// AccountRef is a shallow account summary embedded in transaction listings.
// Legs are allowed to reference accounts that no longer resolve, so holders
// of a Transaction must tolerate nil refs.
type AccountRef struct {
	AccountID   int64       `json:"id"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"type"`
}

// Transaction represents one double-entry movement: a single amount leaving
// the credit account and entering the debit account on a given date.
type Transaction struct {
	TransactionID   int64           `json:"id"` // Primary key, assigned by the store at creation
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"` // Calendar date only; time-of-day is discarded at the boundary
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  int64           `json:"debitAccountId"`
	CreditAccountID int64           `json:"creditAccountId"`
	IsActive        bool            `json:"isActive"` // Soft delete flag; retirement is one-way
	CreatedAt       time.Time       `json:"createdAt"`

	// Populated by read paths that join account data; nil when the leg does not resolve.
	DebitAccount  *AccountRef `json:"debitAccount,omitempty"`
	CreditAccount *AccountRef `json:"creditAccount,omitempty"`
}

// LegFor returns the side the given account plays in this transaction, with
// ok false when the account is on neither leg.
func (t Transaction) LegFor(accountID int64) (Side, bool) {
	switch accountID {
	case t.DebitAccountID:
		return Debit, true
	case t.CreditAccountID:
		return Credit, true
	}
	return "", false
}
