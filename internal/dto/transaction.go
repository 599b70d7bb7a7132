package dto

import (
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequiredSaveTransactionFields lists the fields transaction create and update
// requests must carry; both take the full field set.
var RequiredSaveTransactionFields = []string{"description", "date", "amount", "debitAccountId", "creditAccountId"}

// SaveTransactionRequest defines the data for creating or fully replacing a
// transaction. Amount and Date arrive as unparsed strings; the service
// validates them and owns the resulting error codes.
type SaveTransactionRequest struct {
	Description     string
	Date            string
	Amount          string
	DebitAccountID  int64
	CreditAccountID int64
}

// AccountRefResponse is the shallow account summary embedded in transaction payloads.
type AccountRefResponse struct {
	ID   int64              `json:"id"`
	Name string             `json:"name"`
	Type domain.AccountType `json:"type"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID              int64               `json:"id"`
	Description     string              `json:"description"`
	Date            string              `json:"date"`
	Amount          decimal.Decimal     `json:"amount"`
	DebitAccountID  int64               `json:"debitAccountId"`
	CreditAccountID int64               `json:"creditAccountId"`
	DebitAccount    *AccountRefResponse `json:"debitAccount"`
	CreditAccount   *AccountRefResponse `json:"creditAccount"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.TransactionID,
		Description:     txn.Description,
		Date:            txn.Date.Format("2006-01-02"),
		Amount:          txn.Amount,
		DebitAccountID:  txn.DebitAccountID,
		CreditAccountID: txn.CreditAccountID,
		DebitAccount:    toAccountRefResponse(txn.DebitAccount),
		CreditAccount:   toAccountRefResponse(txn.CreditAccount),
		IsActive:        txn.IsActive,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToListTransactionsResponse converts a slice of transactions to response DTOs.
func ToListTransactionsResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

func toAccountRefResponse(ref *domain.AccountRef) *AccountRefResponse {
	if ref == nil {
		return nil
	}
	return &AccountRefResponse{
		ID:   ref.AccountID,
		Name: ref.Name,
		Type: ref.AccountType,
	}
}

// RetireTransactionResponse reports the post-retirement balances of the two
// accounts that sat on the retired transaction's legs. A leg that no longer
// resolves to an account is null.
type RetireTransactionResponse struct {
	DebitAccount  *AccountBalanceResponse `json:"debitAccount"`
	CreditAccount *AccountBalanceResponse `json:"creditAccount"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID *int64 `form:"account_id" binding:"omitempty,min=1"`
}
