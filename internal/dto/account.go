package dto

import (
	"strings"
	"time"

	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequiredCreateAccountFields lists the fields a create-account request must carry.
var RequiredCreateAccountFields = []string{"name", "type"}

// RequiredRenameAccountFields lists the fields a rename request must carry.
var RequiredRenameAccountFields = []string{"name"}

// CreateAccountRequest defines the data needed to register a new account.
// Type is matched case-insensitively against the closed account-type set.
type CreateAccountRequest struct {
	Name string
	Type string
}

// AccountResponse defines the data returned for an account, balance included.
type AccountResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	NormalBalance domain.Side        `json:"normalBalance"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            acc.AccountID,
		Name:          acc.Name,
		Type:          acc.AccountType,
		Balance:       acc.Balance,
		NormalBalance: acc.AccountType.NormalSide(),
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToGroupedAccountsResponse converts grouped accounts to the listing payload:
// a map keyed by lower-cased account type, every type present even when empty.
func ToGroupedAccountsResponse(groups map[domain.AccountType][]domain.Account) map[string][]AccountResponse {
	res := make(map[string][]AccountResponse, len(domain.AccountTypes))
	for _, accountType := range domain.AccountTypes {
		accounts := groups[accountType]
		group := make([]AccountResponse, len(accounts))
		for i, acc := range accounts {
			group[i] = ToAccountResponse(&acc)
		}
		res[strings.ToLower(string(accountType))] = group
	}
	return res
}

// AccountBalanceResponse carries an account's post-mutation balance.
type AccountBalanceResponse struct {
	ID      int64           `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}
