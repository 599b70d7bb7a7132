package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.PATCH("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.retireTransaction)
	}
}

// listTransactions returns active transactions newest first, optionally
// filtered to those touching a single account via ?account_id=N.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error(), "")
		return
	}

	transactions, err := h.transactionService.ListActive(c.Request.Context(), params.AccountID)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Error fetching transactions: "+err.Error(), apperrors.CodeDatabaseError)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToListTransactionsResponse(transactions), "")
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req, ok := bindSaveTransactionRequest(c)
	if !ok {
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondTransactionError(c, logger, err, "Error creating transaction: ")
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToTransactionResponse(transaction), "Transaction created successfully")
}

func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, ok := idParam(c)
	if !ok {
		return
	}

	req, ok := bindSaveTransactionRequest(c)
	if !ok {
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondTransactionError(c, logger, err, "Error updating transaction: ")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToTransactionResponse(transaction), "Transaction updated successfully")
}

// retireTransaction soft-deletes a transaction and reports the post-retirement
// balances of both leg accounts, since removing an active transaction moves both.
func (h *transactionHandler) retireTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, ok := idParam(c)
	if !ok {
		return
	}

	debit, credit, err := h.transactionService.RetireTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found", apperrors.CodeNotFound)
			return
		}
		logger.Error("Failed to retire transaction", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		respondError(c, http.StatusInternalServerError, "Error deleting transaction: "+err.Error(), apperrors.CodeDatabaseError)
		return
	}

	data := dto.RetireTransactionResponse{
		DebitAccount:  toAccountBalance(debit),
		CreditAccount: toAccountBalance(credit),
	}
	respondSuccess(c, http.StatusOK, data, "Transaction deleted successfully")
}

// bindSaveTransactionRequest decodes the body, checks the required-field list
// and extracts the primitive values the core operates on.
func bindSaveTransactionRequest(c *gin.Context) (dto.SaveTransactionRequest, bool) {
	body, ok := decodeRequest(c, dto.RequiredSaveTransactionFields)
	if !ok {
		return dto.SaveTransactionRequest{}, false
	}

	debitAccountID, ok := body.Int64("debitAccountId")
	if !ok {
		respondError(c, http.StatusBadRequest, "debitAccountId must be an integer", "")
		return dto.SaveTransactionRequest{}, false
	}
	creditAccountID, ok := body.Int64("creditAccountId")
	if !ok {
		respondError(c, http.StatusBadRequest, "creditAccountId must be an integer", "")
		return dto.SaveTransactionRequest{}, false
	}

	return dto.SaveTransactionRequest{
		Description:     body.String("description"),
		Date:            body.String("date"),
		Amount:          body.String("amount"),
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
	}, true
}

func respondTransactionError(c *gin.Context, logger *slog.Logger, err error, contextMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Transaction not found", apperrors.CodeNotFound)
	case errors.Is(err, apperrors.ErrInvalidAmount):
		respondError(c, http.StatusBadRequest, "Amount must be a valid number", apperrors.CodeInvalidAmount)
	case errors.Is(err, apperrors.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "Invalid date format", apperrors.CodeInvalidDate)
	case errors.Is(err, apperrors.ErrSameAccounts):
		respondError(c, http.StatusBadRequest, "Debit and credit accounts cannot be the same", apperrors.CodeSameAccounts)
	default:
		logger.Error("Transaction operation failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, contextMsg+err.Error(), apperrors.CodeDatabaseError)
	}
}

func toAccountBalance(account *domain.Account) *dto.AccountBalanceResponse {
	if account == nil {
		return nil
	}
	return &dto.AccountBalanceResponse{
		ID:      account.AccountID,
		Balance: account.Balance,
	}
}
