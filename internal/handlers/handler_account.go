package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.PATCH("/:id", h.renameAccount)
		accounts.DELETE("/:id", h.retireAccount)
	}
}

// listAccounts returns all active accounts grouped by type, each with its
// computed balance. Every type group is present, empty ones included.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	groups, err := h.accountService.ListActiveGrouped(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Error fetching accounts: "+err.Error(), apperrors.CodeDatabaseError)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToGroupedAccountsResponse(groups), "")
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body, ok := decodeRequest(c, dto.RequiredCreateAccountFields)
	if !ok {
		return
	}

	req := dto.CreateAccountRequest{
		Name: body.String("name"),
		Type: body.String("type"),
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAccountType):
			respondError(c, http.StatusBadRequest, "Invalid account type", apperrors.CodeInvalidAccountType)
		case errors.Is(err, apperrors.ErrDuplicateAccount):
			respondError(c, http.StatusBadRequest, "Account with this name already exists", apperrors.CodeDuplicateAccount)
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Error creating account: "+err.Error(), apperrors.CodeDatabaseError)
		}
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToAccountResponse(account), "Account created successfully")
}

func (h *accountHandler) renameAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := idParam(c)
	if !ok {
		return
	}

	body, ok := decodeRequest(c, dto.RequiredRenameAccountFields)
	if !ok {
		return
	}
	newName := body.String("name")

	account, renamed, err := h.accountService.RenameAccount(c.Request.Context(), accountID, newName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Account not found", apperrors.CodeNotFound)
		case errors.Is(err, apperrors.ErrDuplicateAccount):
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Account with the name '%s' already exists", newName), apperrors.CodeDuplicateAccount)
		default:
			logger.Error("Failed to rename account", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
			respondError(c, http.StatusInternalServerError, "Error updating account: "+err.Error(), apperrors.CodeDatabaseError)
		}
		return
	}

	message := "Account updated successfully"
	if !renamed {
		message = "Account unchanged"
	}
	respondSuccess(c, http.StatusOK, dto.ToAccountResponse(account), message)
}

func (h *accountHandler) retireAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := idParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.RetireAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Account not found", apperrors.CodeNotFound)
			return
		}
		logger.Error("Failed to retire account", slog.String("error", err.Error()), slog.Int64("account_id", accountID))
		respondError(c, http.StatusInternalServerError, "Error deleting account: "+err.Error(), apperrors.CodeDatabaseError)
		return
	}

	respondSuccess(c, http.StatusOK, nil, fmt.Sprintf("Account %s successfully deleted", account.Name))
}

// idParam parses the numeric :id path parameter. Non-numeric ids cannot name
// any resource, so they answer 404.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusNotFound, "Resource not found", apperrors.CodeNotFound)
		return 0, false
	}
	return id, true
}

// decodeRequest decodes the JSON body and runs the explicit required-field
// check before any domain logic sees the request.
func decodeRequest(c *gin.Context, required []string) (dto.RequestBody, bool) {
	body, err := dto.DecodeBody(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Request must be JSON", apperrors.CodeInvalidContentType)
		return nil, false
	}
	if missing := body.MissingFields(required); len(missing) > 0 {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "), apperrors.CodeMissingFields)
		return nil, false
	}
	return body, true
}
