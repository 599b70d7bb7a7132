package handlers

import (
	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform envelope every endpoint answers with:
// {success, data?, message?, error?, code?}.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data any, message string) {
	c.JSON(status, apiResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func respondError(c *gin.Context, status int, message string, code apperrors.Code) {
	c.JSON(status, apiResponse{
		Success: false,
		Error:   message,
		Code:    string(code),
	})
}
