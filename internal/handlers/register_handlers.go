package handlers

import (
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := r.Group("/api")

	registerAccountRoutes(api, services.Account)
	registerTransactionRoutes(api, services.Transaction)
}
