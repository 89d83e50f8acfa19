package consent

import (
	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores"
)

// NewStore creates and returns a new customer consent store (exported for registry)
func NewStore(dbClient provider.DBClientInterface) interface{} {
	return newCustomerConsentStore(dbClient)
}

// Initialize sets up the consent module and registers routes
func Initialize(router *gin.RouterGroup, registry *stores.StoreRegistry) ConsentService {
	service := newConsentService(registry)
	handler := newConsentHandler(service)

	// POST /submissions/:submissionId/finalize - Sign a verified submission
	router.POST("/submissions/:submissionId/finalize", handler.finalize)
	// GET /customers/:customerId/history - Signed consents, newest first
	router.GET("/customers/:customerId/history", handler.listHistory)

	return service
}
