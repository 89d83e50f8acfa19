package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores"
)

// NewStore creates and returns a new customer store (exported for registry)
func NewStore(dbClient provider.DBClientInterface) interface{} {
	return newCustomerStore(dbClient)
}

// Initialize sets up the customer module and registers routes
func Initialize(router *gin.RouterGroup, registry *stores.StoreRegistry) CustomerService {
	service := newCustomerService(registry)
	handler := newCustomerHandler(service)

	// POST /customer-matches - Read-only identity pre-check
	router.POST("/customer-matches", handler.findMatches)
	// GET /customers/:customerId - Customer profile lookup
	router.GET("/customers/:customerId", handler.getCustomer)

	return service
}
