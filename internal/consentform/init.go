package consentform

import (
	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores"
)

// NewStore creates and returns a new consent form store (exported for registry)
func NewStore(dbClient provider.DBClientInterface) interface{} {
	return newConsentFormStore(dbClient)
}

// Initialize sets up the consent form module and registers routes
func Initialize(router *gin.RouterGroup, registry *stores.StoreRegistry) ConsentFormService {
	service := newConsentFormService(registry)
	handler := newConsentFormHandler(service)

	// GET /form - Active consent form content
	router.GET("/form", handler.getActiveForm)
	// GET /forms/:formId - Form a past submission was bound to
	router.GET("/forms/:formId", handler.getForm)

	return service
}
