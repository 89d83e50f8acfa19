package verification

import (
	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/customer"
	"github.com/perfectbrow/consent-api/internal/notification"
	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores"
)

// NewStore creates and returns a new submission store (exported for registry)
func NewStore(dbClient provider.DBClientInterface) interface{} {
	return newSubmissionStore(dbClient)
}

// Initialize sets up the verification module and registers routes
func Initialize(
	router *gin.RouterGroup,
	registry *stores.StoreRegistry,
	customerService customer.CustomerService,
	notifier *notification.NotificationService,
	cfg config.ConsentConfig,
) VerificationService {
	service := newVerificationService(registry, customerService, notifier, cfg)
	handler := newVerificationHandler(service)

	// POST /submissions - Create submission and send verification code
	router.POST("/submissions", handler.createSubmission)
	// POST /submissions/:submissionId/verify - Check a verification code
	router.POST("/submissions/:submissionId/verify", handler.verifyCode)
	// POST /submissions/:submissionId/resend - Replace the active code
	router.POST("/submissions/:submissionId/resend", handler.resendCode)

	return service
}
