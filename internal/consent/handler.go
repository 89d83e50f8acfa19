package consent

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/consent/model"
	"github.com/perfectbrow/consent-api/internal/system/utils"
)

type consentHandler struct {
	service ConsentService
}

func newConsentHandler(service ConsentService) *consentHandler {
	return &consentHandler{
		service: service,
	}
}

// finalize handles POST /submissions/{submissionId}/finalize
func (h *consentHandler) finalize(c *gin.Context) {
	submissionID := c.Param("submissionId")

	var req model.FinalizeAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "signature_name is required")
		return
	}

	response, serviceErr := h.service.Finalize(
		c.Request.Context(), submissionID, req, c.ClientIP(), c.Request.UserAgent())
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// listHistory handles GET /customers/{customerId}/history
func (h *consentHandler) listHistory(c *gin.Context) {
	customerID := c.Param("customerId")

	response, serviceErr := h.service.ListHistory(c.Request.Context(), customerID)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, response)
}
