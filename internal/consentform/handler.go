package consentform

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/utils"
)

type consentFormHandler struct {
	service ConsentFormService
}

func newConsentFormHandler(service ConsentFormService) *consentFormHandler {
	return &consentFormHandler{
		service: service,
	}
}

// getActiveForm handles GET /form
func (h *consentFormHandler) getActiveForm(c *gin.Context) {
	form, serviceErr := h.service.GetActiveForm(c.Request.Context())
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, form)
}

// getForm handles GET /forms/{formId}
func (h *consentFormHandler) getForm(c *gin.Context) {
	form, serviceErr := h.service.GetForm(c.Request.Context(), c.Param("formId"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, form)
}
