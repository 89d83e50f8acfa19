package verification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/utils"
	"github.com/perfectbrow/consent-api/internal/verification/model"
)

type verificationHandler struct {
	service VerificationService
}

func newVerificationHandler(service VerificationService) *verificationHandler {
	return &verificationHandler{
		service: service,
	}
}

// createSubmission handles POST /submissions
func (h *verificationHandler) createSubmission(c *gin.Context) {
	var req model.CreateSubmissionAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "first_name, last_name, phone, and email are required")
		return
	}

	response, serviceErr := h.service.CreateSubmission(
		c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// verifyCode handles POST /submissions/{submissionId}/verify
func (h *verificationHandler) verifyCode(c *gin.Context) {
	submissionID := c.Param("submissionId")

	var req model.VerifyCodeAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "code is required")
		return
	}

	response, serviceErr := h.service.VerifyCode(c.Request.Context(), submissionID, req)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// resendCode handles POST /submissions/{submissionId}/resend
func (h *verificationHandler) resendCode(c *gin.Context) {
	submissionID := c.Param("submissionId")

	response, serviceErr := h.service.ResendCode(c.Request.Context(), submissionID)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, response)
}
