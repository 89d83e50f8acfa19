package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/system/error/apierror"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
)

// SendError writes a ServiceError as an HTTP response with appropriate status code
func SendError(c *gin.Context, err *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if err.Type == serviceerror.ClientErrorType {
		switch err.Code {
		case serviceerror.RateLimitExceededError.Code, serviceerror.ResendCooldownError.Code:
			statusCode = http.StatusTooManyRequests
		case serviceerror.AlreadyFinalizedError.Code:
			statusCode = http.StatusConflict
		case serviceerror.SubmissionNotFoundError.Code,
			serviceerror.ConsentFormNotFoundError.Code,
			serviceerror.CustomerNotFoundError.Code:
			statusCode = http.StatusNotFound
		default:
			statusCode = http.StatusBadRequest
		}
	}

	c.JSON(statusCode, apierror.ErrorResponse{
		Code:        err.Error,
		Description: err.ErrorDescription,
		Data:        err.Data,
	})
}

// SendValidationError writes a 400 response for request binding failures.
func SendValidationError(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, apierror.ErrorResponse{
		Code:        serviceerror.ValidationError.Error,
		Description: description,
	})
}
