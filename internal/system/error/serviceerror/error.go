package serviceerror

import "github.com/perfectbrow/consent-api/internal/system/error/codes"

type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError is the typed error returned by every service operation. Domain
// errors carry actionable numeric context (attempts remaining, seconds
// remaining) in Data so handlers never have to recompute it.
type ServiceError struct {
	Code             string                 `json:"code"`
	Type             ServiceErrorType       `json:"type"`
	Error            string                 `json:"error"`
	ErrorDescription string                 `json:"error_description,omitempty"`
	Data             map[string]interface{} `json:"data,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             codes.InternalServerError,
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             codes.DatabaseError,
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	InvalidRequestError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.InvalidRequest,
		Error:            "invalid_request",
		ErrorDescription: "The request is invalid",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.ValidationError,
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	SubmissionNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.SubmissionNotFound,
		Error:            "SUBMISSION_NOT_FOUND",
		ErrorDescription: "Submission not found",
	}

	ConsentFormNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.ConsentFormNotFound,
		Error:            "CONSENT_FORM_NOT_FOUND",
		ErrorDescription: "No active consent form available",
	}

	CustomerNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.CustomerNotFound,
		Error:            "CUSTOMER_NOT_FOUND",
		ErrorDescription: "Customer not found",
	}

	RateLimitExceededError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.RateLimitExceeded,
		Error:            "RATE_LIMIT_EXCEEDED",
		ErrorDescription: "Too many submissions. Please try again later.",
	}

	CodeExpiredError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.CodeExpired,
		Error:            "CODE_EXPIRED",
		ErrorDescription: "Verification code has expired",
	}

	InvalidCodeError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.InvalidCode,
		Error:            "INVALID_CODE",
		ErrorDescription: "Invalid verification code",
	}

	MaxAttemptsExceededError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.MaxAttemptsExceeded,
		Error:            "MAX_ATTEMPTS_EXCEEDED",
		ErrorDescription: "Maximum attempts exceeded. Verification failed.",
	}

	VerificationFailedError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.VerificationFailed,
		Error:            "VERIFICATION_FAILED",
		ErrorDescription: "Verification failed. Too many incorrect attempts.",
	}

	ResendCooldownError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.ResendCooldown,
		Error:            "RESEND_COOLDOWN",
		ErrorDescription: "Please wait before requesting another code",
	}

	MaxResendExceededError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.MaxResendExceeded,
		Error:            "MAX_RESEND_EXCEEDED",
		ErrorDescription: "Maximum resend attempts exceeded",
	}

	InvalidStatusError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.InvalidStatus,
		Error:            "INVALID_STATUS",
		ErrorDescription: "Cannot resend code for this submission",
	}

	NotVerifiedError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.NotVerified,
		Error:            "NOT_VERIFIED",
		ErrorDescription: "Submission must be verified before finalizing",
	}

	TermsNotAcknowledgedError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.TermsNotAcknowledged,
		Error:            "TERMS_NOT_ACKNOWLEDGED",
		ErrorDescription: "Terms must be acknowledged",
	}

	AlreadyFinalizedError = ServiceError{
		Type:             ClientErrorType,
		Code:             codes.AlreadyFinalized,
		Error:            "ALREADY_FINALIZED",
		ErrorDescription: "Consent already finalized",
	}

	FinalizationFailedError = ServiceError{
		Type:             ServerErrorType,
		Code:             codes.FinalizationFailed,
		Error:            "FINALIZATION_FAILED",
		ErrorDescription: "Failed to finalize consent",
	}
)

func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
	}
}

// ServiceErrorWithData copies a base error and attaches numeric context.
func ServiceErrorWithData(baseError ServiceError, data map[string]interface{}) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: baseError.ErrorDescription,
		Data:             data,
	}
}
