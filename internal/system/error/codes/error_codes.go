package codes

// Error codes for the Consent Verification Service
const (
	// General errors
	InternalServerError = "CVS-5000"
	DatabaseError       = "CVS-5001"
	InvalidRequest      = "CVS-4000"
	ValidationError     = "CVS-4001"

	// Lookup errors
	SubmissionNotFound  = "CVS-4040"
	ConsentFormNotFound = "CVS-4041"
	CustomerNotFound    = "CVS-4042"

	// Verification lifecycle errors
	CodeExpired         = "CVS-4100"
	InvalidCode         = "CVS-4101"
	MaxAttemptsExceeded = "CVS-4102"
	VerificationFailed  = "CVS-4103"
	MaxResendExceeded   = "CVS-4104"
	InvalidStatus       = "CVS-4105"

	// Finalization errors
	NotVerified          = "CVS-4106"
	TermsNotAcknowledged = "CVS-4107"
	AlreadyFinalized     = "CVS-4090"
	FinalizationFailed   = "CVS-5010"

	// Throttling errors
	RateLimitExceeded = "CVS-4290"
	ResendCooldown    = "CVS-4291"
)
