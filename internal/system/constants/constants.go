package constants

const (
	// CorrelationIDHeaderName carries the request correlation id on both
	// requests and responses.
	CorrelationIDHeaderName = "X-Correlation-ID"

	// APIBasePath is the prefix for all consent workflow routes.
	APIBasePath = "/api/v1/consent"

	// MaxUserAgentLength bounds the stored User-Agent string.
	MaxUserAgentLength = 500

	// MaxSuggestedMatches caps the suggested-match list returned to callers.
	MaxSuggestedMatches = 3
)
