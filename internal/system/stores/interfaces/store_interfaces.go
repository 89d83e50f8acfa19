package interfaces

import (
	"context"

	consentmodel "github.com/perfectbrow/consent-api/internal/consent/model"
	formmodel "github.com/perfectbrow/consent-api/internal/consentform/model"
	custmodel "github.com/perfectbrow/consent-api/internal/customer/model"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	vermodel "github.com/perfectbrow/consent-api/internal/verification/model"
)

// ConsentFormStore defines the interface for consent form content lookups.
type ConsentFormStore interface {
	// GetActive returns the active form with the most recent effective date,
	// or nil when no form is active.
	GetActive(ctx context.Context) (*formmodel.ConsentForm, error)
	GetByID(ctx context.Context, formID string) (*formmodel.ConsentForm, error)
}

// CustomerStore defines the interface for customer record operations.
// Matching queries compare digits-only phone and lowercased trimmed names
// against active customers only.
type CustomerStore interface {
	GetByID(ctx context.Context, customerID string) (*custmodel.Customer, error)
	FindExactMatch(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string) (*custmodel.Customer, error)
	FindSuggestedMatches(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string, limit int) ([]custmodel.Customer, error)
	Create(tx dbmodel.TxInterface, customer *custmodel.Customer) error
	UpdatePhone(tx dbmodel.TxInterface, customerID, phone string) error
	UpdateLatestConsent(tx dbmodel.TxInterface, customerID, customerConsentID string, consentAt int64) error
}

// SubmissionStore defines the interface for consent submission operations.
type SubmissionStore interface {
	Create(ctx context.Context, submission *vermodel.Submission) error
	GetByID(ctx context.Context, submissionID string) (*vermodel.Submission, error)
	// CountByOriginSince counts submissions created by an origin address at or
	// after the given instant (epoch millis); used by the rate limiter.
	CountByOriginSince(ctx context.Context, originAddress string, sinceMillis int64) (int, error)
	UpdateStatus(ctx context.Context, submissionID string, status vermodel.SubmissionStatus, attempts int) error
	MarkVerified(ctx context.Context, submissionID string, attempts int, verifiedAt int64) error
	UpdateAttempts(ctx context.Context, submissionID string, attempts int) error
	ReplaceCode(ctx context.Context, submissionID, code string, expiresAt, sentAt, resendAvailableAt int64, resendCount int) error
	LinkCustomer(tx dbmodel.TxInterface, submissionID, customerID string) error
}

// CustomerConsentStore defines the interface for signed consent records.
type CustomerConsentStore interface {
	ExistsBySubmissionID(ctx context.Context, submissionID string) (bool, error)
	Create(tx dbmodel.TxInterface, record *consentmodel.CustomerConsent) error
	ListByCustomerID(ctx context.Context, customerID string) ([]consentmodel.HistoryEntry, error)
}
