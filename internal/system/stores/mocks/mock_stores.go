package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	consentmodel "github.com/perfectbrow/consent-api/internal/consent/model"
	formmodel "github.com/perfectbrow/consent-api/internal/consentform/model"
	custmodel "github.com/perfectbrow/consent-api/internal/customer/model"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	vermodel "github.com/perfectbrow/consent-api/internal/verification/model"
)

// MockConsentFormStore is a mock implementation of interfaces.ConsentFormStore
type MockConsentFormStore struct {
	mock.Mock
}

func (m *MockConsentFormStore) GetActive(ctx context.Context) (*formmodel.ConsentForm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formmodel.ConsentForm), args.Error(1)
}

func (m *MockConsentFormStore) GetByID(ctx context.Context, formID string) (*formmodel.ConsentForm, error) {
	args := m.Called(ctx, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formmodel.ConsentForm), args.Error(1)
}

// MockCustomerStore is a mock implementation of interfaces.CustomerStore
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) GetByID(ctx context.Context, customerID string) (*custmodel.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custmodel.Customer), args.Error(1)
}

func (m *MockCustomerStore) FindExactMatch(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string) (*custmodel.Customer, error) {
	args := m.Called(ctx, phoneDigits, normalizedFirst, normalizedLast)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custmodel.Customer), args.Error(1)
}

func (m *MockCustomerStore) FindSuggestedMatches(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string, limit int) ([]custmodel.Customer, error) {
	args := m.Called(ctx, phoneDigits, normalizedFirst, normalizedLast, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]custmodel.Customer), args.Error(1)
}

func (m *MockCustomerStore) Create(tx dbmodel.TxInterface, customer *custmodel.Customer) error {
	args := m.Called(tx, customer)
	return args.Error(0)
}

func (m *MockCustomerStore) UpdatePhone(tx dbmodel.TxInterface, customerID, phone string) error {
	args := m.Called(tx, customerID, phone)
	return args.Error(0)
}

func (m *MockCustomerStore) UpdateLatestConsent(tx dbmodel.TxInterface, customerID, customerConsentID string, consentAt int64) error {
	args := m.Called(tx, customerID, customerConsentID, consentAt)
	return args.Error(0)
}

// MockSubmissionStore is a mock implementation of interfaces.SubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Create(ctx context.Context, submission *vermodel.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionStore) GetByID(ctx context.Context, submissionID string) (*vermodel.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vermodel.Submission), args.Error(1)
}

func (m *MockSubmissionStore) CountByOriginSince(ctx context.Context, originAddress string, sinceMillis int64) (int, error) {
	args := m.Called(ctx, originAddress, sinceMillis)
	return args.Int(0), args.Error(1)
}

func (m *MockSubmissionStore) UpdateStatus(ctx context.Context, submissionID string, status vermodel.SubmissionStatus, attempts int) error {
	args := m.Called(ctx, submissionID, status, attempts)
	return args.Error(0)
}

func (m *MockSubmissionStore) MarkVerified(ctx context.Context, submissionID string, attempts int, verifiedAt int64) error {
	args := m.Called(ctx, submissionID, attempts, verifiedAt)
	return args.Error(0)
}

func (m *MockSubmissionStore) UpdateAttempts(ctx context.Context, submissionID string, attempts int) error {
	args := m.Called(ctx, submissionID, attempts)
	return args.Error(0)
}

func (m *MockSubmissionStore) ReplaceCode(ctx context.Context, submissionID, code string, expiresAt, sentAt, resendAvailableAt int64, resendCount int) error {
	args := m.Called(ctx, submissionID, code, expiresAt, sentAt, resendAvailableAt, resendCount)
	return args.Error(0)
}

func (m *MockSubmissionStore) LinkCustomer(tx dbmodel.TxInterface, submissionID, customerID string) error {
	args := m.Called(tx, submissionID, customerID)
	return args.Error(0)
}

// MockCustomerConsentStore is a mock implementation of interfaces.CustomerConsentStore
type MockCustomerConsentStore struct {
	mock.Mock
}

func (m *MockCustomerConsentStore) ExistsBySubmissionID(ctx context.Context, submissionID string) (bool, error) {
	args := m.Called(ctx, submissionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerConsentStore) Create(tx dbmodel.TxInterface, record *consentmodel.CustomerConsent) error {
	args := m.Called(tx, record)
	return args.Error(0)
}

func (m *MockCustomerConsentStore) ListByCustomerID(ctx context.Context, customerID string) ([]consentmodel.HistoryEntry, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]consentmodel.HistoryEntry), args.Error(1)
}
