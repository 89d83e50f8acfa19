package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custmodel "github.com/perfectbrow/consent-api/internal/customer/model"
	"github.com/perfectbrow/consent-api/internal/notification"
	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/mocks"
	"github.com/perfectbrow/consent-api/internal/system/utils"
	formmodel "github.com/perfectbrow/consent-api/internal/consentform/model"
	"github.com/perfectbrow/consent-api/internal/verification/model"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type stubSender struct{}

func (stubSender) Send(to []string, subject, plainBody, htmlBody string) error {
	return nil
}

type mockCustomerService struct {
	mock.Mock
}

func (m *mockCustomerService) FindMatches(ctx context.Context, firstName, lastName, phone string) ([]custmodel.CustomerMatch, *serviceerror.ServiceError) {
	args := m.Called(ctx, firstName, lastName, phone)
	var matches []custmodel.CustomerMatch
	if args.Get(0) != nil {
		matches = args.Get(0).([]custmodel.CustomerMatch)
	}
	if args.Get(1) == nil {
		return matches, nil
	}
	return matches, args.Get(1).(*serviceerror.ServiceError)
}

func (m *mockCustomerService) GetCustomer(ctx context.Context, customerID string) (*custmodel.Customer, *serviceerror.ServiceError) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*serviceerror.ServiceError)
	}
	return args.Get(0).(*custmodel.Customer), nil
}

func consentConfig() config.ConsentConfig {
	return config.ConsentConfig{
		CodeLength:              6,
		CodeExpiryMinutes:       10,
		MaxAttempts:             5,
		ResendCooldownSeconds:   60,
		MaxResendCount:          5,
		RateLimitWindowMinutes:  60,
		RateLimitMaxSubmissions: 5,
	}
}

type serviceFixture struct {
	svc             *verificationService
	formStore       *mocks.MockConsentFormStore
	submissionStore *mocks.MockSubmissionStore
	customers       *mockCustomerService
}

func newFixture() *serviceFixture {
	formStore := new(mocks.MockConsentFormStore)
	submissionStore := new(mocks.MockSubmissionStore)
	customers := new(mockCustomerService)

	registry := stores.NewStoreRegistry(nil, formStore, nil, submissionStore, nil)
	notifier := notification.NewNotificationService(stubSender{}, config.EmailConfig{
		FromEmail: "noreply@perfectbrow.test",
	})

	svc := newVerificationService(registry, customers, notifier, consentConfig())
	svc.now = func() time.Time { return testNow }
	svc.limiter.now = func() time.Time { return testNow }

	return &serviceFixture{
		svc:             svc,
		formStore:       formStore,
		submissionStore: submissionStore,
		customers:       customers,
	}
}

func pendingSubmission() *model.Submission {
	createdAt := utils.TimeToMillis(testNow.Add(-time.Minute))
	return &model.Submission{
		SubmissionID:      "7f8e6a54-1111-4222-8333-444455556666",
		FormID:            "form-1",
		FirstName:         "Jane",
		LastName:          "Doe",
		Phone:             "5551234567",
		Email:             "jane@example.com",
		VerificationCode:  "482193",
		CodeExpiresAt:     utils.TimeToMillis(testNow.Add(9 * time.Minute)),
		Status:            model.StatusPending,
		Attempts:          0,
		LastCodeSentAt:    createdAt,
		ResendAvailableAt: createdAt + 60_000,
		ResendCount:       0,
		OriginAddress:     "203.0.113.9",
		CreatedAt:         createdAt,
	}
}

func TestCreateSubmission(t *testing.T) {
	ctx := context.Background()

	t.Run("success with active form", func(t *testing.T) {
		f := newFixture()
		f.submissionStore.On("CountByOriginSince", ctx, "203.0.113.9", mock.Anything).Return(0, nil)
		f.formStore.On("GetActive", ctx).Return(&formmodel.ConsentForm{FormID: "form-1"}, nil)
		f.customers.On("FindMatches", ctx, "Jane", "Doe", "555-123-4567").
			Return([]custmodel.CustomerMatch{{CustomerID: "c-1", MatchType: custmodel.MatchTypeExact}}, nil)
		f.submissionStore.On("Create", ctx, mock.MatchedBy(func(s *model.Submission) bool {
			return s.Status == model.StatusPending &&
				s.FormID == "form-1" &&
				len(s.VerificationCode) == 6 &&
				s.Attempts == 0 &&
				s.CodeExpiresAt == utils.TimeToMillis(testNow.Add(10*time.Minute)) &&
				s.ResendAvailableAt == utils.TimeToMillis(testNow.Add(60*time.Second))
		})).Return(nil)

		resp, err := f.svc.CreateSubmission(ctx, model.CreateSubmissionAPIRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Phone:     "555-123-4567",
			Email:     "jane@example.com",
		}, "203.0.113.9", "Mozilla/5.0")

		require.Nil(t, err)
		assert.NotEmpty(t, resp.SubmissionID)
		assert.True(t, resp.EmailSent)
		assert.Len(t, resp.CustomerMatches, 1)
		f.submissionStore.AssertExpectations(t)
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		f := newFixture()
		f.submissionStore.On("CountByOriginSince", ctx, "203.0.113.9", mock.Anything).Return(5, nil)

		resp, err := f.svc.CreateSubmission(ctx, model.CreateSubmissionAPIRequest{
			FirstName: "Jane", LastName: "Doe", Phone: "5551234567", Email: "jane@example.com",
		}, "203.0.113.9", "")

		assert.Nil(t, resp)
		require.NotNil(t, err)
		assert.Equal(t, serviceerror.RateLimitExceededError.Code, err.Code)
		f.formStore.AssertNotCalled(t, "GetActive", mock.Anything)
	})

	t.Run("explicit form must exist", func(t *testing.T) {
		f := newFixture()
		f.submissionStore.On("CountByOriginSince", ctx, "203.0.113.9", mock.Anything).Return(0, nil)
		f.formStore.On("GetByID", ctx, "missing-form").Return(nil, nil)

		formID := "missing-form"
		resp, err := f.svc.CreateSubmission(ctx, model.CreateSubmissionAPIRequest{
			FirstName: "Jane", LastName: "Doe", Phone: "5551234567", Email: "jane@example.com",
			ConsentFormID: &formID,
		}, "203.0.113.9", "")

		assert.Nil(t, resp)
		require.NotNil(t, err)
		assert.Equal(t, serviceerror.ConsentFormNotFoundError.Code, err.Code)
	})

	t.Run("no active form", func(t *testing.T) {
		f := newFixture()
		f.submissionStore.On("CountByOriginSince", ctx, "203.0.113.9", mock.Anything).Return(0, nil)
		f.formStore.On("GetActive", ctx).Return(nil, nil)

		resp, err := f.svc.CreateSubmission(ctx, model.CreateSubmissionAPIRequest{
			FirstName: "Jane", LastName: "Doe", Phone: "5551234567", Email: "jane@example.com",
		}, "203.0.113.9", "")

		assert.Nil(t, resp)
		require.NotNil(t, err)
		assert.Equal(t, serviceerror.ConsentFormNotFoundError.Code, err.Code)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.CreateSubmission(ctx, model.CreateSubmissionAPIRequest{
			FirstName: "Jane", LastName: "Doe", Phone: "5551234567",
		}, "203.0.113.9", "")

		assert.Nil(t, resp)
		require.NotNil(t, err)
		assert.Equal(t, serviceerror.ValidationError.Code, err.Code)
	})
}

func TestVerifyCode(t *testing.T) {
	ctx := context.Background()

	t.Run("submission not found", func(t *testing.T) {
		f := newFixture()
		f.submissionStore.On("GetByID", ctx, pendingSubmission().SubmissionID).Return(nil, nil)

		resp, err := f.svc.VerifyCode(ctx, pendingSubmission().SubmissionID, model.VerifyCodeAPIRequest{Code: "482193"})

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.SubmissionNotFoundError.Code, err.Code)
	})

	t.Run("correct code verifies", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)
		f.submissionStore.On("MarkVerified", ctx, sub.SubmissionID, 1, utils.TimeToMillis(testNow)).Return(nil)

		resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "482193"})

		require.Nil(t, err)
		assert.True(t, resp.Verified)
		f.submissionStore.AssertExpectations(t)
	})

	t.Run("already verified is idempotent", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.Status = model.StatusVerified
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)

		resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "000000"})

		require.Nil(t, err)
		assert.True(t, resp.Verified)
		f.submissionStore.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.submissionStore.AssertNotCalled(t, "UpdateAttempts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed submission rejects even correct code", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.Status = model.StatusFailed
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)

		resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "482193"})

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.VerificationFailedError.Code, err.Code)
	})

	t.Run("lazy expiry persists expired status", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.CodeExpiresAt = utils.TimeToMillis(testNow.Add(-time.Second))
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)
		f.submissionStore.On("UpdateStatus", ctx, sub.SubmissionID, model.StatusExpired, 0).Return(nil)

		resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "482193"})

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.CodeExpiredError.Code, err.Code)
		f.submissionStore.AssertExpectations(t)
	})

	t.Run("wrong code decrements attempts remaining", func(t *testing.T) {
		for attempts, remaining := range map[int]int{0: 4, 1: 3, 2: 2, 3: 1} {
			f := newFixture()
			sub := pendingSubmission()
			sub.Attempts = attempts
			f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)
			f.submissionStore.On("UpdateAttempts", ctx, sub.SubmissionID, attempts+1).Return(nil)

			resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "999999"})

			assert.Nil(t, resp)
			require.NotNil(t, err)
			assert.Equal(t, serviceerror.InvalidCodeError.Code, err.Code)
			assert.Equal(t, remaining, err.Data["attempts_remaining"])
		}
	})

	t.Run("fifth wrong attempt fails the submission", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.Attempts = 4
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)
		f.submissionStore.On("UpdateStatus", ctx, sub.SubmissionID, model.StatusFailed, 5).Return(nil)

		resp, err := f.svc.VerifyCode(ctx, sub.SubmissionID, model.VerifyCodeAPIRequest{Code: "999999"})

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.MaxAttemptsExceededError.Code, err.Code)
		f.submissionStore.AssertExpectations(t)
	})
}

func TestResendCode(t *testing.T) {
	ctx := context.Background()

	t.Run("cooldown still active", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.ResendAvailableAt = utils.TimeToMillis(testNow.Add(time.Second))
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)

		resp, err := f.svc.ResendCode(ctx, sub.SubmissionID)

		assert.Nil(t, resp)
		require.NotNil(t, err)
		assert.Equal(t, serviceerror.ResendCooldownError.Code, err.Code)
		assert.Equal(t, int64(1), err.Data["seconds_remaining"])
	})

	t.Run("cooldown elapsed resends with reset attempts", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.Attempts = 3
		sub.ResendAvailableAt = utils.TimeToMillis(testNow.Add(-time.Second))
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)
		f.submissionStore.On("ReplaceCode", ctx, sub.SubmissionID,
			mock.MatchedBy(func(code string) bool { return len(code) == 6 && code != sub.VerificationCode }),
			utils.TimeToMillis(testNow.Add(10*time.Minute)),
			utils.TimeToMillis(testNow),
			utils.TimeToMillis(testNow.Add(60*time.Second)),
			1,
		).Return(nil)

		resp, err := f.svc.ResendCode(ctx, sub.SubmissionID)

		require.Nil(t, err)
		assert.True(t, resp.EmailSent)
		assert.Equal(t, utils.TimeToMillis(testNow.Add(10*time.Minute)), resp.CodeExpiresAt)
		f.submissionStore.AssertExpectations(t)
	})

	t.Run("non-pending status rejected", func(t *testing.T) {
		for _, status := range []model.SubmissionStatus{model.StatusVerified, model.StatusExpired, model.StatusFailed} {
			f := newFixture()
			sub := pendingSubmission()
			sub.Status = status
			sub.ResendAvailableAt = utils.TimeToMillis(testNow.Add(-time.Minute))
			f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)

			resp, err := f.svc.ResendCode(ctx, sub.SubmissionID)

			assert.Nil(t, resp)
			assert.Equal(t, serviceerror.InvalidStatusError.Code, err.Code)
		}
	})

	t.Run("resend cap reached", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		sub.ResendCount = 5
		sub.ResendAvailableAt = utils.TimeToMillis(testNow.Add(-time.Minute))
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(sub, nil)

		resp, err := f.svc.ResendCode(ctx, sub.SubmissionID)

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.MaxResendExceededError.Code, err.Code)
		f.submissionStore.AssertNotCalled(t, "ReplaceCode",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("submission not found", func(t *testing.T) {
		f := newFixture()
		sub := pendingSubmission()
		f.submissionStore.On("GetByID", ctx, sub.SubmissionID).Return(nil, nil)

		resp, err := f.svc.ResendCode(ctx, sub.SubmissionID)

		assert.Nil(t, resp)
		assert.Equal(t, serviceerror.SubmissionNotFoundError.Code, err.Code)
	})
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateVerificationCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestGenerateDistinctCode(t *testing.T) {
	previous, err := generateVerificationCode(6)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		code, err := generateDistinctCode(6, previous)
		require.NoError(t, err)
		assert.NotEqual(t, previous, code)
	}
}
