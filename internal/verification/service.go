package verification

import (
	"context"
	"strings"
	"time"

	"github.com/perfectbrow/consent-api/internal/customer"
	"github.com/perfectbrow/consent-api/internal/notification"
	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/constants"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/log"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/system/utils"
	"github.com/perfectbrow/consent-api/internal/verification/model"
	"github.com/perfectbrow/consent-api/internal/verification/validator"
)

// VerificationService defines the exported service interface
type VerificationService interface {
	CreateSubmission(ctx context.Context, req model.CreateSubmissionAPIRequest, originAddress, userAgent string) (*model.CreateSubmissionAPIResponse, *serviceerror.ServiceError)
	VerifyCode(ctx context.Context, submissionID string, req model.VerifyCodeAPIRequest) (*model.VerifyCodeAPIResponse, *serviceerror.ServiceError)
	ResendCode(ctx context.Context, submissionID string) (*model.ResendCodeAPIResponse, *serviceerror.ServiceError)
}

// verificationService implements the VerificationService interface
type verificationService struct {
	stores    *stores.StoreRegistry
	customers customer.CustomerService
	notifier  *notification.NotificationService
	limiter   *RateLimiter
	cfg       config.ConsentConfig
	now       func() time.Time
}

// newVerificationService creates a new verification service
func newVerificationService(
	registry *stores.StoreRegistry,
	customerService customer.CustomerService,
	notifier *notification.NotificationService,
	cfg config.ConsentConfig,
) *verificationService {
	submissionStore := registry.Submission.(interfaces.SubmissionStore)
	return &verificationService{
		stores:    registry,
		customers: customerService,
		notifier:  notifier,
		limiter:   NewRateLimiter(submissionStore, cfg.RateLimitWindow(), cfg.RateLimitMaxSubmissions),
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateSubmission opens a new verification attempt: binds the active (or
// requested) consent form, resolves informational identity matches, generates
// a code and emails it. The submission is persisted even when email delivery
// fails; email_sent tells the caller to offer a resend.
func (s *verificationService) CreateSubmission(ctx context.Context, req model.CreateSubmissionAPIRequest, originAddress, userAgent string) (*model.CreateSubmissionAPIResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "VerificationService"))

	if err := validator.ValidateCreateSubmissionRequest(req); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	allowed, err := s.limiter.Allow(ctx, originAddress)
	if err != nil {
		logger.Error("Rate limit check failed", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if !allowed {
		logger.Warn("Submission rate limit exceeded", log.String("origin_address", originAddress))
		return nil, &serviceerror.RateLimitExceededError
	}

	formStore := s.stores.ConsentForm.(interfaces.ConsentFormStore)
	submissionStore := s.stores.Submission.(interfaces.SubmissionStore)

	// Bind the form: an explicit consent_form_id must exist, otherwise the
	// active form with the newest effective date is used.
	var formID string
	if req.ConsentFormID != nil && *req.ConsentFormID != "" {
		form, err := formStore.GetByID(ctx, *req.ConsentFormID)
		if err != nil {
			logger.Error("Failed to load requested consent form", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		if form == nil {
			return nil, &serviceerror.ConsentFormNotFoundError
		}
		formID = form.FormID
	} else {
		form, err := formStore.GetActive(ctx)
		if err != nil {
			logger.Error("Failed to load active consent form", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		if form == nil {
			return nil, &serviceerror.ConsentFormNotFoundError
		}
		formID = form.FormID
	}

	matches, svcErr := s.customers.FindMatches(ctx, req.FirstName, req.LastName, req.Phone)
	if svcErr != nil {
		return nil, svcErr
	}

	code, err := generateVerificationCode(s.cfg.CodeLength)
	if err != nil {
		logger.Error("Failed to generate verification code", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	now := s.now()
	nowMillis := utils.TimeToMillis(now)
	submission := &model.Submission{
		SubmissionID:      utils.GenerateUUID(),
		FormID:            formID,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Phone:             req.Phone,
		Email:             strings.TrimSpace(req.Email),
		VerificationCode:  code,
		CodeExpiresAt:     utils.TimeToMillis(now.Add(s.cfg.CodeExpiry())),
		Status:            model.StatusPending,
		Attempts:          0,
		LastCodeSentAt:    nowMillis,
		ResendAvailableAt: utils.TimeToMillis(now.Add(s.cfg.ResendCooldown())),
		ResendCount:       0,
		OriginAddress:     originAddress,
		UserAgent:         utils.TruncateString(userAgent, constants.MaxUserAgentLength),
		CreatedAt:         nowMillis,
	}

	if err := submissionStore.Create(ctx, submission); err != nil {
		logger.Error("Failed to create submission", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}

	emailSent := s.notifier.SendVerificationCode(submission.FirstName, submission.Email, code, s.cfg.CodeExpiryMinutes)
	if !emailSent {
		logger.Warn("Verification email was not delivered", log.String("submission_id", submission.SubmissionID))
	}
	s.notifier.SendStaffAlert(
		submission.FirstName+" "+submission.LastName,
		submission.Email, submission.Phone, submission.SubmissionID,
		now, userAgent,
	)

	logger.Info("Submission created",
		log.String("submission_id", submission.SubmissionID),
		log.Int("match_count", len(matches)),
	)

	return &model.CreateSubmissionAPIResponse{
		SubmissionID:      submission.SubmissionID,
		CodeExpiresAt:     submission.CodeExpiresAt,
		ResendAvailableAt: submission.ResendAvailableAt,
		CustomerMatches:   matches,
		EmailSent:         emailSent,
	}, nil
}

// VerifyCode checks a submitted code against the pending submission. Already
// verified submissions succeed idempotently without consuming an attempt.
// Expiry is applied lazily here: a pending submission past its deadline is
// persisted as expired before the code is even compared.
func (s *verificationService) VerifyCode(ctx context.Context, submissionID string, req model.VerifyCodeAPIRequest) (*model.VerifyCodeAPIResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "VerificationService"))

	if err := utils.ValidateSubmissionID(submissionID); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}
	if err := validator.ValidateVerifyCodeRequest(req); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	submissionStore := s.stores.Submission.(interfaces.SubmissionStore)

	submission, err := submissionStore.GetByID(ctx, submissionID)
	if err != nil {
		logger.Error("Failed to load submission", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if submission == nil {
		return nil, &serviceerror.SubmissionNotFoundError
	}

	switch submission.Status {
	case model.StatusVerified:
		return &model.VerifyCodeAPIResponse{Verified: true, SubmissionID: submissionID}, nil
	case model.StatusFailed:
		return nil, &serviceerror.VerificationFailedError
	case model.StatusExpired:
		return nil, &serviceerror.CodeExpiredError
	}

	now := s.now()
	if utils.TimeToMillis(now) > submission.CodeExpiresAt {
		if err := submission.TransitionTo(model.StatusExpired); err != nil {
			logger.Error("Invalid expiry transition", log.Error(err))
			return nil, &serviceerror.InternalServerError
		}
		if err := submissionStore.UpdateStatus(ctx, submissionID, model.StatusExpired, submission.Attempts); err != nil {
			logger.Error("Failed to persist expiry", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		return nil, &serviceerror.CodeExpiredError
	}

	newAttempts := submission.Attempts + 1

	if req.Code == submission.VerificationCode {
		if err := submission.TransitionTo(model.StatusVerified); err != nil {
			logger.Error("Invalid verify transition", log.Error(err))
			return nil, &serviceerror.InternalServerError
		}
		if err := submissionStore.MarkVerified(ctx, submissionID, newAttempts, utils.TimeToMillis(now)); err != nil {
			logger.Error("Failed to mark submission verified", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		logger.Info("Submission verified", log.String("submission_id", submissionID))
		return &model.VerifyCodeAPIResponse{Verified: true, SubmissionID: submissionID}, nil
	}

	if newAttempts >= s.cfg.MaxAttempts {
		if err := submission.TransitionTo(model.StatusFailed); err != nil {
			logger.Error("Invalid failure transition", log.Error(err))
			return nil, &serviceerror.InternalServerError
		}
		if err := submissionStore.UpdateStatus(ctx, submissionID, model.StatusFailed, newAttempts); err != nil {
			logger.Error("Failed to persist failed status", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		logger.Warn("Submission failed after max attempts", log.String("submission_id", submissionID))
		return nil, &serviceerror.MaxAttemptsExceededError
	}

	if err := submissionStore.UpdateAttempts(ctx, submissionID, newAttempts); err != nil {
		logger.Error("Failed to persist attempts", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	return nil, serviceerror.ServiceErrorWithData(serviceerror.InvalidCodeError, map[string]interface{}{
		"attempts_remaining": s.cfg.MaxAttempts - newAttempts,
	})
}

// ResendCode replaces the active code with a fresh one, restarting expiry and
// resetting the attempt counter. Only pending submissions qualify; the
// cooldown and resend cap bound how often a caller can trigger email.
func (s *verificationService) ResendCode(ctx context.Context, submissionID string) (*model.ResendCodeAPIResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "VerificationService"))

	if err := utils.ValidateSubmissionID(submissionID); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	submissionStore := s.stores.Submission.(interfaces.SubmissionStore)

	submission, err := submissionStore.GetByID(ctx, submissionID)
	if err != nil {
		logger.Error("Failed to load submission", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if submission == nil {
		return nil, &serviceerror.SubmissionNotFoundError
	}

	if submission.Status != model.StatusPending {
		return nil, &serviceerror.InvalidStatusError
	}

	now := s.now()
	nowMillis := utils.TimeToMillis(now)
	if nowMillis < submission.ResendAvailableAt {
		secondsRemaining := (submission.ResendAvailableAt - nowMillis + 999) / 1000
		return nil, serviceerror.ServiceErrorWithData(serviceerror.ResendCooldownError, map[string]interface{}{
			"seconds_remaining": secondsRemaining,
		})
	}

	if submission.ResendCount >= s.cfg.MaxResendCount {
		return nil, &serviceerror.MaxResendExceededError
	}

	code, err := generateDistinctCode(s.cfg.CodeLength, submission.VerificationCode)
	if err != nil {
		logger.Error("Failed to generate verification code", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	expiresAt := utils.TimeToMillis(now.Add(s.cfg.CodeExpiry()))
	resendAvailableAt := utils.TimeToMillis(now.Add(s.cfg.ResendCooldown()))
	if err := submissionStore.ReplaceCode(ctx, submissionID, code, expiresAt, nowMillis, resendAvailableAt, submission.ResendCount+1); err != nil {
		logger.Error("Failed to replace verification code", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}

	emailSent := s.notifier.SendVerificationCode(submission.FirstName, submission.Email, code, s.cfg.CodeExpiryMinutes)

	logger.Info("Verification code resent",
		log.String("submission_id", submissionID),
		log.Int("resend_count", submission.ResendCount+1),
	)

	return &model.ResendCodeAPIResponse{
		SubmissionID:      submissionID,
		CodeExpiresAt:     expiresAt,
		ResendAvailableAt: resendAvailableAt,
		EmailSent:         emailSent,
	}, nil
}
