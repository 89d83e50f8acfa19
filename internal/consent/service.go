package consent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/perfectbrow/consent-api/internal/consent/model"
	custmodel "github.com/perfectbrow/consent-api/internal/customer/model"
	"github.com/perfectbrow/consent-api/internal/notification"
	"github.com/perfectbrow/consent-api/internal/system/constants"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/log"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/system/utils"
	vermodel "github.com/perfectbrow/consent-api/internal/verification/model"
)

// ConsentService defines the exported service interface
type ConsentService interface {
	Finalize(ctx context.Context, submissionID string, req model.FinalizeAPIRequest, originAddress, userAgent string) (*model.FinalizeAPIResponse, *serviceerror.ServiceError)
	ListHistory(ctx context.Context, customerID string) (*model.HistoryAPIResponse, *serviceerror.ServiceError)
}

// consentService implements the ConsentService interface
type consentService struct {
	stores *stores.StoreRegistry
	now    func() time.Time
}

// newConsentService creates a new consent service
func newConsentService(registry *stores.StoreRegistry) *consentService {
	return &consentService{
		stores: registry,
		now:    time.Now,
	}
}

// Finalize turns a verified submission into a durable signed consent. All
// precondition reads happen before the transaction; the four writes (customer
// create or phone update, consent insert, latest-consent pointer, submission
// link) commit atomically. The unique key on SUBMISSION_ID is the guard
// against two concurrent finalizations: the loser's insert fails and the
// post-failure existence check distinguishes "already finalized" from a real
// write failure.
func (s *consentService) Finalize(ctx context.Context, submissionID string, req model.FinalizeAPIRequest, originAddress, userAgent string) (*model.FinalizeAPIResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentService"))

	if err := utils.ValidateSubmissionID(submissionID); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}
	signatureName := utils.SanitizeString(req.SignatureName)
	if signatureName == "" {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, "signature_name is required")
	}
	if !req.Acknowledged {
		return nil, &serviceerror.TermsNotAcknowledgedError
	}

	submissionStore := s.stores.Submission.(interfaces.SubmissionStore)
	consentStore := s.stores.CustomerConsent.(interfaces.CustomerConsentStore)
	customerStore := s.stores.Customer.(interfaces.CustomerStore)
	formStore := s.stores.ConsentForm.(interfaces.ConsentFormStore)

	submission, err := submissionStore.GetByID(ctx, submissionID)
	if err != nil {
		logger.Error("Failed to load submission", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if submission == nil {
		return nil, &serviceerror.SubmissionNotFoundError
	}
	if submission.Status != vermodel.StatusVerified {
		return nil, &serviceerror.NotVerifiedError
	}

	exists, err := consentStore.ExistsBySubmissionID(ctx, submissionID)
	if err != nil {
		logger.Error("Failed to check existing consent", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if exists {
		return nil, &serviceerror.AlreadyFinalizedError
	}

	form, err := formStore.GetByID(ctx, submission.FormID)
	if err != nil {
		logger.Error("Failed to load consent form", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if form == nil {
		return nil, &serviceerror.ConsentFormNotFoundError
	}

	now := s.now()
	nowMillis := utils.TimeToMillis(now)

	// Resolve the customer the consent attaches to. A caller-selected
	// customer wins; otherwise an exact identity match auto-links, and
	// failing that a new customer record is created inside the transaction.
	var customerID string
	var newCustomer *custmodel.Customer
	updatePhoneFor := ""

	if req.SelectedCustomerID != nil && *req.SelectedCustomerID != "" {
		selected, err := customerStore.GetByID(ctx, *req.SelectedCustomerID)
		if err != nil {
			logger.Error("Failed to load selected customer", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		if selected == nil {
			return nil, &serviceerror.CustomerNotFoundError
		}
		customerID = selected.CustomerID
		if req.UpdatePhone {
			updatePhoneFor = customerID
		}
	} else {
		exact, err := customerStore.FindExactMatch(ctx,
			utils.NormalizePhone(submission.Phone),
			utils.NormalizeName(submission.FirstName),
			utils.NormalizeName(submission.LastName))
		if err != nil {
			logger.Error("Failed to resolve exact customer match", log.Error(err))
			return nil, &serviceerror.DatabaseError
		}
		if exact != nil {
			customerID = exact.CustomerID
		} else {
			newCustomer = &custmodel.Customer{
				CustomerID:   utils.GenerateUUID(),
				FirstName:    submission.FirstName,
				LastName:     submission.LastName,
				Phone:        submission.Phone,
				Email:        submission.Email,
				SMSConsent:   req.ConfirmUpdates,
				EmailConsent: req.ConfirmUpdates,
				IsActive:     true,
				CreatedAt:    nowMillis,
			}
			customerID = newCustomer.CustomerID
		}
	}

	payload, err := json.Marshal(model.SignaturePayload{
		SignatureName:    signatureName,
		ConfirmedUpdates: req.ConfirmUpdates,
		Acknowledged:     req.Acknowledged,
		OriginAddress:    originAddress,
		UserAgent:        utils.TruncateString(userAgent, constants.MaxUserAgentLength),
		ClientSummary:    notification.ClientSummary(userAgent),
	})
	if err != nil {
		logger.Error("Failed to marshal signature payload", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	metadata, err := json.Marshal(model.FormSnapshot{
		ConsentVersion: form.Version,
		ConsentTitle:   form.Title,
	})
	if err != nil {
		logger.Error("Failed to marshal form snapshot", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	record := &model.CustomerConsent{
		CustomerConsentID: utils.GenerateUUID(),
		CustomerID:        customerID,
		FormID:            submission.FormID,
		SubmissionID:      submissionID,
		SignedAt:          nowMillis,
		SignatureName:     signatureName,
		SignaturePayload:  string(payload),
		Metadata:          string(metadata),
		CreatedAt:         nowMillis,
	}

	queries := make([]func(tx dbmodel.TxInterface) error, 0, 4)
	if newCustomer != nil {
		queries = append(queries, func(tx dbmodel.TxInterface) error {
			return customerStore.Create(tx, newCustomer)
		})
	}
	if updatePhoneFor != "" {
		phone := submission.Phone
		queries = append(queries, func(tx dbmodel.TxInterface) error {
			return customerStore.UpdatePhone(tx, updatePhoneFor, phone)
		})
	}
	queries = append(queries,
		func(tx dbmodel.TxInterface) error {
			return consentStore.Create(tx, record)
		},
		func(tx dbmodel.TxInterface) error {
			return customerStore.UpdateLatestConsent(tx, customerID, record.CustomerConsentID, nowMillis)
		},
		func(tx dbmodel.TxInterface) error {
			return submissionStore.LinkCustomer(tx, submissionID, customerID)
		},
	)

	if err := s.stores.ExecuteTransaction(queries); err != nil {
		// A concurrent finalize may have won the unique key race; re-check
		// before reporting a write failure.
		finalized, checkErr := consentStore.ExistsBySubmissionID(ctx, submissionID)
		if checkErr == nil && finalized {
			return nil, &serviceerror.AlreadyFinalizedError
		}
		logger.Error("Finalization transaction failed", log.Error(err), log.String("submission_id", submissionID))
		return nil, &serviceerror.FinalizationFailedError
	}

	logger.Info("Consent finalized",
		log.String("submission_id", submissionID),
		log.String("customer_consent_id", record.CustomerConsentID),
	)

	return &model.FinalizeAPIResponse{
		CustomerID:        customerID,
		CustomerConsentID: record.CustomerConsentID,
		Receipt: model.Receipt{
			CustomerName:        strings.TrimSpace(submission.FirstName + " " + submission.LastName),
			SignedAt:            nowMillis,
			ConsentVersion:      form.Version,
			ConsentTitle:        form.Title,
			VerificationChannel: submission.Email,
			SignatureName:       signatureName,
		},
	}, nil
}

// ListHistory retrieves a customer's signed consents, newest signed first
func (s *consentService) ListHistory(ctx context.Context, customerID string) (*model.HistoryAPIResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentService"))

	if err := utils.ValidateRequired("customerID", customerID); err != nil {
		return nil, serviceerror.CustomServiceError(serviceerror.ValidationError, err.Error())
	}

	customerStore := s.stores.Customer.(interfaces.CustomerStore)
	consentStore := s.stores.CustomerConsent.(interfaces.CustomerConsentStore)

	customer, err := customerStore.GetByID(ctx, customerID)
	if err != nil {
		logger.Error("Failed to load customer", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if customer == nil {
		return nil, &serviceerror.CustomerNotFoundError
	}

	entries, err := consentStore.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("Failed to list consent history", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}

	return &model.HistoryAPIResponse{Consents: entries}, nil
}
