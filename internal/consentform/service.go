package consentform

import (
	"context"

	"github.com/perfectbrow/consent-api/internal/consentform/model"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/log"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
)

// ConsentFormService defines the exported service interface
type ConsentFormService interface {
	GetActiveForm(ctx context.Context) (*model.ConsentForm, *serviceerror.ServiceError)
	GetForm(ctx context.Context, formID string) (*model.ConsentForm, *serviceerror.ServiceError)
}

// consentFormService implements the ConsentFormService interface
type consentFormService struct {
	stores *stores.StoreRegistry
}

// newConsentFormService creates a new consent form service
func newConsentFormService(registry *stores.StoreRegistry) ConsentFormService {
	return &consentFormService{
		stores: registry,
	}
}

// GetActiveForm returns the currently active consent form. Every new
// submission binds to whatever this returns at submission time.
func (s *consentFormService) GetActiveForm(ctx context.Context) (*model.ConsentForm, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentFormService"))

	formStore := s.stores.ConsentForm.(interfaces.ConsentFormStore)

	form, err := formStore.GetActive(ctx)
	if err != nil {
		logger.Error("Failed to load active consent form", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if form == nil {
		return nil, &serviceerror.ConsentFormNotFoundError
	}
	return form, nil
}

// GetForm returns a consent form by ID regardless of active flag. Used to
// render the form a submission was bound to even after a newer version went
// active.
func (s *consentFormService) GetForm(ctx context.Context, formID string) (*model.ConsentForm, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentFormService"))

	formStore := s.stores.ConsentForm.(interfaces.ConsentFormStore)

	form, err := formStore.GetByID(ctx, formID)
	if err != nil {
		logger.Error("Failed to load consent form", log.Error(err), log.String("form_id", formID))
		return nil, &serviceerror.DatabaseError
	}
	if form == nil {
		return nil, &serviceerror.ConsentFormNotFoundError
	}
	return form, nil
}
