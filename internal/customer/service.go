package customer

import (
	"context"

	"github.com/perfectbrow/consent-api/internal/customer/model"
	"github.com/perfectbrow/consent-api/internal/system/constants"
	"github.com/perfectbrow/consent-api/internal/system/error/serviceerror"
	"github.com/perfectbrow/consent-api/internal/system/log"
	"github.com/perfectbrow/consent-api/internal/system/stores"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/system/utils"
)

// CustomerService defines the exported service interface
type CustomerService interface {
	FindMatches(ctx context.Context, firstName, lastName, phone string) ([]model.CustomerMatch, *serviceerror.ServiceError)
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, *serviceerror.ServiceError)
}

// customerService implements the CustomerService interface
type customerService struct {
	stores *stores.StoreRegistry
}

// newCustomerService creates a new customer service
func newCustomerService(registry *stores.StoreRegistry) CustomerService {
	return &customerService{
		stores: registry,
	}
}

// FindMatches resolves a claimed identity against existing customers. An
// exact match (same normalized phone, first and last name) is returned alone;
// otherwise up to MaxSuggestedMatches same-phone customers are suggested,
// newest first. Read-only: the match list never blocks the workflow.
func (s *customerService) FindMatches(ctx context.Context, firstName, lastName, phone string) ([]model.CustomerMatch, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CustomerService"))

	customerStore := s.stores.Customer.(interfaces.CustomerStore)

	phoneDigits := utils.NormalizePhone(phone)
	normalizedFirst := utils.NormalizeName(firstName)
	normalizedLast := utils.NormalizeName(lastName)

	exact, err := customerStore.FindExactMatch(ctx, phoneDigits, normalizedFirst, normalizedLast)
	if err != nil {
		logger.Error("Failed to query exact customer match", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}
	if exact != nil {
		return []model.CustomerMatch{exact.ToMatch(model.MatchTypeExact)}, nil
	}

	suggested, err := customerStore.FindSuggestedMatches(ctx, phoneDigits, normalizedFirst, normalizedLast, constants.MaxSuggestedMatches)
	if err != nil {
		logger.Error("Failed to query suggested customer matches", log.Error(err))
		return nil, &serviceerror.DatabaseError
	}

	matches := make([]model.CustomerMatch, 0, len(suggested))
	for i := range suggested {
		matches = append(matches, suggested[i].ToMatch(model.MatchTypeSuggested))
	}
	return matches, nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CustomerService"))

	customerStore := s.stores.Customer.(interfaces.CustomerStore)

	customer, err := customerStore.GetByID(ctx, customerID)
	if err != nil {
		logger.Error("Failed to load customer", log.Error(err), log.String("customer_id", customerID))
		return nil, &serviceerror.DatabaseError
	}
	if customer == nil {
		return nil, &serviceerror.CustomerNotFoundError
	}
	return customer, nil
}
