package customer

import (
	"context"

	"github.com/perfectbrow/consent-api/internal/customer/model"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
)

// DBQuery objects for customer operations. Matching compares against
// digits-only phone and lowercased trimmed names so stored formatting never
// affects identity resolution.
var (
	QueryGetCustomerByID = dbmodel.DBQuery{
		ID:    "GET_CUSTOMER_BY_ID",
		Query: "SELECT CUSTOMER_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, SMS_CONSENT, EMAIL_CONSENT, IS_ACTIVE, LATEST_CONSENT_ID, LATEST_CONSENT_AT, CREATED_AT FROM CUSTOMER WHERE CUSTOMER_ID = ?",
	}

	QueryFindExactMatch = dbmodel.DBQuery{
		ID: "FIND_EXACT_CUSTOMER_MATCH",
		Query: "SELECT CUSTOMER_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, SMS_CONSENT, EMAIL_CONSENT, IS_ACTIVE, LATEST_CONSENT_ID, LATEST_CONSENT_AT, CREATED_AT FROM CUSTOMER " +
			"WHERE REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(PHONE, '-', ''), '(', ''), ')', ''), ' ', ''), '+', '') = ? " +
			"AND LOWER(TRIM(FIRST_NAME)) = ? AND LOWER(TRIM(LAST_NAME)) = ? AND IS_ACTIVE = 1 LIMIT 1",
	}

	QueryFindSuggestedMatches = dbmodel.DBQuery{
		ID: "FIND_SUGGESTED_CUSTOMER_MATCHES",
		Query: "SELECT CUSTOMER_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, SMS_CONSENT, EMAIL_CONSENT, IS_ACTIVE, LATEST_CONSENT_ID, LATEST_CONSENT_AT, CREATED_AT FROM CUSTOMER " +
			"WHERE REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(PHONE, '-', ''), '(', ''), ')', ''), ' ', ''), '+', '') = ? " +
			"AND (LOWER(TRIM(FIRST_NAME)) != ? OR LOWER(TRIM(LAST_NAME)) != ?) AND IS_ACTIVE = 1 " +
			"ORDER BY CREATED_AT DESC LIMIT ?",
	}

	QueryCreateCustomer = dbmodel.DBQuery{
		ID:    "CREATE_CUSTOMER",
		Query: "INSERT INTO CUSTOMER (CUSTOMER_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, SMS_CONSENT, EMAIL_CONSENT, IS_ACTIVE, CREATED_AT) VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)",
	}

	QueryUpdateCustomerPhone = dbmodel.DBQuery{
		ID:    "UPDATE_CUSTOMER_PHONE",
		Query: "UPDATE CUSTOMER SET PHONE = ? WHERE CUSTOMER_ID = ?",
	}

	QueryUpdateLatestConsent = dbmodel.DBQuery{
		ID:    "UPDATE_CUSTOMER_LATEST_CONSENT",
		Query: "UPDATE CUSTOMER SET LATEST_CONSENT_ID = ?, LATEST_CONSENT_AT = ? WHERE CUSTOMER_ID = ?",
	}
)

// store implements the interfaces.CustomerStore interface
type store struct {
	dbClient provider.DBClientInterface
}

// newCustomerStore creates a new customer store
func newCustomerStore(dbClient provider.DBClientInterface) interfaces.CustomerStore {
	return &store{
		dbClient: dbClient,
	}
}

// GetByID retrieves a customer by ID
func (s *store) GetByID(ctx context.Context, customerID string) (*model.Customer, error) {
	rows, err := s.dbClient.Query(QueryGetCustomerByID, customerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToCustomer(rows[0]), nil
}

// FindExactMatch retrieves the active customer whose normalized phone and
// names all equal the claimed identity, or nil.
func (s *store) FindExactMatch(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string) (*model.Customer, error) {
	rows, err := s.dbClient.Query(QueryFindExactMatch, phoneDigits, normalizedFirst, normalizedLast)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToCustomer(rows[0]), nil
}

// FindSuggestedMatches retrieves active customers with the same phone but a
// different name, newest first.
func (s *store) FindSuggestedMatches(ctx context.Context, phoneDigits, normalizedFirst, normalizedLast string, limit int) ([]model.Customer, error) {
	rows, err := s.dbClient.Query(QueryFindSuggestedMatches, phoneDigits, normalizedFirst, normalizedLast, limit)
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		if customer := mapToCustomer(row); customer != nil {
			customers = append(customers, *customer)
		}
	}
	return customers, nil
}

// Create inserts a customer within a transaction
func (s *store) Create(tx dbmodel.TxInterface, customer *model.Customer) error {
	_, err := tx.Exec(QueryCreateCustomer.Query,
		customer.CustomerID, customer.FirstName, customer.LastName,
		customer.Phone, customer.Email, customer.SMSConsent, customer.EmailConsent,
		customer.CreatedAt)
	return err
}

// UpdatePhone updates a customer's phone within a transaction
func (s *store) UpdatePhone(tx dbmodel.TxInterface, customerID, phone string) error {
	_, err := tx.Exec(QueryUpdateCustomerPhone.Query, phone, customerID)
	return err
}

// UpdateLatestConsent updates the latest consent pointer within a transaction
func (s *store) UpdateLatestConsent(tx dbmodel.TxInterface, customerID, customerConsentID string, consentAt int64) error {
	_, err := tx.Exec(QueryUpdateLatestConsent.Query, customerConsentID, consentAt, customerID)
	return err
}

func mapToCustomer(row map[string]interface{}) *model.Customer {
	if row == nil {
		return nil
	}
	return &model.Customer{
		CustomerID:      dbmodel.RowString(row, "CUSTOMER_ID"),
		FirstName:       dbmodel.RowString(row, "FIRST_NAME"),
		LastName:        dbmodel.RowString(row, "LAST_NAME"),
		Phone:           dbmodel.RowString(row, "PHONE"),
		Email:           dbmodel.RowString(row, "EMAIL"),
		SMSConsent:      dbmodel.RowBool(row, "SMS_CONSENT"),
		EmailConsent:    dbmodel.RowBool(row, "EMAIL_CONSENT"),
		IsActive:        dbmodel.RowBool(row, "IS_ACTIVE"),
		LatestConsentID: dbmodel.RowNullString(row, "LATEST_CONSENT_ID"),
		LatestConsentAt: dbmodel.RowNullInt64(row, "LATEST_CONSENT_AT"),
		CreatedAt:       dbmodel.RowInt64(row, "CREATED_AT"),
	}
}
