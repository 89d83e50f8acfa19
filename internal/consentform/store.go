package consentform

import (
	"context"

	"github.com/perfectbrow/consent-api/internal/consentform/model"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
)

// DBQuery objects for consent form operations
var (
	QueryGetActiveForm = dbmodel.DBQuery{
		ID:    "GET_ACTIVE_CONSENT_FORM",
		Query: "SELECT FORM_ID, TITLE, VERSION, BODY, EFFECTIVE_DATE, IS_ACTIVE, CREATED_AT FROM CONSENT_FORM WHERE IS_ACTIVE = 1 ORDER BY EFFECTIVE_DATE DESC LIMIT 1",
	}

	QueryGetFormByID = dbmodel.DBQuery{
		ID:    "GET_CONSENT_FORM_BY_ID",
		Query: "SELECT FORM_ID, TITLE, VERSION, BODY, EFFECTIVE_DATE, IS_ACTIVE, CREATED_AT FROM CONSENT_FORM WHERE FORM_ID = ?",
	}
)

// store implements the interfaces.ConsentFormStore interface
type store struct {
	dbClient provider.DBClientInterface
}

// newConsentFormStore creates a new consent form store
func newConsentFormStore(dbClient provider.DBClientInterface) interfaces.ConsentFormStore {
	return &store{
		dbClient: dbClient,
	}
}

// GetActive retrieves the active form with the newest effective date
func (s *store) GetActive(ctx context.Context) (*model.ConsentForm, error) {
	rows, err := s.dbClient.Query(QueryGetActiveForm)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToConsentForm(rows[0]), nil
}

// GetByID retrieves a consent form by ID
func (s *store) GetByID(ctx context.Context, formID string) (*model.ConsentForm, error) {
	rows, err := s.dbClient.Query(QueryGetFormByID, formID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToConsentForm(rows[0]), nil
}

func mapToConsentForm(row map[string]interface{}) *model.ConsentForm {
	if row == nil {
		return nil
	}
	return &model.ConsentForm{
		FormID:        dbmodel.RowString(row, "FORM_ID"),
		Title:         dbmodel.RowString(row, "TITLE"),
		Version:       dbmodel.RowString(row, "VERSION"),
		Body:          dbmodel.RowString(row, "BODY"),
		EffectiveDate: dbmodel.RowInt64(row, "EFFECTIVE_DATE"),
		IsActive:      dbmodel.RowBool(row, "IS_ACTIVE"),
		CreatedAt:     dbmodel.RowInt64(row, "CREATED_AT"),
	}
}
