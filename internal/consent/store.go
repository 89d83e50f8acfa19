package consent

import (
	"context"

	"github.com/perfectbrow/consent-api/internal/consent/model"
	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
)

// DBQuery objects for customer consent operations
var (
	QueryConsentExistsBySubmission = dbmodel.DBQuery{
		ID:    "CONSENT_EXISTS_BY_SUBMISSION",
		Query: "SELECT CUSTOMER_CONSENT_ID FROM CUSTOMER_CONSENT WHERE SUBMISSION_ID = ?",
	}

	QueryCreateCustomerConsent = dbmodel.DBQuery{
		ID: "CREATE_CUSTOMER_CONSENT",
		Query: "INSERT INTO CUSTOMER_CONSENT (CUSTOMER_CONSENT_ID, CUSTOMER_ID, FORM_ID, SUBMISSION_ID, SIGNED_AT, SIGNATURE_NAME, SIGNATURE_PAYLOAD, METADATA, CREATED_AT) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryListConsentsByCustomer = dbmodel.DBQuery{
		ID: "LIST_CONSENTS_BY_CUSTOMER",
		Query: "SELECT cc.CUSTOMER_CONSENT_ID, cc.SIGNED_AT, cc.SIGNATURE_NAME, cf.TITLE as CONSENT_FORM_TITLE, cf.VERSION as CONSENT_VERSION, cs.EMAIL as VERIFICATION_EMAIL " +
			"FROM CUSTOMER_CONSENT cc " +
			"JOIN CONSENT_FORM cf ON cc.FORM_ID = cf.FORM_ID " +
			"LEFT JOIN CONSENT_SUBMISSION cs ON cc.SUBMISSION_ID = cs.SUBMISSION_ID " +
			"WHERE cc.CUSTOMER_ID = ? ORDER BY cc.SIGNED_AT DESC",
	}
)

// store implements the interfaces.CustomerConsentStore interface
type store struct {
	dbClient provider.DBClientInterface
}

// newCustomerConsentStore creates a new customer consent store
func newCustomerConsentStore(dbClient provider.DBClientInterface) interfaces.CustomerConsentStore {
	return &store{
		dbClient: dbClient,
	}
}

// ExistsBySubmissionID reports whether a signed consent exists for the
// submission. One submission finalizes at most once.
func (s *store) ExistsBySubmissionID(ctx context.Context, submissionID string) (bool, error) {
	rows, err := s.dbClient.Query(QueryConsentExistsBySubmission, submissionID)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Create inserts a signed consent record within a transaction. The unique key
// on SUBMISSION_ID makes concurrent finalizations of the same submission fail
// here rather than double-insert.
func (s *store) Create(tx dbmodel.TxInterface, record *model.CustomerConsent) error {
	_, err := tx.Exec(QueryCreateCustomerConsent.Query,
		record.CustomerConsentID, record.CustomerID, record.FormID, record.SubmissionID,
		record.SignedAt, record.SignatureName, record.SignaturePayload, record.Metadata,
		record.CreatedAt)
	return err
}

// ListByCustomerID retrieves a customer's signed consents, newest first
func (s *store) ListByCustomerID(ctx context.Context, customerID string) ([]model.HistoryEntry, error) {
	rows, err := s.dbClient.Query(QueryListConsentsByCustomer, customerID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.HistoryEntry{
			CustomerConsentID: dbmodel.RowString(row, "CUSTOMER_CONSENT_ID"),
			SignedAt:          dbmodel.RowInt64(row, "SIGNED_AT"),
			SignatureName:     dbmodel.RowString(row, "SIGNATURE_NAME"),
			ConsentFormTitle:  dbmodel.RowString(row, "CONSENT_FORM_TITLE"),
			ConsentVersion:    dbmodel.RowString(row, "CONSENT_VERSION"),
			VerificationEmail: dbmodel.RowString(row, "VERIFICATION_EMAIL"),
		})
	}
	return entries, nil
}
