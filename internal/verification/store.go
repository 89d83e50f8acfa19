package verification

import (
	"context"

	dbmodel "github.com/perfectbrow/consent-api/internal/system/database/model"
	"github.com/perfectbrow/consent-api/internal/system/database/provider"
	"github.com/perfectbrow/consent-api/internal/system/stores/interfaces"
	"github.com/perfectbrow/consent-api/internal/verification/model"
)

// DBQuery objects for submission operations
var (
	QueryCreateSubmission = dbmodel.DBQuery{
		ID: "CREATE_SUBMISSION",
		Query: "INSERT INTO CONSENT_SUBMISSION (SUBMISSION_ID, FORM_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, VERIFICATION_CODE, CODE_EXPIRES_AT, " +
			"VERIFICATION_STATUS, ATTEMPTS, LAST_CODE_SENT_AT, RESEND_AVAILABLE_AT, RESEND_COUNT, ORIGIN_ADDRESS, USER_AGENT, CREATED_AT) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryGetSubmissionByID = dbmodel.DBQuery{
		ID: "GET_SUBMISSION_BY_ID",
		Query: "SELECT SUBMISSION_ID, FORM_ID, FIRST_NAME, LAST_NAME, PHONE, EMAIL, VERIFICATION_CODE, CODE_EXPIRES_AT, VERIFICATION_STATUS, " +
			"ATTEMPTS, LAST_CODE_SENT_AT, RESEND_AVAILABLE_AT, RESEND_COUNT, ORIGIN_ADDRESS, USER_AGENT, CREATED_AT, VERIFIED_AT, CUSTOMER_ID " +
			"FROM CONSENT_SUBMISSION WHERE SUBMISSION_ID = ?",
	}

	QueryCountSubmissionsByOrigin = dbmodel.DBQuery{
		ID:    "COUNT_SUBMISSIONS_BY_ORIGIN",
		Query: "SELECT COUNT(*) as count FROM CONSENT_SUBMISSION WHERE ORIGIN_ADDRESS = ? AND CREATED_AT >= ?",
	}

	QueryUpdateSubmissionStatus = dbmodel.DBQuery{
		ID:    "UPDATE_SUBMISSION_STATUS",
		Query: "UPDATE CONSENT_SUBMISSION SET VERIFICATION_STATUS = ?, ATTEMPTS = ? WHERE SUBMISSION_ID = ?",
	}

	QueryMarkSubmissionVerified = dbmodel.DBQuery{
		ID:    "MARK_SUBMISSION_VERIFIED",
		Query: "UPDATE CONSENT_SUBMISSION SET VERIFICATION_STATUS = 'verified', ATTEMPTS = ?, VERIFIED_AT = ? WHERE SUBMISSION_ID = ?",
	}

	QueryUpdateSubmissionAttempts = dbmodel.DBQuery{
		ID:    "UPDATE_SUBMISSION_ATTEMPTS",
		Query: "UPDATE CONSENT_SUBMISSION SET ATTEMPTS = ? WHERE SUBMISSION_ID = ?",
	}

	QueryReplaceSubmissionCode = dbmodel.DBQuery{
		ID: "REPLACE_SUBMISSION_CODE",
		Query: "UPDATE CONSENT_SUBMISSION SET VERIFICATION_CODE = ?, CODE_EXPIRES_AT = ?, LAST_CODE_SENT_AT = ?, RESEND_AVAILABLE_AT = ?, " +
			"RESEND_COUNT = ?, ATTEMPTS = 0 WHERE SUBMISSION_ID = ?",
	}

	QueryLinkSubmissionCustomer = dbmodel.DBQuery{
		ID:    "LINK_SUBMISSION_CUSTOMER",
		Query: "UPDATE CONSENT_SUBMISSION SET CUSTOMER_ID = ? WHERE SUBMISSION_ID = ?",
	}
)

// store implements the interfaces.SubmissionStore interface
type store struct {
	dbClient provider.DBClientInterface
}

// newSubmissionStore creates a new submission store
func newSubmissionStore(dbClient provider.DBClientInterface) interfaces.SubmissionStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new submission
func (s *store) Create(ctx context.Context, submission *model.Submission) error {
	_, err := s.dbClient.Execute(QueryCreateSubmission,
		submission.SubmissionID, submission.FormID, submission.FirstName, submission.LastName,
		submission.Phone, submission.Email, submission.VerificationCode, submission.CodeExpiresAt,
		string(submission.Status), submission.Attempts, submission.LastCodeSentAt,
		submission.ResendAvailableAt, submission.ResendCount, submission.OriginAddress,
		submission.UserAgent, submission.CreatedAt)
	return err
}

// GetByID retrieves a submission by ID
func (s *store) GetByID(ctx context.Context, submissionID string) (*model.Submission, error) {
	rows, err := s.dbClient.Query(QueryGetSubmissionByID, submissionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return mapToSubmission(rows[0]), nil
}

// CountByOriginSince counts submissions created by an origin address at or
// after the given instant
func (s *store) CountByOriginSince(ctx context.Context, originAddress string, sinceMillis int64) (int, error) {
	rows, err := s.dbClient.Query(QueryCountSubmissionsByOrigin, originAddress, sinceMillis)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return dbmodel.RowInt(rows[0], "count"), nil
}

// UpdateStatus updates verification status and attempts together
func (s *store) UpdateStatus(ctx context.Context, submissionID string, status model.SubmissionStatus, attempts int) error {
	_, err := s.dbClient.Execute(QueryUpdateSubmissionStatus, string(status), attempts, submissionID)
	return err
}

// MarkVerified transitions a submission to verified with its timestamp
func (s *store) MarkVerified(ctx context.Context, submissionID string, attempts int, verifiedAt int64) error {
	_, err := s.dbClient.Execute(QueryMarkSubmissionVerified, attempts, verifiedAt, submissionID)
	return err
}

// UpdateAttempts persists an incremented attempt counter
func (s *store) UpdateAttempts(ctx context.Context, submissionID string, attempts int) error {
	_, err := s.dbClient.Execute(QueryUpdateSubmissionAttempts, attempts, submissionID)
	return err
}

// ReplaceCode swaps in a freshly generated code and resets the attempt counter
func (s *store) ReplaceCode(ctx context.Context, submissionID, code string, expiresAt, sentAt, resendAvailableAt int64, resendCount int) error {
	_, err := s.dbClient.Execute(QueryReplaceSubmissionCode,
		code, expiresAt, sentAt, resendAvailableAt, resendCount, submissionID)
	return err
}

// LinkCustomer sets the customer a submission resolved to, within a transaction
func (s *store) LinkCustomer(tx dbmodel.TxInterface, submissionID, customerID string) error {
	_, err := tx.Exec(QueryLinkSubmissionCustomer.Query, customerID, submissionID)
	return err
}

func mapToSubmission(row map[string]interface{}) *model.Submission {
	if row == nil {
		return nil
	}
	return &model.Submission{
		SubmissionID:      dbmodel.RowString(row, "SUBMISSION_ID"),
		FormID:            dbmodel.RowString(row, "FORM_ID"),
		FirstName:         dbmodel.RowString(row, "FIRST_NAME"),
		LastName:          dbmodel.RowString(row, "LAST_NAME"),
		Phone:             dbmodel.RowString(row, "PHONE"),
		Email:             dbmodel.RowString(row, "EMAIL"),
		VerificationCode:  dbmodel.RowString(row, "VERIFICATION_CODE"),
		CodeExpiresAt:     dbmodel.RowInt64(row, "CODE_EXPIRES_AT"),
		Status:            model.SubmissionStatus(dbmodel.RowString(row, "VERIFICATION_STATUS")),
		Attempts:          dbmodel.RowInt(row, "ATTEMPTS"),
		LastCodeSentAt:    dbmodel.RowInt64(row, "LAST_CODE_SENT_AT"),
		ResendAvailableAt: dbmodel.RowInt64(row, "RESEND_AVAILABLE_AT"),
		ResendCount:       dbmodel.RowInt(row, "RESEND_COUNT"),
		OriginAddress:     dbmodel.RowString(row, "ORIGIN_ADDRESS"),
		UserAgent:         dbmodel.RowString(row, "USER_AGENT"),
		CreatedAt:         dbmodel.RowInt64(row, "CREATED_AT"),
		VerifiedAt:        dbmodel.RowNullInt64(row, "VERIFIED_AT"),
		CustomerID:        dbmodel.RowNullString(row, "CUSTOMER_ID"),
	}
}
