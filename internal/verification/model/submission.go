package model

import (
	"fmt"

	custmodel "github.com/perfectbrow/consent-api/internal/customer/model"
)

// SubmissionStatus is the enumerated verification state of a submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusVerified SubmissionStatus = "verified"
	StatusExpired  SubmissionStatus = "expired"
	StatusFailed   SubmissionStatus = "failed"
)

// allowedTransitions is the validated transition table. Pending is the only
// non-terminal state; verified, expired and failed never revert.
var allowedTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusPending: {StatusVerified, StatusExpired, StatusFailed},
}

// IsValid reports whether the value is one of the known statuses.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusExpired, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s SubmissionStatus) IsTerminal() bool {
	return s.IsValid() && len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition s -> next is in the table.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Submission is a single identity-verification attempt tied to one code
// lifecycle. All timestamps are epoch milliseconds.
type Submission struct {
	SubmissionID      string           `json:"submission_id"`
	FormID            string           `json:"consent_form_id"`
	FirstName         string           `json:"first_name"`
	LastName          string           `json:"last_name"`
	Phone             string           `json:"phone"`
	Email             string           `json:"email"`
	VerificationCode  string           `json:"-"`
	CodeExpiresAt     int64            `json:"code_expires_at"`
	Status            SubmissionStatus `json:"status"`
	Attempts          int              `json:"attempts"`
	LastCodeSentAt    int64            `json:"last_code_sent_at"`
	ResendAvailableAt int64            `json:"resend_available_at"`
	ResendCount       int              `json:"resend_count"`
	OriginAddress     string           `json:"-"`
	UserAgent         string           `json:"-"`
	CreatedAt         int64            `json:"created_at"`
	VerifiedAt        *int64           `json:"verified_at,omitempty"`
	CustomerID        *string          `json:"customer_id,omitempty"`
}

// TransitionTo moves the submission to the next status, rejecting any
// transition not in the table.
func (s *Submission) TransitionTo(next SubmissionStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("unknown submission status: %s", next)
	}
	if !s.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition: %s -> %s", s.Status, next)
	}
	s.Status = next
	return nil
}

// CreateSubmissionAPIRequest is the payload for creating a submission.
// Email is mandatory because it is the verification channel.
type CreateSubmissionAPIRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	ConsentFormID *string `json:"consent_form_id,omitempty"`
}

// CreateSubmissionAPIResponse reports the created submission and the
// informational identity matches.
type CreateSubmissionAPIResponse struct {
	SubmissionID      string                    `json:"submission_id"`
	CodeExpiresAt     int64                     `json:"code_expires_at"`
	ResendAvailableAt int64                     `json:"resend_available_at"`
	CustomerMatches   []custmodel.CustomerMatch `json:"customer_matches"`
	EmailSent         bool                      `json:"email_sent"`
}

// VerifyCodeAPIRequest is the payload for a code verification attempt.
type VerifyCodeAPIRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyCodeAPIResponse reports a successful (or idempotent) verification.
type VerifyCodeAPIResponse struct {
	Verified     bool   `json:"verified"`
	SubmissionID string `json:"submission_id"`
}

// ResendCodeAPIResponse reports the refreshed code timestamps.
type ResendCodeAPIResponse struct {
	SubmissionID      string `json:"submission_id"`
	CodeExpiresAt     int64  `json:"code_expires_at"`
	ResendAvailableAt int64  `json:"resend_available_at"`
	EmailSent         bool   `json:"email_sent"`
}
