package validator

import (
	"fmt"
	"strings"

	"github.com/perfectbrow/consent-api/internal/system/utils"
	"github.com/perfectbrow/consent-api/internal/verification/model"
)

// Field caps mirror the CONSENT_SUBMISSION column widths.
const (
	maxNameLength  = 100
	maxPhoneLength = 32
	maxEmailLength = 255
)

// ValidateCreateSubmissionRequest validates submission creation request
func ValidateCreateSubmissionRequest(req model.CreateSubmissionAPIRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("email is required for verification code delivery")
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("email is not a valid address")
	}
	if err := utils.ValidateMaxLength("first_name", req.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := utils.ValidateMaxLength("last_name", req.LastName, maxNameLength); err != nil {
		return err
	}
	if err := utils.ValidateMaxLength("phone", req.Phone, maxPhoneLength); err != nil {
		return err
	}
	return utils.ValidateMaxLength("email", req.Email, maxEmailLength)
}

// ValidateVerifyCodeRequest validates a code verification request
func ValidateVerifyCodeRequest(req model.VerifyCodeAPIRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("code is required")
	}
	return nil
}
