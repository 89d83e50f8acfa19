package utils

import "fmt"

// ValidateRequired validates a field is not empty
func ValidateRequired(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates a field does not exceed max characters
func ValidateMaxLength(fieldName, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s too long (max %d chars)", fieldName, max)
	}
	return nil
}

// ValidateUUID validates UUID format using existing IsValidUUID
func ValidateUUID(id string) error {
	if !IsValidUUID(id) {
		return fmt.Errorf("invalid UUID format: %s", id)
	}
	return nil
}

// ValidateSubmissionID validates a submission identifier
func ValidateSubmissionID(submissionID string) error {
	if err := ValidateRequired("submissionID", submissionID); err != nil {
		return err
	}
	return ValidateUUID(submissionID)
}
