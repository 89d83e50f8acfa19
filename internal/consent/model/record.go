package model

// CustomerConsent is the durable record of a signed consent. At most one
// exists per submission; its presence is the idempotency marker for
// "already finalized".
type CustomerConsent struct {
	CustomerConsentID string `json:"customer_consent_id"`
	CustomerID        string `json:"customer_id"`
	FormID            string `json:"consent_form_id"`
	SubmissionID      string `json:"submission_id"`
	SignedAt          int64  `json:"signed_at"`
	SignatureName     string `json:"signature_name"`
	SignaturePayload  string `json:"signature_payload"`
	Metadata          string `json:"metadata"`
	CreatedAt         int64  `json:"created_at"`
}

// SignaturePayload is the audit envelope stored alongside the signature.
type SignaturePayload struct {
	SignatureName    string `json:"signature_name"`
	ConfirmedUpdates bool   `json:"confirmed_updates"`
	Acknowledged     bool   `json:"acknowledged"`
	OriginAddress    string `json:"ip_address"`
	UserAgent        string `json:"user_agent"`
	ClientSummary    string `json:"client_summary,omitempty"`
}

// FormSnapshot pins the form version metadata at signing time.
type FormSnapshot struct {
	ConsentVersion string `json:"consent_version"`
	ConsentTitle   string `json:"consent_title"`
}

// FinalizeAPIRequest is the payload of the finalize operation.
type FinalizeAPIRequest struct {
	SignatureName      string  `json:"signature_name" binding:"required"`
	Acknowledged       bool    `json:"acknowledged"`
	ConfirmUpdates     bool    `json:"confirm_updates"`
	SelectedCustomerID *string `json:"selected_customer_id,omitempty"`
	UpdatePhone        bool    `json:"update_phone"`
}

// Receipt summarizes the signed consent for the caller.
type Receipt struct {
	CustomerName        string `json:"customer_name"`
	SignedAt            int64  `json:"signed_at"`
	ConsentVersion      string `json:"consent_version"`
	ConsentTitle        string `json:"consent_title"`
	VerificationChannel string `json:"verification_channel"`
	SignatureName       string `json:"signature_name"`
}

// FinalizeAPIResponse is returned once finalization commits.
type FinalizeAPIResponse struct {
	CustomerID        string  `json:"customer_id"`
	CustomerConsentID string  `json:"customer_consent_id"`
	Receipt           Receipt `json:"receipt"`
}

// HistoryEntry is one signed consent in a customer's history.
type HistoryEntry struct {
	CustomerConsentID string `json:"customer_consent_id"`
	SignedAt          int64  `json:"signed_at"`
	SignatureName     string `json:"signature_name"`
	ConsentFormTitle  string `json:"consent_form_title"`
	ConsentVersion    string `json:"consent_version"`
	VerificationEmail string `json:"verification_email"`
}

// HistoryAPIResponse lists a customer's consents, newest signed first.
type HistoryAPIResponse struct {
	Consents []HistoryEntry `json:"consents"`
}
