package model

// Customer is a salon customer record. Created either by the registration
// flow outside this service or by consent finalization when no exact
// identity match exists.
type Customer struct {
	CustomerID      string  `json:"customer_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	SMSConsent      bool    `json:"sms_consent"`
	EmailConsent    bool    `json:"email_consent"`
	IsActive        bool    `json:"is_active"`
	LatestConsentID *string `json:"latest_consent_id,omitempty"`
	LatestConsentAt *int64  `json:"latest_consent_at,omitempty"`
	CreatedAt       int64   `json:"created_at"`
}

// MatchType tags how a customer record relates to a claimed identity.
type MatchType string

const (
	// MatchTypeExact means normalized phone and both normalized names are equal.
	MatchTypeExact MatchType = "exact"
	// MatchTypeSuggested means the phone matches but the name differs.
	MatchTypeSuggested MatchType = "suggested"
)

// CustomerMatch is one entry of an identity match list. An exact match has
// absolute precedence: when one exists it is the only entry returned.
type CustomerMatch struct {
	CustomerID string    `json:"customer_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	MatchType  MatchType `json:"match_type"`
}

// MatchAPIRequest is the payload of the read-only identity pre-check.
type MatchAPIRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// MatchAPIResponse is the response of the identity pre-check.
type MatchAPIResponse struct {
	Matches             []CustomerMatch `json:"matches"`
	HasExactMatch       bool            `json:"has_exact_match"`
	HasSuggestedMatches bool            `json:"has_suggested_matches"`
}

// ToMatch converts a customer record into a tagged match entry.
func (c *Customer) ToMatch(matchType MatchType) CustomerMatch {
	return CustomerMatch{
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Email:      c.Email,
		MatchType:  matchType,
	}
}
