package model

// ConsentForm is one immutable content version of the salon consent form.
// Forms are created and retired by an administrative process outside this
// service; the workflow only ever reads them.
type ConsentForm struct {
	FormID        string `json:"consent_form_id"`
	Title         string `json:"title"`
	Version       string `json:"version"`
	Body          string `json:"body"`
	EffectiveDate int64  `json:"effective_date"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     int64  `json:"created_at"`
}
