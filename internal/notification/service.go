package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/mssola/useragent"

	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/log"
)

// NotificationService sends workflow emails. Failures are logged and reported
// as a boolean so callers can surface email_sent without failing the request.
type NotificationService struct {
	sender EmailSender
	cfg    config.EmailConfig
}

// NewNotificationService creates a notification service over the given sender.
func NewNotificationService(sender EmailSender, cfg config.EmailConfig) *NotificationService {
	return &NotificationService{
		sender: sender,
		cfg:    cfg,
	}
}

// SendVerificationCode emails a verification code to the customer. Returns
// whether delivery was handed to the gateway successfully.
func (s *NotificationService) SendVerificationCode(firstName, email, code string, expiryMinutes int) bool {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NotificationService"))

	subject := s.cfg.CustomerSubject
	if subject == "" {
		subject = "Your verification code"
	}

	plainBody := verificationCodePlain(firstName, code, expiryMinutes, s.cfg.SupportEmail, s.cfg.SupportPhone)
	htmlBody := verificationCodeHTML(firstName, code, expiryMinutes, s.cfg.SupportEmail, s.cfg.SupportPhone)

	if err := s.sender.Send([]string{email}, subject, plainBody, htmlBody); err != nil {
		logger.Error("Failed to send verification code email", log.Error(err))
		return false
	}
	return true
}

// SendStaffAlert notifies staff recipients that a new submission arrived.
// No-op when staff notifications are disabled.
func (s *NotificationService) SendStaffAlert(customerName, email, phone, submissionID string, submittedAt time.Time, rawUserAgent string) {
	if !s.cfg.EnableStaffNotifications || len(s.cfg.StaffRecipients) == 0 {
		return
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "NotificationService"))

	subject := s.cfg.StaffSubject
	if subject == "" {
		subject = "New consent form submission"
	}

	submittedAtText := submittedAt.Format("Jan 2, 2006 3:04 PM MST")
	clientSummary := ClientSummary(rawUserAgent)

	plainBody := staffAlertPlain(customerName, email, phone, submissionID, submittedAtText, clientSummary)
	htmlBody := staffAlertHTML(customerName, email, phone, submissionID, submittedAtText, clientSummary)

	if err := s.sender.Send(s.cfg.StaffRecipients, subject, plainBody, htmlBody); err != nil {
		logger.Error("Failed to send staff alert email", log.Error(err))
	}
}

// ClientSummary renders a raw User-Agent string as a short human-readable
// browser/OS description for audit records and staff alerts.
func ClientSummary(rawUserAgent string) string {
	if strings.TrimSpace(rawUserAgent) == "" {
		return "Unknown device"
	}

	ua := useragent.New(rawUserAgent)
	browser, version := ua.Browser()
	os := ua.OS()

	if browser == "" && os == "" {
		return "Unknown device"
	}

	parts := make([]string, 0, 3)
	if browser != "" {
		if version != "" {
			parts = append(parts, fmt.Sprintf("%s %s", browser, majorVersion(version)))
		} else {
			parts = append(parts, browser)
		}
	}
	if os != "" {
		parts = append(parts, "on "+os)
	}
	if ua.Mobile() {
		parts = append(parts, "(mobile)")
	}
	return strings.Join(parts, " ")
}

func majorVersion(version string) string {
	if idx := strings.Index(version, "."); idx > 0 {
		return version[:idx]
	}
	return version
}
