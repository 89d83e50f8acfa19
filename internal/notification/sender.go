// Package notification delivers verification codes and staff alerts over
// email. Delivery is best effort: the workflow records whether a send
// succeeded but never fails an operation because of the mail gateway.
package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/perfectbrow/consent-api/internal/system/config"
	"github.com/perfectbrow/consent-api/internal/system/log"
)

// EmailSender abstracts the outbound mail transport.
type EmailSender interface {
	Send(to []string, subject, plainBody, htmlBody string) error
}

type smtpSender struct {
	cfg config.EmailConfig
}

// NewSMTPSender creates an EmailSender over plain SMTP auth. When the SMTP
// host is not configured the sender logs the message instead of dialing,
// which keeps local development working without a mail gateway.
func NewSMTPSender(cfg config.EmailConfig) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to []string, subject, plainBody, htmlBody string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EmailSender"))

	if s.cfg.SMTP.Host == "" {
		logger.Info("SMTP not configured, logging message instead",
			log.String("to", strings.Join(to, ",")),
			log.String("subject", subject),
		)
		return nil
	}

	msg := buildMessage(s.cfg.FromAddress(), to, subject, plainBody, htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTP.Host, s.cfg.SMTP.Port)
	var auth smtp.Auth
	if s.cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative message with plain text and
// HTML parts.
func buildMessage(from string, to []string, subject, plainBody, htmlBody string) []byte {
	boundary := "----=_CONSENT_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// sanitizeHeader prevents header injection through caller-supplied values.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}
