package notification

import (
	"fmt"
	"html"
)

// verificationCodePlain is the text/plain fallback of the code email.
func verificationCodePlain(firstName, code string, expiryMinutes int, supportEmail, supportPhone string) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your verification code is: %s\n\n"+
			"This code expires in %d minutes. Enter it on the consent form to continue.\n\n"+
			"If you did not request this code, you can ignore this email.\n\n"+
			"Questions? Contact us at %s or %s.\n",
		firstName, code, expiryMinutes, supportEmail, supportPhone,
	)
}

// verificationCodeHTML is the HTML part of the code email.
func verificationCodeHTML(firstName, code string, expiryMinutes int, supportEmail, supportPhone string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Verification Code</title>
<style>
body { background:#faf7f5; font-family:Arial, Helvetica, sans-serif; color:#333; }
.container { max-width:600px; margin:20px auto; }
.card { background:#fff; border:1px solid #eee0d8; padding:24px; border-radius:8px; }
.code { font-size:32px; letter-spacing:8px; font-weight:bold; color:#8b5a3c; text-align:center; padding:16px; background:#faf4ef; border-radius:6px; margin:16px 0; }
.footer { font-size:12px; color:#999; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Verify your email</h2>
    <p>Hi %s,</p>
    <p>Enter this code on the consent form to verify your email address:</p>
    <div class="code">%s</div>
    <p>This code expires in <strong>%d minutes</strong>.</p>
    <p>If you did not request this code, you can ignore this email.</p>
    <p class="footer">Questions? Contact us at %s or %s.</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(firstName), html.EscapeString(code), expiryMinutes,
		html.EscapeString(supportEmail), html.EscapeString(supportPhone),
	)
}

// staffAlertPlain is the text/plain fallback of the new-submission alert.
func staffAlertPlain(customerName, email, phone, submissionID, submittedAt, clientSummary string) string {
	return fmt.Sprintf(
		"A new consent form has been submitted.\n\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Submission ID: %s\n"+
			"Time: %s\n"+
			"Device: %s\n\n"+
			"The customer has been sent a verification code. Once verified, they will complete the signature step.\n",
		customerName, email, phone, submissionID, submittedAt, clientSummary,
	)
}

// staffAlertHTML is the HTML part of the new-submission alert.
func staffAlertHTML(customerName, email, phone, submissionID, submittedAt, clientSummary string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>New Consent Form Submission</title>
<style>
body { background:#faf7f5; font-family:Arial, Helvetica, sans-serif; color:#333; }
.container { max-width:600px; margin:20px auto; }
.card { background:#fff; border:1px solid #eee0d8; padding:24px; border-radius:8px; }
table { width:100%%; border-collapse:collapse; }
td { padding:6px 4px; border-bottom:1px solid #f2e9e2; }
td.label { color:#8b5a3c; font-weight:bold; width:130px; }
.note { font-size:13px; color:#777; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>New consent form submission</h2>
    <table>
      <tr><td class="label">Name</td><td>%s</td></tr>
      <tr><td class="label">Email</td><td>%s</td></tr>
      <tr><td class="label">Phone</td><td>%s</td></tr>
      <tr><td class="label">Submission ID</td><td>%s</td></tr>
      <tr><td class="label">Time</td><td>%s</td></tr>
      <tr><td class="label">Device</td><td>%s</td></tr>
    </table>
    <p class="note">The customer has been sent a verification code. Once verified, they will complete the signature step.</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(customerName), html.EscapeString(email), html.EscapeString(phone),
		html.EscapeString(submissionID), html.EscapeString(submittedAt),
		html.EscapeString(clientSummary),
	)
}
