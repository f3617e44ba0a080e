package smtp

import "fmt"

// Plain-text bodies for the transactional emails. The frontend owns the
// routes embedded here, so keep them in sync with the web app.

// ResetPasswordEmail builds the subject and body for a password reset email.
// The link stays valid for one hour.
func ResetPasswordEmail(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password/%s", baseURL, token)
	subject = "Reset your password"
	body = fmt.Sprintf(
		"Hi,\n\nWe received a request to reset your password.\n\n"+
			"Open the link below to choose a new one:\n\n%s\n\n"+
			"The link expires in 1 hour. If you didn't request this, you can ignore this email.\n",
		link)
	return subject, body
}

// VerifyEmail builds the subject and body for an address verification email.
func VerifyEmail(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/verify-email/%s", baseURL, token)
	subject = "Verify your email address"
	body = fmt.Sprintf(
		"Welcome!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\n"+
			"The link expires in 24 hours.\n",
		link)
	return subject, body
}

// MagicLinkEmail builds the subject and body for a passwordless sign-in email.
// The link stays valid for 15 minutes.
func MagicLinkEmail(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/auth/magic-link/%s", baseURL, token)
	subject = "Your sign-in link"
	body = fmt.Sprintf(
		"Hi,\n\nUse the link below to sign in:\n\n%s\n\n"+
			"The link expires in 15 minutes. If you didn't request this, you can ignore this email.\n",
		link)
	return subject, body
}
