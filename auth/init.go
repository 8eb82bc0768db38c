package auth

import (
	"log"

	"github.com/mzane42/clinica-scanner/config"
)

// SessionCookie names the cookie carrying the login session token.
const SessionCookie = "clinica_scanner_session"

var allowlist Allowlist

func Init(cfg config.Config) {
	allowlist = ParseAllowlist(cfg.AllowedEmails)
	if len(allowlist) == 0 {
		log.Println("ALLOWED_EMAILS is empty, every login will be refused")
	}
	if cfg.GoogleClientID == "" {
		log.Println("GOOGLE_CLIENT_ID not set, the login page cannot render the sign-in button")
	}
}
