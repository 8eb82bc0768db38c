package models

// Visitor is the badge holder attached to a successful check-in.
type Visitor struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// ScanInfo carries the day/timestamp details shown under an outcome.
type ScanInfo struct {
	Day              string `json:"day"`
	Timestamp        string `json:"timestamp,omitempty"`
	PreviousScanTime string `json:"previousScanTime,omitempty"`
	Status           string `json:"status"`
}

// CheckinResult is the canonical internal shape every webhook response is
// normalized into. Nothing downstream of the client ever sees the wire
// envelope.
type CheckinResult struct {
	Valid        bool      `json:"valid"`
	AlreadyToday bool      `json:"alreadyToday"`
	Message      string    `json:"message"`
	Visitor      *Visitor  `json:"visitor,omitempty"`
	ScanInfo     *ScanInfo `json:"scanInfo,omitempty"`
}

// CheckinPayload is the body posted to the check-in webhook. Exactly one of
// Barcode or Email is set.
type CheckinPayload struct {
	Barcode   string `json:"barcode,omitempty"`
	Email     string `json:"email,omitempty"`
	ScannedAt string `json:"scannedAt"`
}

// WebhookCheckinResponse is the envelope returned by the check-in workflow.
type WebhookCheckinResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Data      *WebhookCheckinData `json:"data,omitempty"`
}

const (
	ErrorCodeAlreadyCheckedIn = "ALREADY_CHECKED_IN"
	ErrorCodeInvalidTicket    = "INVALID_TICKET"
)

type WebhookCheckinData struct {
	TicketID     string `json:"ticket_id"`
	Name         string `json:"name"`
	TicketNumber string `json:"ticket_number"`
	Email        string `json:"email"`
	CheckedInAt  string `json:"checked_in_at"`
}

// ScanStatus is the four-way outcome classification driving user feedback.
type ScanStatus string

const (
	StatusSuccess   ScanStatus = "success"
	StatusDuplicate ScanStatus = "duplicate"
	StatusInvalid   ScanStatus = "invalid"
	StatusError     ScanStatus = "error"
)

// ScanOutcome is one classified check-in attempt. Result is set for the
// success/duplicate/invalid statuses, ErrorMessage for transport and
// configuration failures.
type ScanOutcome struct {
	Status       ScanStatus     `json:"status"`
	Result       *CheckinResult `json:"result,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}
