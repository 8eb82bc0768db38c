package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mzane42/clinica-scanner/config"
	"github.com/mzane42/clinica-scanner/models"
)

// Configuration faults are raised immediately per call; connection faults
// cover network failures and non-JSON replies. Both are distinct from a
// validated business "invalid" outcome, which is a normal CheckinResult.
var (
	ErrNotConfigured = errors.New("Webhook URL not configured")
	ErrConnection    = errors.New("Erreur de connexion")
)

// previousScanPattern matches the timestamp embedded in duplicate messages
// like "Ticket déjà scanné le 19/01/2026 09:00:00".
var previousScanPattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4}\s+\d{2}:\d{2}:\d{2})`)

// Client talks to the two check-in workflow endpoints and absorbs their wire
// envelope behind models.CheckinResult.
type Client struct {
	CheckinURL string
	StatsURL   string
	HTTPClient *http.Client
	Now        func() time.Time
}

func New(cfg config.Config) *Client {
	return &Client{
		CheckinURL: cfg.CheckinURL,
		StatsURL:   cfg.StatsURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Now:        time.Now,
	}
}

// CheckinByQR submits a raw scanned code.
func (c *Client) CheckinByQR(qrData string) (models.CheckinResult, error) {
	return c.submit(models.CheckinPayload{
		Barcode:   qrData,
		ScannedAt: c.Now().UTC().Format(time.RFC3339),
	})
}

// CheckinByEmail submits a manual email lookup.
func (c *Client) CheckinByEmail(email string) (models.CheckinResult, error) {
	return c.submit(models.CheckinPayload{
		Email:     strings.ToLower(email),
		ScannedAt: c.Now().UTC().Format(time.RFC3339),
	})
}

func (c *Client) submit(payload models.CheckinPayload) (models.CheckinResult, error) {
	if c.CheckinURL == "" {
		return models.CheckinResult{}, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.CheckinResult{}, err
	}

	resp, err := c.HTTPClient.Post(c.CheckinURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return models.CheckinResult{}, ErrConnection
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.CheckinResult{}, ErrConnection
	}

	var wire models.WebhookCheckinResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.CheckinResult{}, ErrConnection
	}

	// The workflow replies 404 for unknown tickets with a parseable body, so
	// that status still goes through normalization. Any other failure status
	// either carries a workflow message or counts as a connection error.
	if !isOK(resp.StatusCode) && resp.StatusCode != http.StatusNotFound {
		if wire.Message != "" {
			return models.CheckinResult{Valid: false, Message: wire.Message}, nil
		}
		return models.CheckinResult{}, ErrConnection
	}

	return adaptResponse(wire), nil
}

// adaptResponse maps the workflow envelope onto the canonical result. The
// backend schema changed over time; every variant lands here so nothing
// downstream branches on schema version.
func adaptResponse(wire models.WebhookCheckinResponse) models.CheckinResult {
	if wire.Success && wire.Data != nil {
		return models.CheckinResult{
			Valid:        true,
			AlreadyToday: false,
			Message:      wire.Message,
			Visitor: &models.Visitor{
				Name: wire.Data.Name,
				// company is not returned by the scan endpoint
				Company: "",
				Email:   wire.Data.Email,
			},
			ScanInfo: &models.ScanInfo{
				Timestamp: wire.Data.CheckedInAt,
				Status:    "Validé",
			},
		}
	}

	if wire.ErrorCode == models.ErrorCodeAlreadyCheckedIn {
		// the ticket exists but was scanned before
		return models.CheckinResult{
			Valid:        true,
			AlreadyToday: true,
			Message:      wire.Message,
			ScanInfo: &models.ScanInfo{
				PreviousScanTime: extractTimeFromMessage(wire.Message),
				Status:           "Déjà scanné",
			},
		}
	}

	message := wire.Message
	if message == "" {
		message = "Ticket non valide"
	}
	return models.CheckinResult{
		Valid:        false,
		AlreadyToday: false,
		Message:      message,
	}
}

func extractTimeFromMessage(message string) string {
	return previousScanPattern.FindString(message)
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}
