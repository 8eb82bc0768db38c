package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mzane42/clinica-scanner/models"
)

var ErrStatsNotConfigured = errors.New("Stats URL not configured")

// FetchStats retrieves the current attendance snapshot. Any failure is an
// error for this call only; the polling loop logs and keeps the previous
// snapshot.
func (c *Client) FetchStats() (models.StatsSnapshot, error) {
	if c.StatsURL == "" {
		return models.StatsSnapshot{}, ErrStatsNotConfigured
	}

	req, err := http.NewRequest(http.MethodGet, c.StatsURL, nil)
	if err != nil {
		return models.StatsSnapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.StatsSnapshot{}, ErrConnection
	}
	defer resp.Body.Close()

	if !isOK(resp.StatusCode) {
		return models.StatsSnapshot{}, errors.New("Erreur lors de la récupération des statistiques")
	}

	var snapshot models.StatsSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return models.StatsSnapshot{}, ErrConnection
	}

	return snapshot, nil
}
