package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/mzane42/clinica-scanner/models"
	"github.com/mzane42/clinica-scanner/timeutil"
)

// displayScan is a RecentScan with its timestamp pre-formatted for the feed.
type displayScan struct {
	models.RecentScan
	DisplayTime string `json:"displayTime"`
}

func displayScans(scans []models.RecentScan) []displayScan {
	out := make([]displayScan, 0, len(scans))
	for _, s := range scans {
		out = append(out, displayScan{RecentScan: s, DisplayTime: timeutil.FormatTime(s.Timestamp)})
	}
	return out
}

// Stats refreshes and returns the attendance snapshot. When the webhook is
// down the last good snapshot is served; only a scanner that never fetched
// one answers 502.
func Stats(c *gin.Context) {
	sc := currentScanner(c)
	err := sc.RefreshStats()

	snapshot, ok := sc.Stats()
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentDay":  snapshot.CurrentDay,
		"stats":       snapshot.Stats,
		"recentScans": displayScans(snapshot.RecentScans),
		"generatedAt": snapshot.GeneratedAt,
		"stale":       err != nil,
	})
}

// RecentScans serves the local scan journal, the fallback feed when the
// stats webhook is unreachable.
func RecentScans(c *gin.Context) {
	entries, err := database.RecentJournalEntries(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read scan journal"})
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"scans": entries})
}
