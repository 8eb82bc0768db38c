package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mzane42/clinica-scanner/client"
	"github.com/mzane42/clinica-scanner/config"
	"github.com/mzane42/clinica-scanner/models"
	"github.com/mzane42/clinica-scanner/scanner"
	"github.com/mzane42/clinica-scanner/sessions"
)

var apiClient *client.Client

func Init(cfg config.Config, cl *client.Client) {
	apiClient = cl
	allowedOrigins = cfg.AllowedOrigins
}

// currentScanner resolves the scanner state for the authenticated request.
// RequireSession has already stored the token and user on the context.
func currentScanner(c *gin.Context) *scanner.Scanner {
	token := c.GetString("sessionToken")
	user := c.MustGet("user").(models.User)
	return sessions.Acquire(token, user, apiClient)
}

// Scan submits a decoded QR payload. A payload swallowed by the debounce
// window or the in-flight guard answers 202 so the device knows nothing new
// was shown.
func Scan(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	reply := currentScanner(c).SubmitQR(req.Barcode)
	if reply.Ignored {
		c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
		return
	}
	c.JSON(http.StatusOK, reply.Overlay)
}

// Search submits a manual email lookup on the search channel.
func Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	reply := currentScanner(c).SubmitEmail(req.Email)
	if reply.Ignored {
		c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
		return
	}
	c.JSON(http.StatusOK, reply.Overlay)
}

// Dismiss clears the current overlay on tap, cancelling its auto-dismiss
// timer.
func Dismiss(c *gin.Context) {
	currentScanner(c).Dismiss()
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}
