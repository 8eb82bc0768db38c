package auth

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/mzane42/clinica-scanner/models"
	"github.com/mzane42/clinica-scanner/sessions"
)

// Login decodes the posted credential, checks the allow-list and opens a 24h
// session. Decode failures and allow-list rejections are reported to the
// login screen, never as a crash.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credential is required"})
		return
	}

	claims, err := DecodeIDToken(req.Credential)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Erreur lors de la connexion. Réessayez."})
		return
	}

	if !allowlist.IsAllowed(claims.Email) {
		log.Printf("Login refused for %s", claims.Email)
		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("Accès refusé pour %s. Contactez l'administrateur.", claims.Email),
		})
		return
	}

	user := models.User{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}

	token := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)
	if err := database.SaveSession(token, user, expiry); err != nil {
		log.Printf("Failed to save session for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la connexion. Réessayez."})
		return
	}

	c.SetCookie(SessionCookie, token, int(24*time.Hour/time.Second), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the stored session and the in-memory scanner state together
// so storage and memory stay consistent.
func Logout(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err == nil {
		database.DeleteSession(token)
		sessions.Drop(token)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session reports the restored user, or 401 when the stored session is
// absent, expired or corrupt.
func Session(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	user, err := database.LoadSession(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RequireSession gates the scanner routes. The stored session is re-validated
// on every request, so an expired login stops working immediately rather than
// at the next app start.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expirée"})
			return
		}
		user, err := database.LoadSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expirée"})
			return
		}
		c.Set("sessionToken", token)
		c.Set("user", user)
		c.Next()
	}
}
