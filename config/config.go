package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup. Missing
// webhook URLs are not fatal here; the API client reports them per call so
// the rest of the app stays usable.
type Config struct {
	Port           string
	GoogleClientID string
	AllowedEmails  string
	CheckinURL     string
	StatsURL       string
	SessionsDBPath string
	JournalDBPath  string
	AllowedOrigins []string
}

func Load() Config {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to load .env file:", err)
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		AllowedEmails:  os.Getenv("ALLOWED_EMAILS"),
		CheckinURL:     os.Getenv("CHECKIN_WEBHOOK_URL"),
		StatsURL:       os.Getenv("STATS_WEBHOOK_URL"),
		SessionsDBPath: getenv("SESSIONS_DB_PATH", "./sessions.db"),
		JournalDBPath:  getenv("JOURNAL_DB_PATH", "./scan-journal.db"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:5174")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.CheckinURL == "" {
		log.Println("CHECKIN_WEBHOOK_URL not set, check-ins will fail until configured")
	}
	if cfg.StatsURL == "" {
		log.Println("STATS_WEBHOOK_URL not set, stats will fail until configured")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
