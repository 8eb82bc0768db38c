package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mzane42/clinica-scanner/auth"
	"github.com/mzane42/clinica-scanner/client"
	"github.com/mzane42/clinica-scanner/config"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const successBody = `{"success":true,"message":"Check-in réussi","data":{"name":"Jane Doe","email":"jane@x.com","checked_in_at":"2026-01-19T10:00:00Z"}}`
const duplicateBody = `{"success":false,"error_code":"ALREADY_CHECKED_IN","message":"Ticket déjà scanné le 19/01/2026 09:00:00"}`
const statsBody = `{"currentDay":"J2","stats":{"totalRegistered":1200,"totalCheckedIn":450,"todayCheckedIn":180,"byDay":{"J1":270,"J2":180,"J3":0}},"recentScans":[{"name":"Jane Doe","company":"Acme","timestamp":"2026-01-20T09:15:00Z","day":"J2"}],"generatedAt":"2026-01-20T09:16:00Z"}`

// setupRouter wires the full stack the way main does, against a stub
// webhook.
func setupRouter(t *testing.T, webhook http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	database.Connect(filepath.Join(dir, "journal.db"))
	database.ConnectGORM(filepath.Join(dir, "sessions.db"))

	srv := httptest.NewServer(webhook)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		GoogleClientID: "test-client-id",
		AllowedEmails:  "staff@clinica-expo.com",
		CheckinURL:     srv.URL + "/checkin",
		StatsURL:       srv.URL + "/stats",
		AllowedOrigins: []string{"http://localhost:5174"},
	}
	auth.Init(cfg)
	Init(cfg, client.New(cfg))

	router := gin.New()
	router.POST("/auth/login", auth.Login)
	authorized := router.Group("/", auth.RequireSession())
	authorized.POST("/scan", Scan)
	authorized.POST("/search", Search)
	authorized.POST("/dismiss", Dismiss)
	authorized.GET("/stats", Stats)
	authorized.GET("/scans/recent", RecentScans)
	authorized.GET("/live", Live)
	return router
}

func loginCookie(t *testing.T, router *gin.Engine) *http.Cookie {
	t.Helper()
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"email":"staff@clinica-expo.com","name":"Marie Dupont"}`))
	token := "header." + payload + ".sig"
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"credential":"`+token+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func doJSON(router *gin.Engine, cookie *http.Cookie, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScanSuccessFlow(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stats" {
			w.Write([]byte(statsBody))
			return
		}
		w.Write([]byte(successBody))
	})
	cookie := loginCookie(t, router)

	w := doJSON(router, cookie, http.MethodPost, "/scan", `{"barcode":"ABC123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var overlay struct {
		Outcome struct {
			Status string `json:"status"`
			Result struct {
				Visitor struct {
					Name  string `json:"name"`
					Email string `json:"email"`
				} `json:"visitor"`
			} `json:"result"`
		} `json:"outcome"`
		Feedback struct {
			Color     string `json:"color"`
			Vibration []int  `json:"vibration"`
		} `json:"feedback"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overlay))
	assert.Equal(t, "success", overlay.Outcome.Status)
	assert.Equal(t, "Jane Doe", overlay.Outcome.Result.Visitor.Name)
	assert.Equal(t, "jane@x.com", overlay.Outcome.Result.Visitor.Email)
	assert.Equal(t, "#10b981", overlay.Feedback.Color)
	assert.Equal(t, []int{100, 50, 100, 50, 200}, overlay.Feedback.Vibration)
	assert.Equal(t, "Check-in réussi", overlay.Title)

	// the scan landed in the local journal
	scans := doJSON(router, cookie, http.MethodGet, "/scans/recent", "")
	require.Equal(t, http.StatusOK, scans.Code)
	assert.Contains(t, scans.Body.String(), "ABC123")
	assert.Contains(t, scans.Body.String(), "Jane Doe")
}

func TestScanRepeatWithinWindowIgnored(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(successBody))
	})
	cookie := loginCookie(t, router)

	first := doJSON(router, cookie, http.MethodPost, "/scan", `{"barcode":"ABC123"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, cookie, http.MethodPost, "/scan", `{"barcode":"ABC123"}`)
	assert.Equal(t, http.StatusAccepted, second.Code)
	assert.Contains(t, second.Body.String(), "ignored")
}

func TestSearchDuplicateFlow(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(duplicateBody))
	})
	cookie := loginCookie(t, router)

	w := doJSON(router, cookie, http.MethodPost, "/search", `{"email":"jane@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"duplicate"`)
	assert.Contains(t, w.Body.String(), "19/01/2026 09:00:00")
	assert.Contains(t, w.Body.String(), "#f59e0b")
}

func TestScanRequiresAuthentication(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(successBody))
	})

	w := doJSON(router, nil, http.MethodPost, "/scan", `{"barcode":"ABC123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScanMissingBarcode(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(successBody))
	})
	cookie := loginCookie(t, router)

	w := doJSON(router, cookie, http.MethodPost, "/scan", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDismissClearsOverlay(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(successBody))
	})
	cookie := loginCookie(t, router)

	require.Equal(t, http.StatusOK, doJSON(router, cookie, http.MethodPost, "/scan", `{"barcode":"ABC123"}`).Code)

	w := doJSON(router, cookie, http.MethodPost, "/dismiss", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dismissed")
}

func TestStatsEndpoint(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statsBody))
	})
	cookie := loginCookie(t, router)

	w := doJSON(router, cookie, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CurrentDay string `json:"currentDay"`
		Stats      struct {
			TodayCheckedIn int `json:"todayCheckedIn"`
		} `json:"stats"`
		RecentScans []struct {
			Name        string `json:"name"`
			DisplayTime string `json:"displayTime"`
		} `json:"recentScans"`
		Stale bool `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "J2", body.CurrentDay)
	assert.Equal(t, 180, body.Stats.TodayCheckedIn)
	require.Len(t, body.RecentScans, 1)
	assert.Equal(t, "Jane Doe", body.RecentScans[0].Name)
	assert.Equal(t, "09:15", body.RecentScans[0].DisplayTime)
	assert.False(t, body.Stale)
}

func TestStatsEndpointWebhookDown(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	cookie := loginCookie(t, router)

	w := doJSON(router, cookie, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Erreur lors de la récupération des statistiques")
}
