package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mzane42/clinica-scanner/scanner"
)

var allowedOrigins []string

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	},
}

// Live streams the scanner state to the UI: a snapshot on connect, a fresh
// one every poll tick, and an immediate push whenever the overlay or the
// counters change.
func Live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish WebSocket connection"})
		return
	}
	defer conn.Close()

	sc := currentScanner(c)

	err = conn.WriteJSON(gin.H{
		"type":            "hello",
		"user":            sc.User(),
		"detectVibration": scanner.DetectVibration,
	})
	if err != nil {
		log.Printf("Failed to send hello: %v", err)
		return
	}

	// detect client disconnect; the scanner keeps running, only this feed ends
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sc.RefreshStats()
	if err := writeState(conn, sc); err != nil {
		log.Printf("Client disconnected: %v", err)
		return
	}

	ticker := time.NewTicker(scanner.StatsPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sc.RefreshStats()
			if err := writeState(conn, sc); err != nil {
				log.Printf("Client disconnected: %v", err)
				return
			}
		case <-sc.Updates():
			if err := writeState(conn, sc); err != nil {
				log.Printf("Client disconnected: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}

func writeState(conn *websocket.Conn, sc *scanner.Scanner) error {
	snapshot, ok := sc.Stats()
	processing, searching := sc.Busy()

	state := gin.H{
		"type":       "state",
		"processing": processing,
		"searching":  searching,
		"overlay":    sc.CurrentOverlay(),
	}
	if ok {
		state["currentDay"] = snapshot.CurrentDay
		state["stats"] = snapshot.Stats
		state["recentScans"] = displayScans(snapshot.RecentScans)
		state["generatedAt"] = snapshot.GeneratedAt
	}
	return conn.WriteJSON(state)
}
