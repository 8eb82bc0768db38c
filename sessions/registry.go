package sessions

import (
	"log"
	"sync"
	"time"

	"github.com/mzane42/clinica-scanner/client"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/mzane42/clinica-scanner/models"
	"github.com/mzane42/clinica-scanner/scanner"
)

type entry struct {
	scanner  *scanner.Scanner
	lastSeen time.Time
}

var scanners = make(map[string]*entry) // session token -> scanner state
var scannersMutex sync.Mutex

// Acquire returns the scanner state for a session token, creating it on
// first use after login.
func Acquire(token string, user models.User, cl *client.Client) *scanner.Scanner {
	scannersMutex.Lock()
	defer scannersMutex.Unlock()

	if e, exists := scanners[token]; exists {
		e.lastSeen = time.Now()
		return e.scanner
	}

	sc := scanner.New(cl, user)
	scanners[token] = &entry{scanner: sc, lastSeen: time.Now()}
	log.Println("Created scanner state for", user.Email)
	return sc
}

// Drop removes a scanner state on logout.
func Drop(token string) {
	scannersMutex.Lock()
	defer scannersMutex.Unlock()
	delete(scanners, token)
}

// StartSweeper periodically clears expired stored sessions and scanner
// states idle past the session lifetime.
func StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if n := database.DeleteExpiredSessions(); n > 0 {
				log.Printf("Swept %d expired sessions", n)
			}
			sweepIdle(24 * time.Hour)
		}
	}()
}

func sweepIdle(maxIdle time.Duration) {
	scannersMutex.Lock()
	defer scannersMutex.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	for token, e := range scanners {
		if e.lastSeen.Before(cutoff) {
			delete(scanners, token)
		}
	}
}
