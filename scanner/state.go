// Package scanner holds the per-device state of the scan page: debounce,
// in-flight guards, the current result overlay and the attendance snapshot.
package scanner

import (
	"log"
	"sync"
	"time"

	"github.com/mzane42/clinica-scanner/client"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/mzane42/clinica-scanner/models"
)

// StatsPollInterval is how often the live feed refreshes the snapshot.
const StatsPollInterval = 30 * time.Second

// Scanner orchestrates one staff device. The QR and email channels each
// allow a single in-flight request; a submission while its channel is busy
// is silently ignored, never queued. The two channels may overlap each
// other.
type Scanner struct {
	mu sync.Mutex

	user   models.User
	client *client.Client
	now    func() time.Time

	deb        debouncer
	processing bool // QR channel in flight
	searching  bool // email channel in flight

	overlay    *Overlay
	overlayGen uint64

	stats      models.StatsSnapshot
	statsValid bool

	autoDismiss time.Duration
	updates     chan struct{}
}

func New(cl *client.Client, user models.User) *Scanner {
	return &Scanner{
		user:        user,
		client:      cl,
		now:         time.Now,
		autoDismiss: AutoDismissDelay,
		updates:     make(chan struct{}, 1),
	}
}

// ScanReply is the immediate answer to a submission. Ignored means the event
// was swallowed by the debounce window or an in-flight guard and no outcome
// was produced.
type ScanReply struct {
	Ignored bool
	Overlay *Overlay
}

// SubmitQR runs a scanned payload through debounce, the in-flight guard and
// the check-in call, then installs the classified outcome.
func (s *Scanner) SubmitQR(payload string) ScanReply {
	s.mu.Lock()
	if s.processing {
		// decoding is paused while a scan is processed; a payload arriving
		// anyway must not fire a second request or touch debounce state
		s.mu.Unlock()
		return ScanReply{Ignored: true}
	}
	if !s.deb.shouldEmit(payload, s.now()) {
		s.mu.Unlock()
		return ScanReply{Ignored: true}
	}
	s.processing = true
	s.mu.Unlock()

	result, err := s.client.CheckinByQR(payload)

	s.mu.Lock()
	s.processing = false
	overlay, entry := s.applyResult("qr", payload, result, err)
	s.mu.Unlock()

	database.RecordScan(entry)
	return ScanReply{Overlay: overlay}
}

// SubmitEmail runs a manual email lookup on its own channel.
func (s *Scanner) SubmitEmail(email string) ScanReply {
	s.mu.Lock()
	if s.searching {
		s.mu.Unlock()
		return ScanReply{Ignored: true}
	}
	s.searching = true
	s.mu.Unlock()

	result, err := s.client.CheckinByEmail(email)

	s.mu.Lock()
	s.searching = false
	overlay, entry := s.applyResult("email", email, result, err)
	s.mu.Unlock()

	database.RecordScan(entry)
	return ScanReply{Overlay: overlay}
}

// applyResult classifies a completed call, shows the overlay and kicks off
// the post-success stats refetch. The journal entry is returned instead of
// written here so the disk write happens outside the lock. Caller must hold
// s.mu.
func (s *Scanner) applyResult(kind, payload string, result models.CheckinResult, err error) (*Overlay, models.JournalEntry) {
	var outcome models.ScanOutcome
	if err != nil {
		outcome = models.ScanOutcome{Status: models.StatusError, ErrorMessage: err.Error()}
	} else {
		res := result
		outcome = models.ScanOutcome{Status: Classify(result), Result: &res}
	}

	overlay := s.setOverlay(outcome)
	s.poke()

	entry := models.JournalEntry{
		Kind:      kind,
		Payload:   payload,
		Status:    string(outcome.Status),
		ScannedAt: s.now().UTC().Format(time.RFC3339),
	}
	if outcome.Result != nil {
		entry.Message = outcome.Result.Message
		if outcome.Result.Visitor != nil {
			entry.VisitorName = outcome.Result.Visitor.Name
		}
	} else {
		entry.Message = outcome.ErrorMessage
	}

	if outcome.Status == models.StatusSuccess {
		// counters should reflect this check-in before the next poll tick
		go s.RefreshStats()
	}

	return overlay, entry
}

// RefreshStats fetches a new snapshot and replaces the old one wholesale.
// Concurrent fetches may race; the last one to resolve wins. Failures keep
// the previous snapshot.
func (s *Scanner) RefreshStats() error {
	snapshot, err := s.client.FetchStats()
	if err != nil {
		log.Println("Failed to fetch stats:", err)
		return err
	}

	s.mu.Lock()
	s.stats = snapshot
	s.statsValid = true
	s.mu.Unlock()
	s.poke()
	return nil
}

// Stats returns the latest snapshot; ok is false until the first successful
// fetch.
func (s *Scanner) Stats() (snapshot models.StatsSnapshot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.statsValid
}

// Busy reports the per-channel in-flight flags.
func (s *Scanner) Busy() (processing, searching bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing, s.searching
}

func (s *Scanner) User() models.User {
	return s.user
}

// Updates signals state changes (overlay shown/dismissed, stats refreshed)
// to the live feed. Receives are coalesced.
func (s *Scanner) Updates() <-chan struct{} {
	return s.updates
}

// poke signals an update without blocking.
func (s *Scanner) poke() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
