package scanner

import (
	"time"

	"github.com/mzane42/clinica-scanner/models"
)

// AutoDismissDelay is how long an overlay stays up without user interaction.
const AutoDismissDelay = 4 * time.Second

// Overlay is the full-screen result currently shown to the staff member. At
// most one exists per scanner; a new outcome replaces it outright.
type Overlay struct {
	Outcome  models.ScanOutcome `json:"outcome"`
	Feedback Feedback           `json:"feedback"`
	Title    string             `json:"title"`
	ShownAt  time.Time          `json:"shownAt"`

	gen   uint64
	timer *time.Timer
}

// setOverlay installs a new overlay and arms its auto-dismiss timer. The
// generation counter ensures a timer armed for an older overlay can never
// dismiss a newer one. Caller must hold s.mu.
func (s *Scanner) setOverlay(outcome models.ScanOutcome) *Overlay {
	if s.overlay != nil && s.overlay.timer != nil {
		s.overlay.timer.Stop()
	}

	s.overlayGen++
	gen := s.overlayGen

	fb := FeedbackFor(outcome.Status)
	title := fb.Title
	if outcome.Result != nil && outcome.Result.Message != "" {
		title = outcome.Result.Message
	} else if outcome.ErrorMessage != "" {
		title = outcome.ErrorMessage
	}

	o := &Overlay{
		Outcome:  outcome,
		Feedback: fb,
		Title:    title,
		ShownAt:  s.now(),
		gen:      gen,
	}
	o.timer = time.AfterFunc(s.autoDismiss, func() {
		s.dismissExpired(gen)
	})
	s.overlay = o
	return o
}

// Dismiss clears the current overlay on explicit user action and cancels its
// pending auto-dismiss.
func (s *Scanner) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return
	}
	if s.overlay.timer != nil {
		s.overlay.timer.Stop()
	}
	s.overlay = nil
	s.poke()
}

// dismissExpired runs from the auto-dismiss timer. It only clears the
// overlay it was armed for.
func (s *Scanner) dismissExpired(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil || s.overlay.gen != gen {
		return
	}
	s.overlay = nil
	s.poke()
}

// CurrentOverlay returns the overlay being shown, or nil.
func (s *Scanner) CurrentOverlay() *Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}
