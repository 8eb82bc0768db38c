package scanner

import "time"

// DebounceWindow is the sliding interval during which a repeated identical
// payload is suppressed.
const DebounceWindow = 3 * time.Second

// debouncer is the {lastPayload, lastEmission} pair behind the scan
// debounce. It is only read and updated under the owning Scanner's mutex, so
// each decode event sees it atomically.
type debouncer struct {
	lastPayload  string
	lastEmission time.Time
}

// shouldEmit reports whether a payload passes the debounce window and, when
// it does, records the emission. A different payload always passes; the same
// payload passes again once the window has elapsed.
func (d *debouncer) shouldEmit(payload string, now time.Time) bool {
	if payload == d.lastPayload && now.Sub(d.lastEmission) < DebounceWindow {
		return false
	}
	d.lastPayload = payload
	d.lastEmission = now
	return true
}
