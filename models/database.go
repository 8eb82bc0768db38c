package models

import "gorm.io/gorm"

// StoredSession is the persisted login session. The user is kept as a JSON
// blob so a corrupt record can be detected and cleared on load instead of
// being half-restored.
type StoredSession struct {
	gorm.Model
	Token    string `json:"token" gorm:"index"`
	UserJSON string `json:"user"`
	Expiry   int64  `json:"expiry"` // epoch millis
}

// JournalEntry is one row of the local scan journal.
type JournalEntry struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"` // "qr" or "email"
	Payload     string `json:"payload"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	VisitorName string `json:"visitorName"`
	ScannedAt   string `json:"scannedAt"`
}
