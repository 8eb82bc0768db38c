package database

import (
	"database/sql"
	"log"

	"github.com/mzane42/clinica-scanner/models"
)

// RecordScan appends one classified scan to the local journal. The journal is
// best-effort history; a write failure is logged, not surfaced to the user.
func RecordScan(entry models.JournalEntry) error {
	if DB == nil {
		return nil
	}
	DBMutex.Lock()
	defer DBMutex.Unlock()
	_, err := DB.Exec(
		"INSERT INTO scan_journal (kind, payload, status, message, visitor_name, scanned_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.Kind, entry.Payload, entry.Status, entry.Message, entry.VisitorName, entry.ScannedAt,
	)
	if err != nil {
		log.Println("Failed to record scan in journal:", err)
	}
	return err
}

// RecentJournalEntries returns the newest entries first. Serves as the
// fallback recent-scans feed when the stats webhook is unreachable.
func RecentJournalEntries(limit int) (entries []models.JournalEntry, err error) {
	DBMutex.Lock()
	defer DBMutex.Unlock()
	var rows *sql.Rows
	rows, err = DB.Query(
		"SELECT id, kind, payload, status, message, visitor_name, scanned_at FROM scan_journal ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		log.Println("Failed to query scan journal:", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var e models.JournalEntry
		err = rows.Scan(&e.ID, &e.Kind, &e.Payload, &e.Status, &e.Message, &e.VisitorName, &e.ScannedAt)
		if err != nil {
			log.Println("Failed to scan journal row:", err)
			return
		}
		entries = append(entries, e)
	}
	return
}
