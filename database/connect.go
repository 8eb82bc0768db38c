package database

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mzane42/clinica-scanner/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *sql.DB
var DBMutex sync.Mutex

var GORMDB *gorm.DB
var GORMDBMutex sync.Mutex

const createJournalTable = `CREATE TABLE IF NOT EXISTS scan_journal (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	payload TEXT NOT NULL,
	status TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	visitor_name TEXT NOT NULL DEFAULT '',
	scanned_at TEXT NOT NULL
)`

// Connect opens the local scan journal database.
func Connect(path string) {
	var err error
	DB, err = sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}
	if _, err = DB.Exec(createJournalTable); err != nil {
		log.Fatal(err)
	}
}

// ConnectGORM opens the session store.
func ConnectGORM(path string) {
	var err error
	GORMDB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		panic("failed to connect to sessions database")
	}
	GORMDB.AutoMigrate(&models.StoredSession{})
}
