package database

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/mzane42/clinica-scanner/models"
	"gorm.io/gorm"
)

// ErrNoSession covers every case the app treats as "not logged in": no
// stored record, an expired one, or one that cannot be parsed.
var ErrNoSession = errors.New("no valid session")

func SaveSession(token string, user models.User, expiry time.Time) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	record := models.StoredSession{
		Token:    token,
		UserJSON: string(userJSON),
		Expiry:   expiry.UnixMilli(),
	}
	return GORMDB.Create(&record).Error
}

// LoadSession restores the user for a session token. Expired and corrupt
// records are actively deleted so the next load starts clean.
func LoadSession(token string) (models.User, error) {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()

	var record models.StoredSession
	err := GORMDB.Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNoSession
		}
		return models.User{}, err
	}

	if record.Expiry <= time.Now().UnixMilli() {
		GORMDB.Delete(&record)
		return models.User{}, ErrNoSession
	}

	var user models.User
	if err := json.Unmarshal([]byte(record.UserJSON), &user); err != nil {
		log.Printf("Clearing corrupt session record %s: %v", token, err)
		GORMDB.Delete(&record)
		return models.User{}, ErrNoSession
	}

	return user, nil
}

func DeleteSession(token string) {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	GORMDB.Where("token = ?", token).Delete(&models.StoredSession{})
}

// DeleteExpiredSessions removes every session past its expiry. Returns the
// number of rows cleared.
func DeleteExpiredSessions() int64 {
	GORMDBMutex.Lock()
	defer GORMDBMutex.Unlock()
	result := GORMDB.Where("expiry <= ?", time.Now().UnixMilli()).Delete(&models.StoredSession{})
	if result.Error != nil {
		log.Println("Failed to sweep expired sessions:", result.Error)
		return 0
	}
	return result.RowsAffected
}
