package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionTokenKey is the fixed key the bearer credential lives under,
// matching the browser client this frontend replaced.
const SessionTokenKey = "jwt"

// Credential is one durable key/value pair. Only the session token uses it
// today, but the table is deliberately generic.
type Credential struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string
	UpdatedAt time.Time
}

// CredentialStore persists the remote-session bearer token across restarts.
// It satisfies backend.TokenSource.
type CredentialStore struct {
	database *gorm.DB
}

func NewCredentialStore(database *gorm.DB) *CredentialStore {
	return &CredentialStore{database: database}
}

// Token returns the stored bearer token, or false when none is stored.
func (store *CredentialStore) Token() (string, bool) {
	var credential Credential
	err := store.database.First(&credential, "key = ?", SessionTokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false
	}
	if err != nil {
		return "", false
	}
	if credential.Value == "" {
		return "", false
	}
	return credential.Value, true
}

// SetToken stores the bearer token under the fixed session key.
func (store *CredentialStore) SetToken(token string) error {
	credential := Credential{Key: SessionTokenKey, Value: token, UpdatedAt: time.Now()}
	return store.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&credential).Error
}

// ClearToken removes the stored bearer token. Clearing an absent token is
// not an error.
func (store *CredentialStore) ClearToken() error {
	return store.database.Delete(&Credential{}, "key = ?", SessionTokenKey).Error
}
