package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Share is the persisted record for one shared file. The row is created only
// after the client confirms its upload; it is never hard-deleted, only marked
// IsDeleted, and expiry is evaluated at read time rather than by a sweeper.
type Share struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShareableID uuid.UUID `json:"shareableId" gorm:"type:uuid;uniqueIndex;not null"` // the only handle public clients ever see
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	FileName    string    `json:"fileName" gorm:"not null"`
	FileType    string    `json:"fileType" gorm:"not null"`
	Size        int64     `json:"size" gorm:"not null"` // client-declared bytes, not verified against the object
	StoragePath string    `json:"storagePath" gorm:"uniqueIndex;not null"`
	// nil means the share is not password protected
	PasswordHash *string    `json:"-" gorm:"type:varchar(128)"`
	ExpiresAt    *time.Time `json:"expiresAt"` // nil means never expires
	IsDeleted    bool       `json:"isDeleted" gorm:"default:false"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// SetPassword hashes and stores raw. An empty string clears the hash, so
// "no password supplied" and "not protected" end up in the same state.
func (s *Share) SetPassword(raw string) error {
	if raw == "" {
		s.PasswordHash = nil
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hashed)
	s.PasswordHash = &h
	return nil
}

// CheckPassword reports whether raw matches the stored hash. It is false
// whenever no hash is set or raw is empty; an empty password never counts
// as "no check requested".
func (s *Share) CheckPassword(raw string) bool {
	if s.PasswordHash == nil || raw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*s.PasswordHash), []byte(raw)) == nil
}

// PasswordProtected is the only password-derived fact exposed publicly.
func (s *Share) PasswordProtected() bool {
	return s.PasswordHash != nil
}

// Expired reports whether the share's expiry, if any, has passed at now.
// Comparison is in UTC.
func (s *Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.UTC().Before(now.UTC())
}

// OwnerRef satisfies access.Owned.
func (s *Share) OwnerRef() uuid.UUID {
	return s.OwnerID
}
