package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a locally registered account. The TOTP secret is bound at signup and
// stored encrypted; RiskProfile is the per-user pattern memory the scoring
// service reads and rewrites on every evaluated login.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	FullName        string         `gorm:"type:varchar(200);not null"                     json:"full_name"`
	Email           string         `gorm:"type:varchar(254);not null;uniqueIndex"         json:"email"`
	HashedPassword  string         `gorm:"not null"                                       json:"-"`
	EncryptedSecret string         `gorm:"not null"                                       json:"-"`
	RiskProfile     string         `gorm:"type:text;not null;default:'{}'"                json:"-"`
	CreatedAt       time.Time      `                                                      json:"created_at"`
	UpdatedAt       time.Time      `                                                      json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index"                                          json:"-"`
}

// BeforeCreate assigns the ID client-side so the sqlite driver, which has no
// gen_random_uuid(), behaves the same as postgres.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
