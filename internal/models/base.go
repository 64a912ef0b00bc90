package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the columns shared by every table: a numeric primary key
// for the database and a uuid exposed to clients.
type Base struct {
	Pkid      int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the public uuid when one wasn't set explicitly.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
