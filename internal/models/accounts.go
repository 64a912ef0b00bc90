package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Auctioneers are users who own listings.
type User struct {
	Base
	FirstName       string `gorm:"size:50" json:"first_name"`
	LastName        string `gorm:"size:50" json:"last_name"`
	Email           string `gorm:"uniqueIndex" json:"email"`
	Password        string `json:"-"`
	Avatar          string `json:"avatar"`
	IsEmailVerified bool   `gorm:"default:false" json:"-"`
	IsSuperuser     bool   `gorm:"default:false" json:"-"`
	IsStaff         bool   `gorm:"default:false" json:"-"`
}

// FullName joins the user's first and last names.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Otp is the single active one-time code per user, replaced on each
// reissue. The expiry window is measured from the last update.
type Otp struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Code   int       `json:"code"`
}

// Expired reports whether the code is older than the given window.
func (o *Otp) Expired(window time.Duration) bool {
	return time.Now().UTC().Sub(o.UpdatedAt.UTC()) > window
}

// AuthToken stores the issued access/refresh pair, one row per user.
// An access token is only honored while its row exists, so deleting the
// row revokes it.
type AuthToken struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
}

// GuestUser identifies an unauthenticated client. Its uuid is carried
// by the client in a header or cookie and scopes guest watchlists.
type GuestUser struct {
	Base
}
