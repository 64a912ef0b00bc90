package models

import (
	"github.com/google/uuid"
)

// SiteDetail is the singleton record of site contact details, created
// with defaults the first time it is read.
type SiteDetail struct {
	Base
	Name    string `gorm:"size:300" json:"name"`
	Email   string `gorm:"size:300" json:"email"`
	Phone   string `gorm:"size:300" json:"phone"`
	Address string `gorm:"size:300" json:"address"`
	Fb      string `gorm:"size:300" json:"fb"`
	Tw      string `gorm:"size:300" json:"tw"`
	Wh      string `gorm:"size:300" json:"wh"`
	Ig      string `gorm:"size:300" json:"ig"`
}

// DefaultSiteDetail is the record created on first read when the table
// is empty.
func DefaultSiteDetail() *SiteDetail {
	return &SiteDetail{
		Name:    "Kay's Auction House",
		Email:   "kayprogrammer1@gmail.com",
		Phone:   "+2348133831036",
		Address: "234, Lagos, Nigeria",
		Fb:      "https://facebook.com",
		Tw:      "https://twitter.com",
		Wh:      "https://wa.me/2348133831036",
		Ig:      "https://instagram.com",
	}
}

// Subscriber captures a newsletter email, deduplicated on create.
type Subscriber struct {
	Base
	Email    string `json:"email"`
	Exported bool   `gorm:"default:false" json:"-"`
}

// Review is a site testimonial, one per reviewer, listed only when
// Show is set.
type Review struct {
	Base
	ReviewerID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID;references:ID" json:"-"`
	Show       bool      `gorm:"default:false" json:"-"`
	Text       string    `gorm:"size:100" json:"text"`
}
