package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups listings under a unique name and slug.
type Category struct {
	Base
	Name string `gorm:"size:30;uniqueIndex" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}

// Listing is an item up for auction, owned by exactly one auctioneer.
// HighestBid tracks the max of the associated bid amounts and only
// moves forward.
type Listing struct {
	Base
	AuctioneerID uuid.UUID `gorm:"type:uuid;index" json:"auctioneer_id"`
	Auctioneer   *User     `gorm:"foreignKey:AuctioneerID;references:ID" json:"-"`

	Name string `gorm:"size:70" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
	Desc string `json:"desc"`

	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID;references:ID" json:"-"`

	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	HighestBid  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"highest_bid"`
	BidsCount   int             `gorm:"default:0" json:"bids_count"`
	ClosingDate time.Time       `json:"closing_date"`
	Active      bool            `gorm:"default:true" json:"active"`
	Image       string          `json:"image"`
}

// TimeLeftSeconds is the raw remaining auction time, negative once the
// closing date has passed.
func (l *Listing) TimeLeftSeconds() float64 {
	return l.ClosingDate.Sub(time.Now().UTC()).Seconds()
}

// TimeLeft is the effective remaining time: an inactive listing has
// none regardless of its closing date.
func (l *Listing) TimeLeft() float64 {
	if !l.Active {
		return 0
	}
	return l.TimeLeftSeconds()
}

// Bid is a user's offer on a listing. The (user, listing) pair is
// unique so a repeat bid updates the existing row.
type Bid struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bids_user_listing" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
	ListingID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_bids_user_listing;index" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;references:ID" json:"-"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
}

// WatchList associates a listing with a client. Exactly one of UserID
// or GuestUserID is set, each unique per listing.
type WatchList struct {
	Base
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_watchlists_user_listing" json:"user_id,omitempty"`
	User   *User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	GuestUserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_watchlists_guest_listing" json:"guest_user_id,omitempty"`
	GuestUser   *GuestUser `gorm:"foreignKey:GuestUserID;references:ID" json:"-"`

	ListingID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_watchlists_user_listing;uniqueIndex:idx_watchlists_guest_listing" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;references:ID" json:"-"`
}
