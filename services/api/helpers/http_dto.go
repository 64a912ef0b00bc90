package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	"auction-api/internal/models"
	"auction-api/internal/services"
)

// Request DTOs

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   int    `json:"otp" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SetNewPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Otp      int    `json:"otp" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type CreateListingRequest struct {
	Name        string          `json:"name" binding:"required,max=70"`
	Desc        string          `json:"desc" binding:"required"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ClosingDate time.Time       `json:"closing_date" binding:"required"`
	Image       string          `json:"image"`
}

type UpdateListingRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=70"`
	Desc        *string          `json:"desc"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ClosingDate *time.Time       `json:"closing_date"`
	Active      *bool            `json:"active"`
	Image       *string          `json:"image"`
}

type WatchlistRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Avatar    string `json:"avatar"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Response DTOs

type TokensResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuctioneerData struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ListingData struct {
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Desc            string          `json:"desc"`
	Auctioneer      AuctioneerData  `json:"auctioneer"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	ClosingDate     time.Time       `json:"closing_date"`
	TimeLeftSeconds float64         `json:"time_left_seconds"`
	Active          bool            `json:"active"`
	BidsCount       int             `json:"bids_count"`
	HighestBid      decimal.Decimal `json:"highest_bid"`
	Image           string          `json:"image"`
	Watchlist       bool            `json:"watchlist"`
}

type ListingDetailData struct {
	Listing         ListingData   `json:"listing"`
	RelatedListings []ListingData `json:"related_listings"`
}

type CategoryData struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type BidData struct {
	ID        string          `json:"id"`
	User      AuctioneerData  `json:"user"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ListingBidsData struct {
	Listing string    `json:"listing"`
	Bids    []BidData `json:"bids"`
}

type ProfileData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// NewListingData flattens a listing and its watchlist flag into the
// response shape.
func NewListingData(listing models.Listing, watching bool) ListingData {
	data := ListingData{
		Name:            listing.Name,
		Slug:            listing.Slug,
		Desc:            listing.Desc,
		Category:        "Other",
		Price:           listing.Price,
		ClosingDate:     listing.ClosingDate,
		TimeLeftSeconds: listing.TimeLeftSeconds(),
		Active:          listing.Active,
		BidsCount:       listing.BidsCount,
		HighestBid:      listing.HighestBid,
		Image:           listing.Image,
		Watchlist:       watching,
	}
	if listing.Auctioneer != nil {
		data.Auctioneer = AuctioneerData{Name: listing.Auctioneer.FullName(), Avatar: listing.Auctioneer.Avatar}
	}
	if listing.Category != nil {
		data.Category = listing.Category.Name
	}
	return data
}

// NewListingDataList maps listing infos into response shapes.
func NewListingDataList(infos []services.ListingInfo) []ListingData {
	out := make([]ListingData, 0, len(infos))
	for _, info := range infos {
		out = append(out, NewListingData(info.Listing, info.Watching))
	}
	return out
}

// NewBidData maps a bid into the response shape.
func NewBidData(bid models.Bid) BidData {
	data := BidData{
		ID:        bid.ID.String(),
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: bid.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if bid.User != nil {
		data.User = AuctioneerData{Name: bid.User.FullName(), Avatar: bid.User.Avatar}
	}
	return data
}

// NewBidDataList maps bids into response shapes.
func NewBidDataList(bids []models.Bid) []BidData {
	out := make([]BidData, 0, len(bids))
	for _, bid := range bids {
		out = append(out, NewBidData(bid))
	}
	return out
}
