package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/repository"
)

// BiddingService enforces the bid acceptance rules and records bids.
type BiddingService struct {
	listings repository.ListingStore
	bids     repository.BidStore
}

// NewBiddingService creates a BiddingService.
func NewBiddingService(listings repository.ListingStore, bids repository.BidStore) *BiddingService {
	return &BiddingService{listings: listings, bids: bids}
}

// PlaceBid validates a bid against the listing rules and upserts the
// bidder's bid. A repeat bid by the same user updates the existing row.
func (s *BiddingService) PlaceBid(ctx context.Context, bidder *models.User, slug string, amount decimal.Decimal) (*models.Bid, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load listing %s: %w", slug, err)
	}
	if listing == nil {
		return nil, auctionerrors.ErrListingNotFound
	}

	if err := validateBid(listing, bidder, amount); err != nil {
		return nil, err
	}

	bid, err := s.bids.SaveForListing(ctx, listing, bidder.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("service: failed to record bid on %s by %s: %w", slug, bidder.ID, err)
	}
	return bid, nil
}

// validateBid applies the acceptance rules in order: ownership, listing
// active, time remaining, price floor, highest bid.
func validateBid(listing *models.Listing, bidder *models.User, amount decimal.Decimal) error {
	switch {
	case bidder.ID == listing.AuctioneerID:
		return auctionerrors.ErrOwnListingBid
	case !listing.Active:
		return auctionerrors.ErrAuctionClosed
	case listing.TimeLeft() < 1:
		return auctionerrors.ErrAuctionExpired
	case amount.LessThan(listing.Price):
		return auctionerrors.ErrBidBelowPrice
	case amount.LessThanOrEqual(listing.HighestBid):
		return auctionerrors.ErrBidNotHighest
	}
	return nil
}

// ListBids returns the latest bids on a listing, newest first.
func (s *BiddingService) ListBids(ctx context.Context, slug string, limit int) (*models.Listing, []models.Bid, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load listing %s: %w", slug, err)
	}
	if listing == nil {
		return nil, nil, auctionerrors.ErrListingNotFound
	}

	bids, err := s.bids.GetByListing(ctx, listing.ID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to get bids for %s: %w", slug, err)
	}
	return listing, bids, nil
}

// ListOwnListingBids returns every bid on a listing after verifying the
// caller owns it.
func (s *BiddingService) ListOwnListingBids(ctx context.Context, owner *models.User, slug string) (*models.Listing, []models.Bid, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to load listing %s: %w", slug, err)
	}
	if listing == nil {
		return nil, nil, auctionerrors.ErrListingNotFound
	}
	if listing.AuctioneerID != owner.ID {
		return nil, nil, auctionerrors.ErrNotListingOwner
	}

	bids, err := s.bids.GetByListing(ctx, listing.ID, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to get bids for %s: %w", slug, err)
	}
	return listing, bids, nil
}
