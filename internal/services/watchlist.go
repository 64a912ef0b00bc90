package services

import (
	"context"
	"fmt"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/repository"
)

// WatchlistService manages watchlist entries for authenticated and
// guest clients.
type WatchlistService struct {
	listings   repository.ListingStore
	watchlists repository.WatchlistStore
}

// NewWatchlistService creates a WatchlistService.
func NewWatchlistService(listings repository.ListingStore, watchlists repository.WatchlistStore) *WatchlistService {
	return &WatchlistService{listings: listings, watchlists: watchlists}
}

// Toggle adds the listing to the client's watchlist, or removes it when
// already present. It reports whether the entry was added.
func (s *WatchlistService) Toggle(ctx context.Context, client Client, slug string) (bool, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("service: failed to get listing %s: %w", slug, err)
	}
	if listing == nil {
		return false, auctionerrors.ErrListingNotFound
	}

	existing, err := s.watchlists.GetByClientAndListing(ctx, client.Key(), listing.ID)
	if err != nil {
		return false, fmt.Errorf("service: failed to get watchlist entry: %w", err)
	}
	if existing != nil {
		if err := s.watchlists.Delete(ctx, existing); err != nil {
			return false, fmt.Errorf("service: failed to remove watchlist entry: %w", err)
		}
		return false, nil
	}

	entry := &models.WatchList{ListingID: listing.ID}
	if client.Authenticated() {
		userID := client.User.ID
		entry.UserID = &userID
	} else {
		guestID := client.GuestID
		entry.GuestUserID = &guestID
	}
	if err := s.watchlists.Create(ctx, entry); err != nil {
		return false, fmt.Errorf("service: failed to add watchlist entry: %w", err)
	}
	return true, nil
}

// Listings returns the listings on the client's watchlist, each flagged
// as watched.
func (s *WatchlistService) Listings(ctx context.Context, client Client) ([]ListingInfo, error) {
	entries, err := s.watchlists.GetByClientKey(ctx, client.Key())
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist: %w", err)
	}

	infos := make([]ListingInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.Listing == nil {
			continue
		}
		infos = append(infos, ListingInfo{Listing: *entry.Listing, Watching: true})
	}
	return infos, nil
}
