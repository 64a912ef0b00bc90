package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/repository"
	"auction-api/utils"
)

// CategoryOther is the reserved slug for uncategorized listings.
const CategoryOther = "other"

// ListingInfo pairs a listing with client-specific metadata.
type ListingInfo struct {
	Listing  models.Listing
	Watching bool
}

// ListingInput carries the fields for creating a listing.
type ListingInput struct {
	Name         string
	Desc         string
	CategorySlug string
	Price        decimal.Decimal
	ClosingDate  time.Time
	Image        string
}

// ListingPatch carries a partial update; nil fields are left untouched.
type ListingPatch struct {
	Name         *string
	Desc         *string
	CategorySlug *string
	Price        *decimal.Decimal
	ClosingDate  *time.Time
	Active       *bool
	Image        *string
}

// ListingService manages the listing lifecycle and related queries.
type ListingService struct {
	listings   repository.ListingStore
	categories repository.CategoryStore
	watchlists repository.WatchlistStore
}

// NewListingService creates a ListingService.
func NewListingService(listings repository.ListingStore, categories repository.CategoryStore, watchlists repository.WatchlistStore) *ListingService {
	return &ListingService{listings: listings, categories: categories, watchlists: watchlists}
}

// List returns all listings, newest first, flagged with the client's
// watchlist membership. A positive quantity caps the result.
func (s *ListingService) List(ctx context.Context, client Client, quantity int) ([]ListingInfo, error) {
	listings, err := s.listings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listings: %w", err)
	}
	if quantity > 0 && quantity < len(listings) {
		listings = listings[:quantity]
	}
	return s.withWatchlistFlags(ctx, client, listings)
}

// ListByCategory returns listings under the category slug; the
// reserved slug "other" selects uncategorized listings.
func (s *ListingService) ListByCategory(ctx context.Context, client Client, categorySlug string) ([]ListingInfo, error) {
	var categoryID *uuid.UUID
	if categorySlug != CategoryOther {
		category, err := s.categories.GetBySlug(ctx, categorySlug)
		if err != nil {
			return nil, fmt.Errorf("service: failed to get category %s: %w", categorySlug, err)
		}
		if category == nil {
			return nil, auctionerrors.ErrCategoryNotFound
		}
		categoryID = &category.ID
	}

	listings, err := s.listings.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get category listings: %w", err)
	}
	return s.withWatchlistFlags(ctx, client, listings)
}

// Categories returns all listing categories.
func (s *ListingService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get categories: %w", err)
	}
	return categories, nil
}

// Detail returns a listing with up to three related listings from the
// same category.
func (s *ListingService) Detail(ctx context.Context, slug string) (*models.Listing, []models.Listing, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to get listing %s: %w", slug, err)
	}
	if listing == nil {
		return nil, nil, auctionerrors.ErrListingNotFound
	}

	related, err := s.listings.GetRelated(ctx, listing.CategoryID, slug, 3)
	if err != nil {
		return nil, nil, fmt.Errorf("service: failed to get related listings: %w", err)
	}
	return listing, related, nil
}

// ByAuctioneer returns the auctioneer's own listings, capped when a
// positive quantity is given.
func (s *ListingService) ByAuctioneer(ctx context.Context, auctioneerID uuid.UUID, quantity int) ([]models.Listing, error) {
	listings, err := s.listings.GetByAuctioneer(ctx, auctioneerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctioneer listings: %w", err)
	}
	if quantity > 0 && quantity < len(listings) {
		listings = listings[:quantity]
	}
	return listings, nil
}

// OwnListing returns one of the auctioneer's listings by slug,
// rejecting listings owned by someone else.
func (s *ListingService) OwnListing(ctx context.Context, owner *models.User, slug string) (*models.Listing, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listing %s: %w", slug, err)
	}
	if listing == nil {
		return nil, auctionerrors.ErrListingNotFound
	}
	if listing.AuctioneerID != owner.ID {
		return nil, auctionerrors.ErrNotListingOwner
	}
	return listing, nil
}

// Create validates the input and creates a listing for the auctioneer,
// deriving a unique slug from the name.
func (s *ListingService) Create(ctx context.Context, auctioneer *models.User, input ListingInput) (*models.Listing, error) {
	if !input.ClosingDate.After(time.Now().UTC()) {
		return nil, auctionerrors.ErrClosingDatePast
	}

	categoryID, err := s.resolveCategory(ctx, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	listingSlug, err := s.assignSlug(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		AuctioneerID: auctioneer.ID,
		Auctioneer:   auctioneer,
		Name:         input.Name,
		Slug:         listingSlug,
		Desc:         input.Desc,
		CategoryID:   categoryID,
		Price:        input.Price,
		HighestBid:   decimal.Zero,
		ClosingDate:  input.ClosingDate,
		Active:       true,
		Image:        input.Image,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("service: failed to create listing: %w", err)
	}
	return listing, nil
}

// Update applies a partial update to one of the auctioneer's listings.
// A name change re-derives the slug with the same collision rule.
func (s *ListingService) Update(ctx context.Context, owner *models.User, slug string, patch ListingPatch) (*models.Listing, error) {
	listing, err := s.OwnListing(ctx, owner, slug)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != listing.Name {
		newSlug, err := s.assignSlug(ctx, *patch.Name, listing.Slug)
		if err != nil {
			return nil, err
		}
		listing.Name = *patch.Name
		listing.Slug = newSlug
	}
	if patch.Desc != nil {
		listing.Desc = *patch.Desc
	}
	if patch.CategorySlug != nil {
		categoryID, err := s.resolveCategory(ctx, *patch.CategorySlug)
		if err != nil {
			return nil, err
		}
		listing.CategoryID = categoryID
		listing.Category = nil
	}
	if patch.Price != nil {
		listing.Price = *patch.Price
	}
	if patch.ClosingDate != nil {
		if !patch.ClosingDate.After(time.Now().UTC()) {
			return nil, auctionerrors.ErrClosingDatePast
		}
		listing.ClosingDate = *patch.ClosingDate
	}
	if patch.Active != nil {
		listing.Active = *patch.Active
	}
	if patch.Image != nil {
		listing.Image = *patch.Image
	}

	if err := s.listings.Save(ctx, listing); err != nil {
		return nil, fmt.Errorf("service: failed to update listing %s: %w", slug, err)
	}
	return listing, nil
}

// resolveCategory maps a category slug to its id. Empty or "other"
// means uncategorized.
func (s *ListingService) resolveCategory(ctx context.Context, categorySlug string) (*uuid.UUID, error) {
	if categorySlug == "" || categorySlug == CategoryOther {
		return nil, nil
	}
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get category %s: %w", categorySlug, err)
	}
	if category == nil {
		return nil, auctionerrors.ErrCategoryNotFound
	}
	return &category.ID, nil
}

// assignSlug derives a slug from the name, appending a short random
// suffix until it no longer collides. keep is the listing's current
// slug on update, which never counts as a collision.
func (s *ListingService) assignSlug(ctx context.Context, name, keep string) (string, error) {
	candidate := slug.Make(name)
	for {
		if candidate == keep {
			return candidate, nil
		}
		exists, err := s.listings.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("service: failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = slug.Make(name) + "-" + utils.RandomString(4)
	}
}

// withWatchlistFlags marks each listing with the client's watchlist
// membership in one query.
func (s *ListingService) withWatchlistFlags(ctx context.Context, client Client, listings []models.Listing) ([]ListingInfo, error) {
	entries, err := s.watchlists.GetByClientKey(ctx, client.Key())
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist: %w", err)
	}
	watched := make(map[uuid.UUID]bool, len(entries))
	for _, entry := range entries {
		watched[entry.ListingID] = true
	}

	infos := make([]ListingInfo, 0, len(listings))
	for _, listing := range listings {
		infos = append(infos, ListingInfo{Listing: listing, Watching: watched[listing.ID]})
	}
	return infos, nil
}
