package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction-api/internal/models"
)

// CategoryStore defines persistence for listing categories.
type CategoryStore interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// ListingStore defines persistence for auction listings. Lookups return
// (nil, nil) when no row matches.
type ListingStore interface {
	GetAll(ctx context.Context) ([]models.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*models.Listing, error)
	GetByAuctioneer(ctx context.Context, auctioneerID uuid.UUID) ([]models.Listing, error)
	// GetByCategory returns listings in a category; a nil id means
	// uncategorized listings.
	GetByCategory(ctx context.Context, categoryID *uuid.UUID) ([]models.Listing, error)
	GetRelated(ctx context.Context, categoryID *uuid.UUID, excludeSlug string, limit int) ([]models.Listing, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, listing *models.Listing) error
	Save(ctx context.Context, listing *models.Listing) error
}

// BidStore defines persistence for bids.
type BidStore interface {
	GetByListing(ctx context.Context, listingID uuid.UUID, limit int) ([]models.Bid, error)
	GetByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Bid, error)
	// SaveForListing upserts the user's bid on a listing and maintains
	// the listing's bid counter and highest-bid summary in one
	// transaction.
	SaveForListing(ctx context.Context, listing *models.Listing, userID uuid.UUID, amount decimal.Decimal) (*models.Bid, error)
}

// WatchlistStore defines persistence for watchlist entries. The client
// key is either a user id or a guest id.
type WatchlistStore interface {
	GetByClientKey(ctx context.Context, key uuid.UUID) ([]models.WatchList, error)
	GetByClientAndListing(ctx context.Context, key, listingID uuid.UUID) (*models.WatchList, error)
	Create(ctx context.Context, entry *models.WatchList) error
	Delete(ctx context.Context, entry *models.WatchList) error
	// MergeGuestToUser re-keys the guest's entries to the user,
	// skipping listings the user already watches, and removes the
	// guest-scoped rows.
	MergeGuestToUser(ctx context.Context, guestID, userID uuid.UUID) error
}

type categoryStore struct {
	db *gorm.DB
}

// NewCategoryStore creates a gorm-backed CategoryStore.
func NewCategoryStore(db *gorm.DB) CategoryStore {
	return &categoryStore{db: db}
}

func (s *categoryStore) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}

func (s *categoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return &category, nil
}

type listingStore struct {
	db *gorm.DB
}

// NewListingStore creates a gorm-backed ListingStore.
func NewListingStore(db *gorm.DB) ListingStore {
	return &listingStore{db: db}
}

func (s *listingStore) GetAll(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Preload("Auctioneer").Preload("Category").
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("get listings: %w", err)
	}
	return listings, nil
}

func (s *listingStore) GetBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).
		Preload("Auctioneer").Preload("Category").
		Where("slug = ?", slug).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get listing by slug: %w", err)
	}
	return &listing, nil
}

func (s *listingStore) GetByAuctioneer(ctx context.Context, auctioneerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Preload("Auctioneer").Preload("Category").
		Where("auctioneer_id = ?", auctioneerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("get listings by auctioneer: %w", err)
	}
	return listings, nil
}

func (s *listingStore) GetByCategory(ctx context.Context, categoryID *uuid.UUID) ([]models.Listing, error) {
	query := s.db.WithContext(ctx).Preload("Auctioneer").Preload("Category")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("get listings by category: %w", err)
	}
	return listings, nil
}

func (s *listingStore) GetRelated(ctx context.Context, categoryID *uuid.UUID, excludeSlug string, limit int) ([]models.Listing, error) {
	query := s.db.WithContext(ctx).
		Preload("Auctioneer").Preload("Category").
		Where("slug <> ?", excludeSlug)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}

	var listings []models.Listing
	if err := query.Order("created_at DESC").Limit(limit).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("get related listings: %w", err)
	}
	return listings, nil
}

func (s *listingStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Listing{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check listing slug: %w", err)
	}
	return count > 0, nil
}

func (s *listingStore) Create(ctx context.Context, listing *models.Listing) error {
	if err := s.db.WithContext(ctx).Create(listing).Error; err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (s *listingStore) Save(ctx context.Context, listing *models.Listing) error {
	if err := s.db.WithContext(ctx).Save(listing).Error; err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	return nil
}

type bidStore struct {
	db *gorm.DB
}

// NewBidStore creates a gorm-backed BidStore.
func NewBidStore(db *gorm.DB) BidStore {
	return &bidStore{db: db}
}

func (s *bidStore) GetByListing(ctx context.Context, listingID uuid.UUID, limit int) ([]models.Bid, error) {
	query := s.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var bids []models.Bid
	if err := query.Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("get bids by listing: %w", err)
	}
	return bids, nil
}

func (s *bidStore) GetByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bid by user and listing: %w", err)
	}
	return &bid, nil
}

func (s *bidStore) SaveForListing(ctx context.Context, listing *models.Listing, userID uuid.UUID, amount decimal.Decimal) (*models.Bid, error) {
	var bid *models.Bid
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Bid
		err := tx.Where("user_id = ? AND listing_id = ?", userID, listing.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Amount = amount
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			bid = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := models.Bid{UserID: userID, ListingID: listing.ID, Amount: amount}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Listing{}).
				Where("id = ?", listing.ID).
				UpdateColumn("bids_count", gorm.Expr("bids_count + 1")).Error; err != nil {
				return err
			}
			bid = &created
		default:
			return err
		}

		// Conditional update so concurrent bids can never move the
		// summary backwards.
		return tx.Model(&models.Listing{}).
			Where("id = ? AND highest_bid < ?", listing.ID, amount).
			UpdateColumn("highest_bid", amount).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save bid for listing %s: %w", listing.Slug, err)
	}
	return bid, nil
}

type watchlistStore struct {
	db *gorm.DB
}

// NewWatchlistStore creates a gorm-backed WatchlistStore.
func NewWatchlistStore(db *gorm.DB) WatchlistStore {
	return &watchlistStore{db: db}
}

func (s *watchlistStore) GetByClientKey(ctx context.Context, key uuid.UUID) ([]models.WatchList, error) {
	var entries []models.WatchList
	err := s.db.WithContext(ctx).
		Preload("Listing").Preload("Listing.Auctioneer").Preload("Listing.Category").
		Where("user_id = ? OR guest_user_id = ?", key, key).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("get watchlist by client: %w", err)
	}
	return entries, nil
}

func (s *watchlistStore) GetByClientAndListing(ctx context.Context, key, listingID uuid.UUID) (*models.WatchList, error) {
	var entry models.WatchList
	err := s.db.WithContext(ctx).
		Where("(user_id = ? OR guest_user_id = ?) AND listing_id = ?", key, key, listingID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get watchlist entry: %w", err)
	}
	return &entry, nil
}

func (s *watchlistStore) Create(ctx context.Context, entry *models.WatchList) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create watchlist entry: %w", err)
	}
	return nil
}

func (s *watchlistStore) Delete(ctx context.Context, entry *models.WatchList) error {
	if err := s.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	return nil
}

func (s *watchlistStore) MergeGuestToUser(ctx context.Context, guestID, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guestEntries []models.WatchList
		if err := tx.Where("guest_user_id = ?", guestID).Find(&guestEntries).Error; err != nil {
			return err
		}
		if len(guestEntries) == 0 {
			return nil
		}

		rekeyed := make([]models.WatchList, 0, len(guestEntries))
		for _, entry := range guestEntries {
			uid := userID
			rekeyed = append(rekeyed, models.WatchList{UserID: &uid, ListingID: entry.ListingID})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rekeyed).Error; err != nil {
			return err
		}

		return tx.Where("guest_user_id = ?", guestID).Delete(&models.WatchList{}).Error
	})
	if err != nil {
		return fmt.Errorf("merge guest watchlist: %w", err)
	}
	return nil
}
