package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction-api/internal/models"
)

// Helper to open a throwaway database for store tests. A single
// connection keeps the in-memory database alive across queries.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.GuestUser{}, &models.Category{},
		&models.Listing{}, &models.Bid{}, &models.WatchList{},
	))
	return db
}

// Helper to create a verified user
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           email,
		Password:        "hashed",
		IsEmailVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Helper to create an open listing
func seedListing(t *testing.T, db *gorm.DB, owner *models.User, slug string, price int64) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		AuctioneerID: owner.ID,
		Name:         slug,
		Slug:         slug,
		Price:        decimal.NewFromInt(price),
		ClosingDate:  time.Now().UTC().Add(24 * time.Hour),
		Active:       true,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

// Test SaveForListing: bid row upsert plus the listing's bid counter
// and highest-bid summary
func TestBidStore_SaveForListing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewBidStore(db)
	listings := NewListingStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	bidder := seedUser(t, db, "first@example.com")
	rival := seedUser(t, db, "second@example.com")
	listing := seedListing(t, db, owner, "walnut-desk", 1000)

	var firstBidID uuid.UUID

	t.Run("first_bid_creates_row", func(t *testing.T) {
		bid, err := store.SaveForListing(ctx, listing, bidder.ID, decimal.NewFromInt(1000))
		require.NoError(t, err)
		require.True(t, bid.Amount.Equal(decimal.NewFromInt(1000)))
		firstBidID = bid.ID

		reloaded, err := listings.GetBySlug(ctx, "walnut-desk")
		require.NoError(t, err)
		require.Equal(t, 1, reloaded.BidsCount)
		require.True(t, reloaded.HighestBid.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("repeat_bid_updates_row_without_counting_again", func(t *testing.T) {
		bid, err := store.SaveForListing(ctx, listing, bidder.ID, decimal.NewFromInt(1200))
		require.NoError(t, err)
		require.Equal(t, firstBidID, bid.ID)

		bids, err := store.GetByListing(ctx, listing.ID, 0)
		require.NoError(t, err)
		require.Len(t, bids, 1)
		require.True(t, bids[0].Amount.Equal(decimal.NewFromInt(1200)))

		reloaded, err := listings.GetBySlug(ctx, "walnut-desk")
		require.NoError(t, err)
		require.Equal(t, 1, reloaded.BidsCount)
		require.True(t, reloaded.HighestBid.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("second_bidder_adds_row", func(t *testing.T) {
		_, err := store.SaveForListing(ctx, listing, rival.ID, decimal.NewFromInt(1500))
		require.NoError(t, err)

		reloaded, err := listings.GetBySlug(ctx, "walnut-desk")
		require.NoError(t, err)
		require.Equal(t, 2, reloaded.BidsCount)
		require.True(t, reloaded.HighestBid.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("summary_never_moves_backwards", func(t *testing.T) {
		bid, err := store.SaveForListing(ctx, listing, bidder.ID, decimal.NewFromInt(1300))
		require.NoError(t, err)
		require.True(t, bid.Amount.Equal(decimal.NewFromInt(1300)))

		reloaded, err := listings.GetBySlug(ctx, "walnut-desk")
		require.NoError(t, err)
		require.Equal(t, 2, reloaded.BidsCount)
		require.True(t, reloaded.HighestBid.Equal(decimal.NewFromInt(1500)))
	})
}

// Test GetByUserAndListing
func TestBidStore_GetByUserAndListing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewBidStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	bidder := seedUser(t, db, "bidder@example.com")
	listing := seedListing(t, db, owner, "brass-lamp", 300)

	bid, err := store.GetByUserAndListing(ctx, bidder.ID, listing.ID)
	require.NoError(t, err)
	require.Nil(t, bid)

	_, err = store.SaveForListing(ctx, listing, bidder.ID, decimal.NewFromInt(350))
	require.NoError(t, err)

	bid, err = store.GetByUserAndListing(ctx, bidder.ID, listing.ID)
	require.NoError(t, err)
	require.NotNil(t, bid)
	require.True(t, bid.Amount.Equal(decimal.NewFromInt(350)))
}

// Test MergeGuestToUser: guest entries move to the user without
// duplicating listings the user already watches
func TestWatchlistStore_MergeGuestToUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewWatchlistStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	user := seedUser(t, db, "watcher@example.com")
	guest := &models.GuestUser{}
	require.NoError(t, db.Create(guest).Error)

	chair := seedListing(t, db, owner, "oak-chair", 500)
	lamp := seedListing(t, db, owner, "desk-lamp", 120)

	uid := user.ID
	require.NoError(t, store.Create(ctx, &models.WatchList{UserID: &uid, ListingID: chair.ID}))
	require.NoError(t, store.Create(ctx, &models.WatchList{GuestUserID: &guest.ID, ListingID: chair.ID}))
	require.NoError(t, store.Create(ctx, &models.WatchList{GuestUserID: &guest.ID, ListingID: lamp.ID}))

	t.Run("merge_rekeys_and_skips_duplicates", func(t *testing.T) {
		require.NoError(t, store.MergeGuestToUser(ctx, guest.ID, user.ID))

		userEntries, err := store.GetByClientKey(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, userEntries, 2)
		watched := []uuid.UUID{userEntries[0].ListingID, userEntries[1].ListingID}
		require.ElementsMatch(t, watched, []uuid.UUID{chair.ID, lamp.ID})

		guestEntries, err := store.GetByClientKey(ctx, guest.ID)
		require.NoError(t, err)
		require.Empty(t, guestEntries)
	})

	t.Run("repeat_merge_is_a_noop", func(t *testing.T) {
		require.NoError(t, store.MergeGuestToUser(ctx, guest.ID, user.ID))

		userEntries, err := store.GetByClientKey(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, userEntries, 2)
	})

	t.Run("guest_without_entries", func(t *testing.T) {
		emptyGuest := &models.GuestUser{}
		require.NoError(t, db.Create(emptyGuest).Error)

		require.NoError(t, store.MergeGuestToUser(ctx, emptyGuest.ID, user.ID))

		userEntries, err := store.GetByClientKey(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, userEntries, 2)
	})
}

// Test watchlist entry lifecycle
func TestWatchlistStore_EntryLifecycle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewWatchlistStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	guest := &models.GuestUser{}
	require.NoError(t, db.Create(guest).Error)
	listing := seedListing(t, db, owner, "silver-spoon", 80)

	entry, err := store.GetByClientAndListing(ctx, guest.ID, listing.ID)
	require.NoError(t, err)
	require.Nil(t, entry)

	require.NoError(t, store.Create(ctx, &models.WatchList{GuestUserID: &guest.ID, ListingID: listing.ID}))

	entry, err = store.GetByClientAndListing(ctx, guest.ID, listing.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)

	require.NoError(t, store.Delete(ctx, entry))

	entry, err = store.GetByClientAndListing(ctx, guest.ID, listing.ID)
	require.NoError(t, err)
	require.Nil(t, entry)
}

// Test slug lookups
func TestListingStore_SlugLookups(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	store := NewListingStore(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	seedListing(t, db, owner, "old-clock", 250)

	listing, err := store.GetBySlug(ctx, "old-clock")
	require.NoError(t, err)
	require.NotNil(t, listing)
	require.Equal(t, owner.ID, listing.AuctioneerID)

	listing, err = store.GetBySlug(ctx, "no-such-slug")
	require.NoError(t, err)
	require.Nil(t, listing)

	exists, err := store.SlugExists(ctx, "old-clock")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = store.SlugExists(ctx, "no-such-slug")
	require.NoError(t, err)
	require.False(t, exists)
}
