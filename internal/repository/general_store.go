package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"auction-api/internal/models"
)

// SiteDetailStore defines persistence for the singleton site details
// record.
type SiteDetailStore interface {
	// Get returns the site details, creating the default record when
	// the table is empty.
	Get(ctx context.Context) (*models.SiteDetail, error)
}

// SubscriberStore defines persistence for newsletter subscribers.
type SubscriberStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, subscriber *models.Subscriber) error
}

// ReviewStore defines persistence for site reviews.
type ReviewStore interface {
	GetShown(ctx context.Context, limit int) ([]models.Review, error)
}

type siteDetailStore struct {
	db *gorm.DB
}

// NewSiteDetailStore creates a gorm-backed SiteDetailStore.
func NewSiteDetailStore(db *gorm.DB) SiteDetailStore {
	return &siteDetailStore{db: db}
}

func (s *siteDetailStore) Get(ctx context.Context) (*models.SiteDetail, error) {
	var detail models.SiteDetail
	err := s.db.WithContext(ctx).First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := models.DefaultSiteDetail()
		if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
			return nil, fmt.Errorf("create site detail: %w", err)
		}
		return created, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get site detail: %w", err)
	}
	return &detail, nil
}

type subscriberStore struct {
	db *gorm.DB
}

// NewSubscriberStore creates a gorm-backed SubscriberStore.
func NewSubscriberStore(db *gorm.DB) SubscriberStore {
	return &subscriberStore{db: db}
}

func (s *subscriberStore) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&subscriber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return &subscriber, nil
}

func (s *subscriberStore) Create(ctx context.Context, subscriber *models.Subscriber) error {
	if err := s.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

type reviewStore struct {
	db *gorm.DB
}

// NewReviewStore creates a gorm-backed ReviewStore.
func NewReviewStore(db *gorm.DB) ReviewStore {
	return &reviewStore{db: db}
}

func (s *reviewStore) GetShown(ctx context.Context, limit int) ([]models.Review, error) {
	query := s.db.WithContext(ctx).
		Preload("Reviewer").
		Where("show = ?", true).
		Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("get shown reviews: %w", err)
	}
	return reviews, nil
}
