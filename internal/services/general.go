package services

import (
	"context"
	"fmt"

	"auction-api/internal/models"
	"auction-api/internal/repository"
)

// GeneralService serves the ancillary site content: site details,
// subscribers and reviews.
type GeneralService struct {
	siteDetails repository.SiteDetailStore
	subscribers repository.SubscriberStore
	reviews     repository.ReviewStore
}

// NewGeneralService creates a GeneralService.
func NewGeneralService(siteDetails repository.SiteDetailStore, subscribers repository.SubscriberStore, reviews repository.ReviewStore) *GeneralService {
	return &GeneralService{siteDetails: siteDetails, subscribers: subscribers, reviews: reviews}
}

// SiteDetail returns the site details record.
func (s *GeneralService) SiteDetail(ctx context.Context) (*models.SiteDetail, error) {
	detail, err := s.siteDetails.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get site detail: %w", err)
	}
	return detail, nil
}

// Subscribe records a newsletter email, returning the existing record
// when the email is already subscribed.
func (s *GeneralService) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	subscriber, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get subscriber: %w", err)
	}
	if subscriber != nil {
		return subscriber, nil
	}

	subscriber = &models.Subscriber{Email: email}
	if err := s.subscribers.Create(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("service: failed to create subscriber: %w", err)
	}
	return subscriber, nil
}

// Reviews returns up to three published reviews.
func (s *GeneralService) Reviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviews.GetShown(ctx, 3)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get reviews: %w", err)
	}
	return reviews, nil
}
