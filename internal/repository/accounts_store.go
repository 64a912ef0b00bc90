package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"auction-api/internal/models"
	"auction-api/utils"
)

// UserStore defines persistence for user accounts. Lookups return
// (nil, nil) when no row matches.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

// OtpStore defines persistence for one-time codes, one active per user.
type OtpStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Otp, error)
	// Replace issues a fresh code for the user, superseding any
	// existing one.
	Replace(ctx context.Context, userID uuid.UUID) (*models.Otp, error)
	Delete(ctx context.Context, otp *models.Otp) error
}

// TokenStore defines persistence for issued token pairs, one row per
// user.
type TokenStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error)
	GetByRefresh(ctx context.Context, refresh string) (*models.AuthToken, error)
	// Replace deletes the user's existing row, if any, and inserts the
	// given one.
	Replace(ctx context.Context, token *models.AuthToken) error
	Save(ctx context.Context, token *models.AuthToken) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// GuestStore defines persistence for guest identities.
type GuestStore interface {
	// GetOrCreate resolves a raw guest id carried by the request,
	// creating a fresh guest when the id is absent or unknown.
	GetOrCreate(ctx context.Context, rawID string) (*models.GuestUser, error)
}

type userStore struct {
	db *gorm.DB
}

// NewUserStore creates a gorm-backed UserStore.
func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userStore) Save(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

type otpStore struct {
	db *gorm.DB
}

// NewOtpStore creates a gorm-backed OtpStore.
func NewOtpStore(db *gorm.DB) OtpStore {
	return &otpStore{db: db}
}

func (s *otpStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Otp, error) {
	var otp models.Otp
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get otp by user id: %w", err)
	}
	return &otp, nil
}

func (s *otpStore) Replace(ctx context.Context, userID uuid.UUID) (*models.Otp, error) {
	otp, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		otp = &models.Otp{UserID: userID}
	}
	otp.Code = utils.RandomOtpCode()
	if err := s.db.WithContext(ctx).Save(otp).Error; err != nil {
		return nil, fmt.Errorf("replace otp: %w", err)
	}
	return otp, nil
}

func (s *otpStore) Delete(ctx context.Context, otp *models.Otp) error {
	if err := s.db.WithContext(ctx).Delete(otp).Error; err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

type tokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a gorm-backed TokenStore.
func NewTokenStore(db *gorm.DB) TokenStore {
	return &tokenStore{db: db}
}

func (s *tokenStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	var token models.AuthToken
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token by user id: %w", err)
	}
	return &token, nil
}

func (s *tokenStore) GetByRefresh(ctx context.Context, refresh string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := s.db.WithContext(ctx).Where("refresh = ?", refresh).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token by refresh: %w", err)
	}
	return &token, nil
}

func (s *tokenStore) Replace(ctx context.Context, token *models.AuthToken) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
	if err != nil {
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}

func (s *tokenStore) Save(ctx context.Context, token *models.AuthToken) error {
	if err := s.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *tokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return fmt.Errorf("delete token by user id: %w", err)
	}
	return nil
}

type guestStore struct {
	db *gorm.DB
}

// NewGuestStore creates a gorm-backed GuestStore.
func NewGuestStore(db *gorm.DB) GuestStore {
	return &guestStore{db: db}
}

func (s *guestStore) GetOrCreate(ctx context.Context, rawID string) (*models.GuestUser, error) {
	if id, err := uuid.Parse(rawID); err == nil {
		var guest models.GuestUser
		err := s.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
		if err == nil {
			return &guest, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get guest user: %w", err)
		}
	}

	guest := &models.GuestUser{}
	if err := s.db.WithContext(ctx).Create(guest).Error; err != nil {
		return nil, fmt.Errorf("create guest user: %w", err)
	}
	return guest, nil
}
