package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/repository"
	"auction-api/utils"
)

// RegisterInput carries the fields for creating an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService implements registration, email verification, login with
// token issuance and guest watchlist merging, token refresh and logout.
type AuthService struct {
	users      repository.UserStore
	otps       repository.OtpStore
	tokens     repository.TokenStore
	watchlists repository.WatchlistStore
	tokenMgr   *utils.TokenManager
	otpTTL     time.Duration
}

// NewAuthService creates an AuthService. otpTTL is the validity window
// of issued one-time codes.
func NewAuthService(
	users repository.UserStore,
	otps repository.OtpStore,
	tokens repository.TokenStore,
	watchlists repository.WatchlistStore,
	tokenMgr *utils.TokenManager,
	otpTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		otps:       otps,
		tokens:     tokens,
		watchlists: watchlists,
		tokenMgr:   tokenMgr,
		otpTTL:     otpTTL,
	}
}

// Register creates an unverified account and issues its verification
// code. A duplicate email is rejected.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("service: failed to check email: %w", err)
	}
	if existing != nil {
		return nil, auctionerrors.ErrEmailRegistered
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	if err := s.issueOtp(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmail consumes the user's one-time code and marks the email
// verified. It reports true when the email was already verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, code int) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("service: failed to get user: %w", err)
	}
	if user == nil {
		return false, auctionerrors.ErrUserNotFound
	}
	if user.IsEmailVerified {
		return true, nil
	}

	otp, err := s.checkOtp(ctx, user, code)
	if err != nil {
		return false, err
	}

	user.IsEmailVerified = true
	if err := s.users.Save(ctx, user); err != nil {
		return false, fmt.Errorf("service: failed to mark email verified: %w", err)
	}
	if err := s.otps.Delete(ctx, otp); err != nil {
		return false, fmt.Errorf("service: failed to delete otp: %w", err)
	}
	return false, nil
}

// ResendVerification issues a fresh verification code. It reports true
// when the email was already verified and no code was sent.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("service: failed to get user: %w", err)
	}
	if user == nil {
		return false, auctionerrors.ErrUserNotFound
	}
	if user.IsEmailVerified {
		return true, nil
	}
	return false, s.issueOtp(ctx, user)
}

// RequestPasswordReset issues a password reset code to a known email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("service: failed to get user: %w", err)
	}
	if user == nil {
		return auctionerrors.ErrUserNotFound
	}
	return s.issueOtp(ctx, user)
}

// SetNewPassword consumes a password reset code and stores the new
// password.
func (s *AuthService) SetNewPassword(ctx context.Context, email string, code int, password string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("service: failed to get user: %w", err)
	}
	if user == nil {
		return auctionerrors.ErrUserNotFound
	}

	otp, err := s.checkOtp(ctx, user, code)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("service: failed to hash password: %w", err)
	}
	user.Password = hash
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("service: failed to save password: %w", err)
	}
	if err := s.otps.Delete(ctx, otp); err != nil {
		return fmt.Errorf("service: failed to delete otp: %w", err)
	}
	return nil
}

// Login checks credentials, replaces the user's stored token pair and
// merges any guest watchlist entries into the user's watchlist. The
// guest identity is discarded afterwards.
func (s *AuthService) Login(ctx context.Context, email, password string, guestID uuid.UUID) (*models.AuthToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get user: %w", err)
	}
	if user == nil || !utils.CheckPassword(password, user.Password) {
		return nil, auctionerrors.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, auctionerrors.ErrUnverifiedEmail
	}

	token, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if guestID != uuid.Nil {
		if err := s.watchlists.MergeGuestToUser(ctx, guestID, user.ID); err != nil {
			return nil, fmt.Errorf("service: failed to merge guest watchlist: %w", err)
		}
	}
	return token, nil
}

// Refresh rotates the token pair tied to a stored refresh token.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (*models.AuthToken, error) {
	token, err := s.tokens.GetByRefresh(ctx, refresh)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get token: %w", err)
	}
	if token == nil {
		return nil, auctionerrors.ErrTokenNotFound
	}
	if !s.tokenMgr.VerifyRefreshToken(refresh) {
		return nil, auctionerrors.ErrInvalidRefreshToken
	}

	access, err := s.tokenMgr.CreateAccessToken(token.UserID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create access token: %w", err)
	}
	newRefresh, err := s.tokenMgr.CreateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("service: failed to create refresh token: %w", err)
	}

	token.Access = access
	token.Refresh = newRefresh
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("service: failed to save token: %w", err)
	}
	return token, nil
}

// Logout deletes the user's stored token pair, revoking the access
// token.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("service: failed to delete token: %w", err)
	}
	return nil
}

// UpdateProfile updates the user's names and avatar reference.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, firstName, lastName, avatar string) (*models.User, error) {
	user.FirstName = firstName
	user.LastName = lastName
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service: failed to update profile: %w", err)
	}
	return user, nil
}

// issueTokens replaces the user's stored pair with freshly signed
// tokens.
func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*models.AuthToken, error) {
	access, err := s.tokenMgr.CreateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create access token: %w", err)
	}
	refresh, err := s.tokenMgr.CreateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("service: failed to create refresh token: %w", err)
	}

	token := &models.AuthToken{UserID: userID, Access: access, Refresh: refresh}
	if err := s.tokens.Replace(ctx, token); err != nil {
		return nil, fmt.Errorf("service: failed to store token: %w", err)
	}
	return token, nil
}

// issueOtp replaces the user's one-time code. Mail delivery is handled
// out of band; the code is logged for operator visibility.
func (s *AuthService) issueOtp(ctx context.Context, user *models.User) error {
	otp, err := s.otps.Replace(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("service: failed to issue otp: %w", err)
	}
	utils.Info("verification otp issued", map[string]any{
		"email": user.Email,
		"code":  otp.Code,
	})
	return nil
}

// checkOtp validates the user's one-time code against the stored one
// and its expiry window.
func (s *AuthService) checkOtp(ctx context.Context, user *models.User, code int) (*models.Otp, error) {
	otp, err := s.otps.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get otp: %w", err)
	}
	if otp == nil || otp.Code != code {
		return nil, auctionerrors.ErrIncorrectOtp
	}
	if otp.Expired(s.otpTTL) {
		return nil, auctionerrors.ErrExpiredOtp
	}
	return otp, nil
}
