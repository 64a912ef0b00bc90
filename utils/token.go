package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the payload carried by access tokens.
type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the HS256 access/refresh token pair.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager with TTLs given in minutes.
func NewTokenManager(secret string, accessMinutes, refreshMinutes int) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshMinutes) * time.Minute,
	}
}

// CreateAccessToken signs an access token carrying the user's id.
func (t *TokenManager) CreateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := &AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// CreateRefreshToken signs an opaque refresh token. It carries no user
// data; the stored token record ties it to a user.
func (t *TokenManager) CreateRefreshToken() (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"data": RandomString(10),
		"exp":  jwt.NewNumericDate(now.Add(t.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// DecodeAccessToken verifies an access token and returns the user id it
// carries.
func (t *TokenManager) DecodeAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, t.keyFunc)
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid access token")
	}
	return claims.UserID, nil
}

// VerifyRefreshToken reports whether a refresh token is well-formed,
// correctly signed and unexpired.
func (t *TokenManager) VerifyRefreshToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, t.keyFunc)
	return err == nil && token.Valid
}

func (t *TokenManager) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}
