package auctionerrors

import "errors"

// Not-found errors
var (
	ErrListingNotFound  = errors.New("listing does not exist")
	ErrCategoryNotFound = errors.New("invalid category")
	ErrUserNotFound     = errors.New("incorrect email")
	ErrTokenNotFound    = errors.New("refresh token does not exist")
)

// Authentication errors
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnverifiedEmail     = errors.New("email not verified")
	ErrInvalidAuthToken    = errors.New("auth token is invalid or expired")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")
)

// Registration / verification errors
var (
	ErrEmailRegistered = errors.New("email already registered")
	ErrIncorrectOtp    = errors.New("incorrect otp")
	ErrExpiredOtp      = errors.New("expired otp")
)

// Bidding and listing rule errors
var (
	ErrOwnListingBid   = errors.New("cannot bid on own listing")
	ErrAuctionClosed   = errors.New("auction is closed")
	ErrAuctionExpired  = errors.New("auction is expired and closed")
	ErrBidBelowPrice   = errors.New("bid amount below the bidding price")
	ErrBidNotHighest   = errors.New("bid amount not above the highest bid")
	ErrNotListingOwner = errors.New("listing belongs to another auctioneer")
	ErrInvalidQuantity = errors.New("quantity must be an integer")
	ErrClosingDatePast = errors.New("closing date must be beyond the current datetime")
)
