package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auction-api/internal/models"
	"auction-api/internal/services"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

// SessionCookie carries a guest identity across requests for browsers.
const SessionCookie = "session_key"

// GuestHeader carries a guest identity for non-browser clients.
const GuestHeader = "GuestUserId"

type AuthServiceInterface interface {
	Register(ctx context.Context, input services.RegisterInput) (*models.User, error)
	VerifyEmail(ctx context.Context, email string, code int) (bool, error)
	ResendVerification(ctx context.Context, email string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	SetNewPassword(ctx context.Context, email string, code int, password string) error
	Login(ctx context.Context, email, password string, guestID uuid.UUID) (*models.AuthToken, error)
	Refresh(ctx context.Context, refresh string) (*models.AuthToken, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	UpdateProfile(ctx context.Context, user *models.User, firstName, lastName, avatar string) (*models.User, error)
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterHandler handles POST /api/v2/auth/register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Registration successful", gin.H{"email": user.Email})
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"email": user.Email})
}

// VerifyEmailHandler handles POST /api/v2/auth/verify-email
func (h *AuthHandler) VerifyEmailHandler(c *gin.Context) {
	var req helpers.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "VerifyEmailHandler", err)
		return
	}

	alreadyVerified, err := h.service.VerifyEmail(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		helpers.RespondError(c, "VerifyEmailHandler", err)
		return
	}
	if alreadyVerified {
		utils.JSONSuccess(c, http.StatusOK, "Email already verified", nil)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Account verification successful", nil)
	helpers.LogSuccess("VerifyEmailHandler", "email verified", map[string]any{"email": req.Email})
}

// ResendVerificationEmailHandler handles POST /api/v2/auth/resend-verification-email
func (h *AuthHandler) ResendVerificationEmailHandler(c *gin.Context) {
	var req helpers.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ResendVerificationEmailHandler", err)
		return
	}

	alreadyVerified, err := h.service.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		helpers.RespondError(c, "ResendVerificationEmailHandler", err)
		return
	}
	if alreadyVerified {
		utils.JSONSuccess(c, http.StatusOK, "Email already verified", nil)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Verification email sent", nil)
}

// RequestPasswordResetOtpHandler handles POST /api/v2/auth/request-password-reset-otp
func (h *AuthHandler) RequestPasswordResetOtpHandler(c *gin.Context) {
	var req helpers.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RequestPasswordResetOtpHandler", err)
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		helpers.RespondError(c, "RequestPasswordResetOtpHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Password otp sent", nil)
}

// SetNewPasswordHandler handles POST /api/v2/auth/set-new-password
func (h *AuthHandler) SetNewPasswordHandler(c *gin.Context) {
	var req helpers.SetNewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetNewPasswordHandler", err)
		return
	}

	if err := h.service.SetNewPassword(c.Request.Context(), req.Email, req.Otp, req.Password); err != nil {
		helpers.RespondError(c, "SetNewPasswordHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Password reset successful", nil)
	helpers.LogSuccess("SetNewPasswordHandler", "password reset", map[string]any{"email": req.Email})
}

// LoginHandler handles POST /api/v2/auth/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password, guestID(c))
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err)
		return
	}

	// guest identity is absorbed into the account on login
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)

	utils.JSONSuccess(c, http.StatusCreated, "Login successful", helpers.TokensResponse{
		Access:  token.Access,
		Refresh: token.Refresh,
	})
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{"email": req.Email})
}

// RefreshTokensHandler handles POST /api/v2/auth/refresh
func (h *AuthHandler) RefreshTokensHandler(c *gin.Context) {
	var req helpers.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RefreshTokensHandler", err)
		return
	}

	token, err := h.service.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		helpers.RespondError(c, "RefreshTokensHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Tokens refresh successful", helpers.TokensResponse{
		Access:  token.Access,
		Refresh: token.Refresh,
	})
}

// LogoutHandler handles GET /api/v2/auth/logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	client := helpers.GetClient(c)
	if err := h.service.Logout(c.Request.Context(), client.User.ID); err != nil {
		helpers.RespondError(c, "LogoutHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Logout successful", nil)
	helpers.LogSuccess("LogoutHandler", "logout successful", map[string]any{"user_id": client.User.ID})
}

// guestID extracts the guest identity from the request, if any.
func guestID(c *gin.Context) uuid.UUID {
	raw := c.GetHeader(GuestHeader)
	if raw == "" {
		raw, _ = c.Cookie(SessionCookie)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
