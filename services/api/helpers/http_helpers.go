package helpers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/services"
	"auction-api/utils"
)

// ClientContextKey is where the identity middleware stores the resolved
// client.
const ClientContextKey = "client"

// HandleBindError responds to request binding failures: validation
// errors get a 422 with per-field messages, malformed payloads a 400.
func HandleBindError(c *gin.Context, handlerName string, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldName(fieldErr)] = fieldMessage(fieldErr)
		}
		utils.JSONFailure(c, http.StatusUnprocessableEntity, "Invalid Entry", fields)
	} else {
		utils.JSONFailure(c, http.StatusBadRequest, "Invalid request payload", nil)
	}
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

func fieldName(fieldErr validator.FieldError) string {
	// struct fields are CamelCase versions of the snake_case json keys
	var out strings.Builder
	for i, r := range fieldErr.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "min":
		return "Value is too short!"
	case "max":
		return "Value is too long!"
	default:
		return "Invalid value!"
	}
}

// MapErrorToHTTP maps domain errors to an HTTP status, message and
// optional per-field data.
func MapErrorToHTTP(err error) (int, string, any) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "Listing does not exist!", nil
	case errors.Is(err, auctionerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "Invalid category", nil
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "Incorrect Email", nil
	case errors.Is(err, auctionerrors.ErrTokenNotFound):
		return http.StatusNotFound, "Refresh token does not exist", nil
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials", nil
	case errors.Is(err, auctionerrors.ErrUnverifiedEmail):
		return http.StatusUnauthorized, "Verify your email first", nil
	case errors.Is(err, auctionerrors.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "Refresh token is invalid or expired", nil
	case errors.Is(err, auctionerrors.ErrInvalidAuthToken):
		return http.StatusUnauthorized, "Auth Token is invalid or expired", nil
	case errors.Is(err, auctionerrors.ErrEmailRegistered):
		return http.StatusUnprocessableEntity, "Invalid Entry", map[string]string{"email": "Email already registered!"}
	case errors.Is(err, auctionerrors.ErrIncorrectOtp):
		return http.StatusBadRequest, "Incorrect Otp", nil
	case errors.Is(err, auctionerrors.ErrExpiredOtp):
		return http.StatusBadRequest, "Expired Otp", nil
	case errors.Is(err, auctionerrors.ErrOwnListingBid):
		return http.StatusForbidden, "You cannot bid your own product!", nil
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusGone, "This auction is closed!", nil
	case errors.Is(err, auctionerrors.ErrAuctionExpired):
		return http.StatusGone, "This auction is expired and closed!", nil
	case errors.Is(err, auctionerrors.ErrBidBelowPrice):
		return http.StatusBadRequest, "Bid amount cannot be less than the bidding price!", nil
	case errors.Is(err, auctionerrors.ErrBidNotHighest):
		return http.StatusBadRequest, "Bid amount must be more than the highest bid!", nil
	case errors.Is(err, auctionerrors.ErrNotListingOwner):
		return http.StatusBadRequest, "This listing doesn't belong to you!", nil
	case errors.Is(err, auctionerrors.ErrClosingDatePast):
		return http.StatusUnprocessableEntity, "Invalid Entry", map[string]string{"closing_date": "Closing date must be beyond the current datetime!"}
	case errors.Is(err, auctionerrors.ErrInvalidQuantity):
		return http.StatusBadRequest, "Quantity must be an integer", nil
	default:
		return http.StatusInternalServerError, "Server Error", nil
	}
}

// RespondError sends the mapped failure envelope for a service error
// and logs it.
func RespondError(c *gin.Context, handlerName string, err error) {
	status, message, data := MapErrorToHTTP(err)
	utils.JSONFailure(c, status, message, data)

	logFields := map[string]any{"handler": handlerName, "error": err.Error()}
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, logFields)
	} else {
		utils.Warn(handlerName+": "+message, logFields)
	}
}

// ParseQuantity reads the optional quantity query parameter. On a
// non-integer value it responds with a failure attributed to the
// calling handler and returns false.
func ParseQuantity(c *gin.Context, handlerName string) (int, bool) {
	raw := c.Query("quantity")
	if raw == "" {
		return 0, true
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		RespondError(c, handlerName, auctionerrors.ErrInvalidQuantity)
		return 0, false
	}
	return quantity, true
}

// GetClient returns the client identity the middleware resolved for
// this request.
func GetClient(c *gin.Context) services.Client {
	value, ok := c.Get(ClientContextKey)
	if !ok {
		return services.Client{}
	}
	client, _ := value.(services.Client)
	return client
}

// LogSuccess standardizes logging of successful operations.
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
