package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/services"
	"auction-api/services/api/helpers"
)

// Test ToggleWatchlistHandler
func TestToggleWatchlistHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockWatchlistServiceInterface(ctrl)
	handler := NewWatchlistHandler(mockService)

	user := &models.User{Base: models.Base{ID: uuid.New()}, FirstName: "Jane", LastName: "Doe"}
	guestID := uuid.New()

	// Two routers, one per resolved identity
	gin.SetMode(gin.TestMode)
	userRouter := gin.New()
	userRouter.POST("/listings/watchlist", func(c *gin.Context) {
		c.Set(helpers.ClientContextKey, services.Client{User: user})
	}, handler.ToggleWatchlistHandler)

	guestRouter := gin.New()
	guestRouter.POST("/listings/watchlist", func(c *gin.Context) {
		c.Set(helpers.ClientContextKey, services.Client{GuestID: guestID})
	}, handler.ToggleWatchlistHandler)

	tests := []struct {
		name           string
		router         *gin.Engine
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "user_adds_listing",
			router:      userRouter,
			requestBody: gin.H{"slug": "rare-vase"},
			mockSetup: func() {
				mockService.EXPECT().
					Toggle(gomock.Any(), services.Client{User: user}, "rare-vase").
					Return(true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Listing added to user watchlist",
			validateData: func(t *testing.T, data map[string]any) {
				// authenticated clients get no guest id back
				require.Nil(t, data["guestuser_id"])
			},
		},
		{
			name:        "user_removes_listing",
			router:      userRouter,
			requestBody: gin.H{"slug": "old-clock"},
			mockSetup: func() {
				mockService.EXPECT().
					Toggle(gomock.Any(), services.Client{User: user}, "old-clock").
					Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Listing removed from user watchlist",
		},
		{
			name:        "guest_gets_id_echoed",
			router:      guestRouter,
			requestBody: gin.H{"slug": "rare-vase"},
			mockSetup: func() {
				mockService.EXPECT().
					Toggle(gomock.Any(), services.Client{GuestID: guestID}, "rare-vase").
					Return(true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Listing added to user watchlist",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, guestID.String(), data["guestuser_id"])
			},
		},
		{
			name:           "missing_slug",
			router:         userRouter,
			requestBody:    gin.H{},
			mockSetup:      func() {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Invalid Entry",
		},
		{
			name:           "invalid_json",
			router:         userRouter,
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request payload",
		},
		{
			name:        "unknown_listing",
			router:      userRouter,
			requestBody: gin.H{"slug": "ghost-vase"},
			mockSetup: func() {
				mockService.EXPECT().
					Toggle(gomock.Any(), services.Client{User: user}, "ghost-vase").
					Return(false, auctionerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Listing does not exist!",
		},
		{
			name:        "service_generic_error",
			router:      userRouter,
			requestBody: gin.H{"slug": "broken-vase"},
			mockSetup: func() {
				mockService.EXPECT().
					Toggle(gomock.Any(), services.Client{User: user}, "broken-vase").
					Return(false, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server Error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var reqBody []byte
			var err error
			switch v := tc.requestBody.(type) {
			case string:
				reqBody = []byte(v)
			default:
				reqBody, err = json.Marshal(v)
				require.NoError(t, err)
			}

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/listings/watchlist", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			tc.router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err = json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code < http.StatusBadRequest {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test ListWatchlistHandler
func TestListWatchlistHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockWatchlistServiceInterface(ctrl)
	handler := NewWatchlistHandler(mockService)

	guestID := uuid.New()
	client := services.Client{GuestID: guestID}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/listings/watchlist", func(c *gin.Context) {
		c.Set(helpers.ClientContextKey, client)
	}, handler.ListWatchlistHandler)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data []map[string]any)
	}{
		{
			name: "watched_listings_returned",
			mockSetup: func() {
				infos := []services.ListingInfo{
					{
						Listing: models.Listing{
							Base:        models.Base{ID: uuid.New()},
							Name:        "Rare Vase",
							Slug:        "rare-vase",
							Price:       decimal.NewFromInt(100),
							ClosingDate: time.Now().UTC().Add(24 * time.Hour),
							Active:      true,
						},
						Watching: true,
					},
				}
				mockService.EXPECT().Listings(gomock.Any(), client).Return(infos, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Watchlists Listings fetched",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 1)
				require.Equal(t, "rare-vase", data[0]["slug"])
				require.Equal(t, true, data[0]["watchlist"])
			},
		},
		{
			name: "empty_watchlist",
			mockSetup: func() {
				mockService.EXPECT().Listings(gomock.Any(), client).Return([]services.ListingInfo{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Watchlists Listings fetched",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 0)
			},
		},
		{
			name: "service_generic_error",
			mockSetup: func() {
				mockService.EXPECT().Listings(gomock.Any(), client).Return(nil, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server Error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/listings/watchlist", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusOK {
				dataRaw := resp["data"].([]any)
				data := make([]map[string]any, len(dataRaw))
				for i, v := range dataRaw {
					data[i] = v.(map[string]any)
				}
				tc.validateData(t, data)
			}
		})
	}
}
