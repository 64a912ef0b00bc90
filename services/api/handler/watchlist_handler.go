package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-api/internal/services"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

type WatchlistServiceInterface interface {
	Toggle(ctx context.Context, client services.Client, slug string) (bool, error)
	Listings(ctx context.Context, client services.Client) ([]services.ListingInfo, error)
}

type WatchlistHandler struct {
	service WatchlistServiceInterface
}

func NewWatchlistHandler(service WatchlistServiceInterface) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// ListWatchlistHandler handles GET /api/v2/listings/watchlist
func (h *WatchlistHandler) ListWatchlistHandler(c *gin.Context) {
	infos, err := h.service.Listings(c.Request.Context(), helpers.GetClient(c))
	if err != nil {
		helpers.RespondError(c, "ListWatchlistHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Watchlists Listings fetched", helpers.NewListingDataList(infos))
}

// ToggleWatchlistHandler handles POST /api/v2/listings/watchlist
func (h *WatchlistHandler) ToggleWatchlistHandler(c *gin.Context) {
	var req helpers.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ToggleWatchlistHandler", err)
		return
	}

	client := helpers.GetClient(c)
	added, err := h.service.Toggle(c.Request.Context(), client, req.Slug)
	if err != nil {
		helpers.RespondError(c, "ToggleWatchlistHandler", err)
		return
	}

	// guests get their id echoed back so they can persist it
	var guestID any
	if !client.Authenticated() {
		guestID = client.GuestID
	}
	data := gin.H{"guestuser_id": guestID}

	if added {
		utils.JSONSuccess(c, http.StatusCreated, "Listing added to user watchlist", data)
	} else {
		utils.JSONSuccess(c, http.StatusOK, "Listing removed from user watchlist", data)
	}
	helpers.LogSuccess("ToggleWatchlistHandler", "watchlist toggled", map[string]any{
		"slug":  req.Slug,
		"added": added,
	})
}
