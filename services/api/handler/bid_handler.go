package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction-api/internal/models"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, bidder *models.User, slug string, amount decimal.Decimal) (*models.Bid, error)
	ListBids(ctx context.Context, slug string, limit int) (*models.Listing, []models.Bid, error)
	ListOwnListingBids(ctx context.Context, owner *models.User, slug string) (*models.Listing, []models.Bid, error)
}

type BidHandler struct {
	service BiddingServiceInterface
}

func NewBidHandler(service BiddingServiceInterface) *BidHandler {
	return &BidHandler{service: service}
}

// ListBidsHandler handles GET /api/v2/listings/detail/:slug/bids
func (h *BidHandler) ListBidsHandler(c *gin.Context) {
	listing, bids, err := h.service.ListBids(c.Request.Context(), c.Param("slug"), 3)
	if err != nil {
		helpers.RespondError(c, "ListBidsHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Listing Bids fetched", helpers.ListingBidsData{
		Listing: listing.Name,
		Bids:    helpers.NewBidDataList(bids),
	})
}

// PlaceBidHandler handles POST /api/v2/listings/detail/:slug/bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	client := helpers.GetClient(c)
	slug := c.Param("slug")

	bid, err := h.service.PlaceBid(c.Request.Context(), client.User, slug, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Bid added to listing", helpers.NewBidData(*bid))
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"listing": slug,
		"user_id": client.User.ID,
		"amount":  req.Amount,
	})
}
