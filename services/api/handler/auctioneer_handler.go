package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/services"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

// AuctioneerHandler serves the owner-scoped profile and listing
// management routes.
type AuctioneerHandler struct {
	listings ListingServiceInterface
	bidding  BiddingServiceInterface
	accounts AuthServiceInterface
}

func NewAuctioneerHandler(listings ListingServiceInterface, bidding BiddingServiceInterface, accounts AuthServiceInterface) *AuctioneerHandler {
	return &AuctioneerHandler{listings: listings, bidding: bidding, accounts: accounts}
}

// GetProfileHandler handles GET /api/v2/auctioneer
func (h *AuctioneerHandler) GetProfileHandler(c *gin.Context) {
	user := helpers.GetClient(c).User
	utils.JSONSuccess(c, http.StatusOK, "User details fetched!", helpers.ProfileData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	})
}

// UpdateProfileHandler handles PUT /api/v2/auctioneer
func (h *AuctioneerHandler) UpdateProfileHandler(c *gin.Context) {
	var req helpers.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), helpers.GetClient(c).User, req.FirstName, req.LastName, req.Avatar)
	if err != nil {
		helpers.RespondError(c, "UpdateProfileHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "User updated!", helpers.ProfileData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	})
}

// OwnListingsHandler handles GET /api/v2/auctioneer/listings
func (h *AuctioneerHandler) OwnListingsHandler(c *gin.Context) {
	quantity, ok := helpers.ParseQuantity(c, "OwnListingsHandler")
	if !ok {
		return
	}

	listings, err := h.listings.ByAuctioneer(c.Request.Context(), helpers.GetClient(c).User.ID, quantity)
	if err != nil {
		helpers.RespondError(c, "OwnListingsHandler", err)
		return
	}

	data := make([]helpers.ListingData, 0, len(listings))
	for _, listing := range listings {
		data = append(data, helpers.NewListingData(listing, false))
	}
	utils.JSONSuccess(c, http.StatusOK, "Auctioneer Listings fetched", data)
}

// OwnListingDetailHandler handles GET /api/v2/auctioneer/listings/:slug
func (h *AuctioneerHandler) OwnListingDetailHandler(c *gin.Context) {
	listing, err := h.listings.OwnListing(c.Request.Context(), helpers.GetClient(c).User, c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, "OwnListingDetailHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Listing details fetched", helpers.NewListingData(*listing, false))
}

// UpdateListingHandler handles PATCH /api/v2/auctioneer/listings/:slug
func (h *AuctioneerHandler) UpdateListingHandler(c *gin.Context) {
	var req helpers.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateListingHandler", err)
		return
	}

	slug := c.Param("slug")
	listing, err := h.listings.Update(c.Request.Context(), helpers.GetClient(c).User, slug, services.ListingPatch{
		Name:         req.Name,
		Desc:         req.Desc,
		CategorySlug: req.Category,
		Price:        req.Price,
		ClosingDate:  req.ClosingDate,
		Active:       req.Active,
		Image:        req.Image,
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrCategoryNotFound) {
			utils.JSONFailure(c, http.StatusUnprocessableEntity, "Invalid Entry", map[string]string{"category": "Invalid category"})
			return
		}
		helpers.RespondError(c, "UpdateListingHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Listing updated successfully", helpers.NewListingData(*listing, false))
	helpers.LogSuccess("UpdateListingHandler", "listing updated", map[string]any{"slug": listing.Slug})
}

// OwnListingBidsHandler handles GET /api/v2/auctioneer/listings/:slug/bids
func (h *AuctioneerHandler) OwnListingBidsHandler(c *gin.Context) {
	listing, bids, err := h.bidding.ListOwnListingBids(c.Request.Context(), helpers.GetClient(c).User, c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, "OwnListingBidsHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Listing Bids fetched", helpers.ListingBidsData{
		Listing: listing.Name,
		Bids:    helpers.NewBidDataList(bids),
	})
}
