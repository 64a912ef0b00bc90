package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auction-api/internal/auctionerrors"
	"auction-api/internal/models"
	"auction-api/internal/services"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

type ListingServiceInterface interface {
	List(ctx context.Context, client services.Client, quantity int) ([]services.ListingInfo, error)
	ListByCategory(ctx context.Context, client services.Client, categorySlug string) ([]services.ListingInfo, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Detail(ctx context.Context, slug string) (*models.Listing, []models.Listing, error)
	ByAuctioneer(ctx context.Context, auctioneerID uuid.UUID, quantity int) ([]models.Listing, error)
	OwnListing(ctx context.Context, owner *models.User, slug string) (*models.Listing, error)
	Create(ctx context.Context, auctioneer *models.User, input services.ListingInput) (*models.Listing, error)
	Update(ctx context.Context, owner *models.User, slug string, patch services.ListingPatch) (*models.Listing, error)
}

type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// ListListingsHandler handles GET /api/v2/listings
func (h *ListingHandler) ListListingsHandler(c *gin.Context) {
	quantity, ok := helpers.ParseQuantity(c, "ListListingsHandler")
	if !ok {
		return
	}

	infos, err := h.service.List(c.Request.Context(), helpers.GetClient(c), quantity)
	if err != nil {
		helpers.RespondError(c, "ListListingsHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Listings fetched", helpers.NewListingDataList(infos))
}

// CreateListingHandler handles POST /api/v2/listings
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	client := helpers.GetClient(c)
	listing, err := h.service.Create(c.Request.Context(), client.User, services.ListingInput{
		Name:         req.Name,
		Desc:         req.Desc,
		CategorySlug: req.Category,
		Price:        req.Price,
		ClosingDate:  req.ClosingDate,
		Image:        req.Image,
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrCategoryNotFound) {
			utils.JSONFailure(c, http.StatusUnprocessableEntity, "Invalid Entry", map[string]string{"category": "Invalid category"})
			return
		}
		helpers.RespondError(c, "CreateListingHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Listing created successfully", helpers.NewListingData(*listing, false))
	helpers.LogSuccess("CreateListingHandler", "listing created", map[string]any{
		"slug":       listing.Slug,
		"auctioneer": listing.AuctioneerID,
	})
}

// ListingDetailHandler handles GET /api/v2/listings/detail/:slug
func (h *ListingHandler) ListingDetailHandler(c *gin.Context) {
	listing, related, err := h.service.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, "ListingDetailHandler", err)
		return
	}

	relatedData := make([]helpers.ListingData, 0, len(related))
	for _, item := range related {
		relatedData = append(relatedData, helpers.NewListingData(item, false))
	}

	utils.JSONSuccess(c, http.StatusOK, "Listing details fetched", helpers.ListingDetailData{
		Listing:         helpers.NewListingData(*listing, false),
		RelatedListings: relatedData,
	})
}

// ListCategoriesHandler handles GET /api/v2/listings/categories
func (h *ListingHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListCategoriesHandler", err)
		return
	}

	data := make([]helpers.CategoryData, 0, len(categories))
	for _, category := range categories {
		data = append(data, helpers.CategoryData{Name: category.Name, Slug: category.Slug})
	}
	utils.JSONSuccess(c, http.StatusOK, "Categories fetched", data)
}

// ListingsByCategoryHandler handles GET /api/v2/listings/categories/:slug
func (h *ListingHandler) ListingsByCategoryHandler(c *gin.Context) {
	infos, err := h.service.ListByCategory(c.Request.Context(), helpers.GetClient(c), c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, "ListingsByCategoryHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Category Listings fetched", helpers.NewListingDataList(infos))
}
