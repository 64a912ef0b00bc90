package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-api/internal/models"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

type GeneralServiceInterface interface {
	SiteDetail(ctx context.Context) (*models.SiteDetail, error)
	Subscribe(ctx context.Context, email string) (*models.Subscriber, error)
	Reviews(ctx context.Context) ([]models.Review, error)
}

type GeneralHandler struct {
	service GeneralServiceInterface
}

func NewGeneralHandler(service GeneralServiceInterface) *GeneralHandler {
	return &GeneralHandler{service: service}
}

// SiteDetailHandler handles GET /api/v2/general/site-detail
func (h *GeneralHandler) SiteDetailHandler(c *gin.Context) {
	detail, err := h.service.SiteDetail(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "SiteDetailHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Site Details fetched", detail)
}

// SubscribeHandler handles POST /api/v2/general/subscribe
func (h *GeneralHandler) SubscribeHandler(c *gin.Context) {
	var req helpers.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubscribeHandler", err)
		return
	}

	subscriber, err := h.service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		helpers.RespondError(c, "SubscribeHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "Subscriber added successfully", gin.H{"email": subscriber.Email})
}

// ReviewsHandler handles GET /api/v2/general/reviews
func (h *GeneralHandler) ReviewsHandler(c *gin.Context) {
	reviews, err := h.service.Reviews(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ReviewsHandler", err)
		return
	}

	data := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		item := gin.H{"text": review.Text}
		if review.Reviewer != nil {
			item["reviewer"] = helpers.AuctioneerData{Name: review.Reviewer.FullName(), Avatar: review.Reviewer.Avatar}
		}
		data = append(data, item)
	}
	utils.JSONSuccess(c, http.StatusOK, "Reviews fetched", data)
}
