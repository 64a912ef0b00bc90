package server

import (
	"github.com/gin-gonic/gin"

	"auction-api/services/api/handler"
)

// Handlers bundles the route handlers wired into the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Listings   *handler.ListingHandler
	Bids       *handler.BidHandler
	Watchlist  *handler.WatchlistHandler
	Auctioneer *handler.AuctioneerHandler
	General    *handler.GeneralHandler
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(h Handlers, identity *IdentityResolver) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	api := router.Group("/api/v2")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.RegisterHandler)
		auth.POST("/verify-email", h.Auth.VerifyEmailHandler)
		auth.POST("/resend-verification-email", h.Auth.ResendVerificationEmailHandler)
		auth.POST("/request-password-reset-otp", h.Auth.RequestPasswordResetOtpHandler)
		auth.POST("/set-new-password", h.Auth.SetNewPasswordHandler)
		auth.POST("/login", h.Auth.LoginHandler)
		auth.POST("/refresh", h.Auth.RefreshTokensHandler)
		auth.GET("/logout", identity.RequireUser, h.Auth.LogoutHandler)
	}

	listings := api.Group("/listings")
	{
		listings.GET("", identity.ResolveClient, h.Listings.ListListingsHandler)
		listings.POST("", identity.RequireUser, h.Listings.CreateListingHandler)
		listings.GET("/categories", h.Listings.ListCategoriesHandler)
		listings.GET("/categories/:slug", identity.ResolveClient, h.Listings.ListingsByCategoryHandler)
		listings.GET("/watchlist", identity.ResolveClient, h.Watchlist.ListWatchlistHandler)
		listings.POST("/watchlist", identity.ResolveClient, h.Watchlist.ToggleWatchlistHandler)
		listings.GET("/detail/:slug", h.Listings.ListingDetailHandler)
		listings.GET("/detail/:slug/bids", h.Bids.ListBidsHandler)
		listings.POST("/detail/:slug/bids", identity.RequireUser, h.Bids.PlaceBidHandler)
	}

	auctioneer := api.Group("/auctioneer", identity.RequireUser)
	{
		auctioneer.GET("", h.Auctioneer.GetProfileHandler)
		auctioneer.PUT("", h.Auctioneer.UpdateProfileHandler)
		auctioneer.GET("/listings", h.Auctioneer.OwnListingsHandler)
		auctioneer.GET("/listings/:slug", h.Auctioneer.OwnListingDetailHandler)
		auctioneer.PATCH("/listings/:slug", h.Auctioneer.UpdateListingHandler)
		auctioneer.GET("/listings/:slug/bids", h.Auctioneer.OwnListingBidsHandler)
	}

	general := api.Group("/general")
	{
		general.GET("/site-detail", h.General.SiteDetailHandler)
		general.POST("/subscribe", h.General.SubscribeHandler)
		general.GET("/reviews", h.General.ReviewsHandler)
	}

	return router
}
