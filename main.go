package main

import (
	"fmt"
	"os"
	"time"

	"auction-api/internal/config"
	"auction-api/internal/repository"
	"auction-api/internal/server"
	"auction-api/internal/services"
	"auction-api/services/api/handler"
	"auction-api/utils"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetDebug(cfg.Debug)

	db, err := repository.Connect(cfg.DatabaseDSN(), cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect database: %v\n", err)
		os.Exit(1)
	}

	users := repository.NewUserStore(db)
	otps := repository.NewOtpStore(db)
	tokens := repository.NewTokenStore(db)
	guests := repository.NewGuestStore(db)
	categories := repository.NewCategoryStore(db)
	listings := repository.NewListingStore(db)
	bids := repository.NewBidStore(db)
	watchlists := repository.NewWatchlistStore(db)
	siteDetails := repository.NewSiteDetailStore(db)
	subscribers := repository.NewSubscriberStore(db)
	reviews := repository.NewReviewStore(db)

	tokenMgr := utils.NewTokenManager(cfg.SecretKey, cfg.AccessTokenExpireMinutes, cfg.RefreshTokenExpireMinutes)
	otpTTL := time.Duration(cfg.EmailOtpExpireMinutes) * time.Minute

	authSvc := services.NewAuthService(users, otps, tokens, watchlists, tokenMgr, otpTTL)
	listingSvc := services.NewListingService(listings, categories, watchlists)
	biddingSvc := services.NewBiddingService(listings, bids)
	watchlistSvc := services.NewWatchlistService(listings, watchlists)
	generalSvc := services.NewGeneralService(siteDetails, subscribers, reviews)

	identity := server.NewIdentityResolver(users, tokens, guests, tokenMgr)

	router := server.SetupRouter(server.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Listings:   handler.NewListingHandler(listingSvc),
		Bids:       handler.NewBidHandler(biddingSvc),
		Watchlist:  handler.NewWatchlistHandler(watchlistSvc),
		Auctioneer: handler.NewAuctioneerHandler(listingSvc, biddingSvc, authSvc),
		General:    handler.NewGeneralHandler(generalSvc),
	}, identity)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
