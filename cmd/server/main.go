package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vidshop/backend/config"
	httpDelivery "github.com/vidshop/backend/internal/delivery/http"
	"github.com/vidshop/backend/internal/infrastructure/cache"
	"github.com/vidshop/backend/internal/infrastructure/store"
	"github.com/vidshop/backend/internal/infrastructure/twelvelabs"
	"github.com/vidshop/backend/internal/usecase"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting VidShop Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	analysisCache := cache.NewMemoryCache()
	defer analysisCache.Stop()
	log.Printf("Analysis cache TTL: %s", cfg.Cache.TTL)

	videoClient := twelvelabs.NewClient(cfg.TwelveLabs.APIKey, cfg.TwelveLabs.BaseURL, cfg.TwelveLabs.RequestsPerMinute)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		videoClient.SetDebug(true)
		log.Printf("Video client debug mode enabled")
	}

	if cfg.TwelveLabs.APIKey != "" {
		log.Printf("Video API configured: %s", cfg.TwelveLabs.BaseURL)
	} else {
		log.Printf("WARNING: Video API key NOT CONFIGURED - upstream calls will fail, sample catalog will be served")
	}
	if cfg.TwelveLabs.DefaultIndexID == "" {
		log.Printf("WARNING: No default index id configured (set VIDSHOP_TWELVELABS_DEFAULT_INDEX_ID)")
	}

	cartStore := store.NewFileStore(cfg.Cart.StoragePath)
	cartService := usecase.NewCartService(cartStore)
	log.Printf("Cart snapshot path: %s", cfg.Cart.StoragePath)

	// Initialize usecase layer
	session := usecase.NewSession(videoClient, analysisCache, usecase.SessionConfig{
		DefaultIndexID: cfg.TwelveLabs.DefaultIndexID,
		AnalyzeTimeout: cfg.TwelveLabs.AnalyzeTimeout,
		CacheTTL:       cfg.Cache.TTL,
	})
	log.Printf("Analyze timeout: %s", cfg.TwelveLabs.AnalyzeTimeout)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(session, cartService, videoClient, cfg.TwelveLabs.DefaultIndexID)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal, then drain and flush the cart snapshot
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := cartService.Flush(); err != nil {
		log.Printf("Failed to flush cart snapshot: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
