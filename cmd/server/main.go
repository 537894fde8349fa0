package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Aaron-Tawil/smart-shelf-labels/config"
	httpDelivery "github.com/Aaron-Tawil/smart-shelf-labels/internal/delivery/http"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/infrastructure/gemini"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/infrastructure/pricestore"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/render"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Smart Shelf Labels v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Price store: Firestore when configured, otherwise everything prints
	// on every run.
	var store domain.PriceStore = pricestore.NewNoopStore()
	if cfg.Firestore.ProjectID != "" {
		fs, err := pricestore.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection)
		if err != nil {
			log.Printf("WARNING: Firestore unavailable, change tracking disabled: %v", err)
		} else {
			store = fs
			log.Printf("Firestore configured: project=%s collection=%s",
				cfg.Firestore.ProjectID, cfg.Firestore.Collection)
		}
	} else {
		log.Printf("WARNING: Firestore project not configured, change tracking disabled")
	}

	// Name cleaner: Gemini when configured, otherwise names pass through.
	var cleaner domain.NameCleaner
	gm, err := gemini.NewCleaner(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Printf("WARNING: Gemini unavailable, name cleaning disabled: %v", err)
	} else {
		cleaner = gm
		log.Printf("Gemini configured: model=%s", cfg.Gemini.Model)
	}

	// Initialize usecase layer
	assembler := usecase.NewAssembler(
		usecase.NewChangeTracker(store),
		usecase.NewNameNormalizer(cleaner),
		render.NewEngine(cfg.PDF.FontsDir),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(assembler)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
