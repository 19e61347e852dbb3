package main

import (
	"context"
	"log"
	"os"

	"github.com/shadowgoose/grantpulse/internal/api"
	"github.com/shadowgoose/grantpulse/internal/db"
	"github.com/shadowgoose/grantpulse/internal/discovery"
	"github.com/shadowgoose/grantpulse/internal/eligibility"
	"github.com/shadowgoose/grantpulse/internal/notify"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	profile, err := eligibility.LoadProfile(os.Getenv("ELIGIBILITY_PROFILE"))
	if err != nil {
		log.Fatalf("Failed to load eligibility profile: %v", err)
	}

	store := db.NewStore(pool)
	notifications := notify.NewStore()
	scheduler := notify.NewScheduler(store, profile, notifications, notify.LogMailer{}, notify.DefaultConfig())
	scheduler.Start(ctx)

	var scraper *discovery.Scraper
	registry, err := discovery.LoadRegistry(os.Getenv("DISCOVERY_SOURCES"))
	if err != nil {
		log.Printf("Discovery disabled: failed to load source registry: %v", err)
	} else {
		scraper = discovery.NewScraper(registry, store)
	}

	srv := api.NewServer(pool, profile, notifications, scheduler, scraper)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
