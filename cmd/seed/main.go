package main // one-shot provisioning tool for a fresh deployment

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/festival-booking/internal/config"
	"github.com/iliyamo/festival-booking/internal/database"
	"github.com/iliyamo/festival-booking/internal/repository"
	"github.com/iliyamo/festival-booking/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := seed.Run(ctx, repository.NewStore(db)); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: done")
}
