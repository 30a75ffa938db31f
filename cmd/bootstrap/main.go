package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/grapplehold/ringdex/internal/scrape"
	"github.com/grapplehold/ringdex/internal/storage"
)

func defaultDBPath() string {
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		return v
	}
	return "ringdex.duckdb"
}

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", defaultDBPath(), "Path to DuckDB file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	repo, err := storage.NewDuckDBRepo(*dbPath, logger)
	if err != nil {
		logger.Error("DB connection failed", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()
	logger.Info("Initializing database", "path", *dbPath)
	if err := repo.Init(ctx); err != nil {
		logger.Error("Schema initialization failed", "err", err)
		os.Exit(1)
	}

	scraper := scrape.NewPromotionScraper(logger.With("source", "promotions"))
	promotions, err := scraper.Fetch()
	if err != nil {
		// Includes scrape.ErrPageStructure: nothing to retry here.
		logger.Error("Promotions scrape failed", "err", err)
		os.Exit(1)
	}

	created, err := repo.SavePromotions(ctx, promotions)
	if err != nil {
		logger.Error("Saving promotions failed", "err", err)
		os.Exit(1)
	}

	logger.Info("Bootstrap complete",
		"found", len(promotions),
		"created", created,
		"skipped", len(promotions)-created)
}
