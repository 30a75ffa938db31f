package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/grapplehold/ringdex/internal/fetch"
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
	refresh := flag.Bool("refresh", false, "Update stored fields of wrestlers that already exist instead of skipping them")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	repo, err := storage.NewDuckDBRepo(*dbPath, logger)
	if err != nil {
		logger.Error("DB connection failed", "err", err)
		os.Exit(1)
	}
	defer repo.Close()
	repo.RefreshExisting = *refresh

	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		logger.Error("Schema initialization failed", "err", err)
		os.Exit(1)
	}

	scraper := scrape.NewWrestlerScraper(fetch.NewClient(), repo, logger.With("source", "wrestlers"))
	stats, err := scraper.ScrapeTop(ctx)
	if err != nil {
		logger.Error("Top-100 ingestion failed", "err", err)
		os.Exit(1)
	}

	logger.Info("Ingestion complete",
		"processed", stats.Processed,
		"created", stats.Created,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
}
