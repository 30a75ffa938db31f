package main

import (
	"context"
	"flag"
	"fmt"
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
	nr := flag.Int64("nr", 0, "Cagematch id of the wrestler to scrape gimmicks for")
	dryRun := flag.Bool("dry-run", false, "Preview derived gimmick data without writing")
	flag.Parse()

	if *nr == 0 {
		fmt.Fprintf(os.Stderr, "Error: -nr is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	repo, err := storage.NewDuckDBRepo(*dbPath, logger)
	if err != nil {
		logger.Error("DB connection failed", "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		logger.Error("Schema initialization failed", "err", err)
		os.Exit(1)
	}

	wrestler, err := repo.GetWrestlerByCagematchID(ctx, *nr)
	if err != nil {
		logger.Error("Wrestler lookup failed", "cagematch_id", *nr, "err", err)
		os.Exit(1)
	}
	if wrestler == nil {
		logger.Error("Wrestler not found; run the wrestlers job first", "cagematch_id", *nr)
		os.Exit(1)
	}

	scraper := scrape.NewGimmickScraper(fetch.NewClient(), repo, logger.With("source", "gimmicks"))
	scraper.DryRun = *dryRun

	logger.Info("Scraping gimmicks", "wrestler", wrestler.Name, "cagematch_id", *nr)
	stats, err := scraper.ScrapeForWrestler(ctx, wrestler)
	if err != nil {
		logger.Error("Gimmick ingestion failed", "wrestler", wrestler.Name, "err", err)
		os.Exit(1)
	}

	logger.Info("Gimmick ingestion complete",
		"wrestler", wrestler.Name,
		"processed", stats.Processed,
		"created", stats.Created,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
}
