package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/grapplehold/ringdex/internal/fetch"
	"github.com/grapplehold/ringdex/internal/model"
	"github.com/grapplehold/ringdex/internal/parse"
	"github.com/grapplehold/ringdex/internal/storage"
)

type GimmickScraper struct {
	client *fetch.Client
	repo   storage.Repository
	logger *slog.Logger

	// DryRun previews derived alias data without writing anything.
	DryRun bool
}

func NewGimmickScraper(client *fetch.Client, repo storage.Repository, logger *slog.Logger) *GimmickScraper {
	return &GimmickScraper{client: client, repo: repo, logger: logger}
}

// alias is one entry of a wrestler's "Alter egos" section.
type alias struct {
	Name string
	URL  string
}

// MatchRow is one parsed row of a match-history listing: the match date
// and the promotion it took place in.
type MatchRow struct {
	Date      time.Time
	Promotion string
}

// AliasHistory is the derived activity range of one alias.
type AliasHistory struct {
	DateCreated    *time.Time
	LastSeen       *time.Time
	DebutPromotion string
}

// ScrapeForWrestler walks the wrestler's alter-ego list and stores one
// gimmick per non-duplicate alias. A failure on one alias is logged and
// the loop continues; a profile without an alter-ego section yields
// zero gimmicks and no error.
func (s *GimmickScraper) ScrapeForWrestler(ctx context.Context, w *model.Wrestler) (RunStats, error) {
	profileURL := fmt.Sprintf("%s/?id=2&nr=%d", BaseURL, w.CagematchID)
	doc, err := s.client.Document(ctx, profileURL)
	if err != nil {
		return RunStats{}, err
	}

	aliases := extractAlterEgos(doc)
	if len(aliases) == 0 {
		s.logger.Info("No alter egos found", "wrestler", w.Name)
		return RunStats{}, nil
	}

	var stats RunStats
	for _, a := range aliases {
		historyURL := a.URL
		// Force the match-history view on the alias profile.
		if !strings.Contains(historyURL, "&page=4") {
			historyURL += "&page=4"
		}

		history, err := s.aliasHistory(ctx, historyURL)
		if err != nil {
			s.logger.Error("Failed to process gimmick", "gimmick", a.Name, "err", err)
			stats.Failed++
			continue
		}

		g := &model.Gimmick{
			WrestlerID:  w.ID,
			Name:        a.Name,
			DateCreated: history.DateCreated,
			LastSeen:    history.LastSeen,
		}
		g.IsDefault = g.IsDefaultFor(w.Name)

		if history.DebutPromotion != "" {
			promo, err := s.repo.GetOrCreatePromotion(ctx, history.DebutPromotion)
			if err != nil {
				s.logger.Error("Failed to resolve debut promotion", "gimmick", a.Name, "promotion", history.DebutPromotion, "err", err)
				stats.Failed++
				continue
			}
			g.DebutPromotionID = &promo.ID
		}

		if s.DryRun {
			s.logger.Info("Gimmick preview",
				"gimmick", a.Name,
				"history_url", historyURL,
				"date_created", history.DateCreated,
				"last_seen", history.LastSeen,
				"debut_promotion", history.DebutPromotion,
				"is_default", g.IsDefault)
			stats.Processed++
			continue
		}

		created, err := s.repo.SaveGimmick(ctx, g)
		if err != nil {
			s.logger.Error("Failed to save gimmick", "gimmick", a.Name, "err", err)
			stats.Failed++
			continue
		}
		stats.Processed++
		if created {
			s.logger.Info("Added gimmick", "gimmick", a.Name)
			stats.Created++
		} else {
			s.logger.Warn("Skipping duplicate gimmick", "gimmick", a.Name)
			stats.Skipped++
		}
	}
	return stats, nil
}

// aliasHistory derives the active date range of one alias from its
// paginated match history.
func (s *GimmickScraper) aliasHistory(ctx context.Context, url string) (AliasHistory, error) {
	doc, err := s.client.Document(ctx, url)
	if err != nil {
		return AliasHistory{}, err
	}
	firstPage := extractMatchRows(doc)

	// The oldest match is the last row of the final pager page; when the
	// first page is the only page it doubles as the final one.
	oldestPage := firstPage
	if lastURL := lastPageURL(doc, url); lastURL != url {
		lastDoc, err := s.client.Document(ctx, lastURL)
		if err != nil {
			return AliasHistory{}, err
		}
		oldestPage = extractMatchRows(lastDoc)
	}

	return deriveAliasHistory(firstPage, oldestPage), nil
}

// deriveAliasHistory implements the newest-first pagination rule:
// the most recent appearance is the first row of the first page, the
// earliest appearance (and the debut promotion) is the last row of the
// final page.
func deriveAliasHistory(firstPage, oldestPage []MatchRow) AliasHistory {
	var h AliasHistory
	if len(firstPage) > 0 {
		d := firstPage[0].Date
		h.LastSeen = &d
	}
	if len(oldestPage) > 0 {
		oldest := oldestPage[len(oldestPage)-1]
		d := oldest.Date
		h.DateCreated = &d
		h.DebutPromotion = oldest.Promotion
	}
	return h
}

// extractAlterEgos finds the "Alter egos:" information row and returns
// its linked aliases. A missing section means no gimmicks, not an error.
func extractAlterEgos(doc *goquery.Document) []alias {
	section := doc.Find("div.InformationBoxTitle").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "Alter egos:"
	}).First()
	if section.Length() == 0 {
		return nil
	}

	row := section.Closest("div.InformationBoxRow")
	if row.Length() == 0 {
		return nil
	}

	var aliases []alias
	row.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}
		aliases = append(aliases, alias{
			Name: name,
			URL:  BaseURL + "/" + strings.TrimPrefix(href, "/"),
		})
	})
	return aliases
}

// extractMatchRows reads (date, promotion) pairs from a match listing.
// The promotion comes from the title attribute of the promotion logo in
// the linked cell; rows whose date cell does not parse are dropped.
func extractMatchRows(doc *goquery.Document) []MatchRow {
	var rows []MatchRow
	doc.Find("table.TBase.TableBorderColor tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		date := parse.Date(strings.TrimSpace(cells.Eq(1).Text()))
		if date == nil {
			return
		}
		promotion, _ := cells.Eq(2).Find("a img").First().Attr("title")
		rows = append(rows, MatchRow{Date: *date, Promotion: strings.TrimSpace(promotion)})
	})
	return rows
}

// lastPageURL resolves the final page of a paginated match history from
// the highest-numbered pager link. Without a pager the current page is
// already the last one.
func lastPageURL(doc *goquery.Document, current string) string {
	pager := doc.Find("div.NavigationPart").First()
	if pager.Length() == 0 {
		return current
	}
	href, ok := pager.Find("a[href]").Last().Attr("href")
	if !ok {
		return current
	}
	return BaseURL + "/" + strings.TrimPrefix(href, "/")
}
