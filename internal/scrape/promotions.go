package scrape

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/grapplehold/ringdex/internal/fetch"
	"github.com/grapplehold/ringdex/internal/model"
	"github.com/grapplehold/ringdex/internal/parse"
)

const (
	BaseURL       = "https://www.cagematch.net"
	promotionsURL = BaseURL + "/?id=8&view=promotions"
	workersURL    = BaseURL + "/?id=2&view=workers"
)

// ErrPageStructure signals that an expected table or section is missing
// entirely: either the site layout changed or the request was blocked.
// Callers treat it as fatal rather than retrying.
var ErrPageStructure = errors.New("page structure changed or request was blocked")

type PromotionScraper struct {
	logger *slog.Logger
}

func NewPromotionScraper(logger *slog.Logger) *PromotionScraper {
	return &PromotionScraper{logger: logger}
}

// Fetch scrapes the promotions index into records in page order.
func (s *PromotionScraper) Fetch() ([]model.Promotion, error) {
	var promotions []model.Promotion
	found := false

	c := colly.NewCollector(
		colly.AllowedDomains("www.cagematch.net", "cagematch.net"),
		colly.UserAgent(fetch.UserAgent),
	)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Referer", BaseURL+"/")
	})

	// The listing table carries this class pair; anything else on the
	// page (navigation, ad tables) does not.
	c.OnHTML("table.TBase.TableBorderColor", func(e *colly.HTMLElement) {
		found = true
		promotions = extractPromotionRows(e.DOM)
	})

	s.logger.Info("Scraping promotions index", "url", promotionsURL)
	if err := c.Visit(promotionsURL); err != nil {
		return nil, err
	}
	c.Wait()

	if !found {
		return nil, ErrPageStructure
	}
	return promotions, nil
}

// extractPromotionRows walks the listing table. The first row is the
// header; data rows have the promotion anchor in the third cell, the
// location in the fourth and the founding-year range in the fifth.
func extractPromotionRows(table *goquery.Selection) []model.Promotion {
	var promotions []model.Promotion

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		link := cells.Eq(2).Find("a").First()
		if link.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")
		founded := parse.FoundedRange(strings.TrimSpace(cells.Eq(4).Text()))

		promotions = append(promotions, model.Promotion{
			Name:          strings.TrimSpace(link.Text()),
			Country:       parse.Country(strings.TrimSpace(cells.Eq(3).Text())),
			YearFounded:   founded.Founded,
			YearDisbanded: founded.Disbanded,
			IsActive:      founded.IsActive,
			YearsActive:   founded.YearsActive,
			CagematchID:   parse.PromotionID(href),
		})
	})

	return promotions
}
