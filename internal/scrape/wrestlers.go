package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/grapplehold/ringdex/internal/fetch"
	"github.com/grapplehold/ringdex/internal/model"
	"github.com/grapplehold/ringdex/internal/parse"
	"github.com/grapplehold/ringdex/internal/storage"
)

// topWorkerCount caps the ranking-list ingestion to the site's top 100.
const topWorkerCount = 100

type WrestlerScraper struct {
	client *fetch.Client
	repo   storage.Repository
	logger *slog.Logger
}

func NewWrestlerScraper(client *fetch.Client, repo storage.Repository, logger *slog.Logger) *WrestlerScraper {
	return &WrestlerScraper{client: client, repo: repo, logger: logger}
}

// RunStats summarizes one ingestion pass.
type RunStats struct {
	Processed int
	Created   int
	Skipped   int
	Failed    int
}

// TopWrestlerURLs scrapes the workers ranking page and returns profile
// URLs for the first hundred data rows.
func (s *WrestlerScraper) TopWrestlerURLs() ([]string, error) {
	var urls []string
	found := false

	c := colly.NewCollector(
		colly.AllowedDomains("www.cagematch.net", "cagematch.net"),
		colly.UserAgent(fetch.UserAgent),
	)

	c.OnHTML("table.TBase", func(e *colly.HTMLElement) {
		if found {
			return
		}
		found = true
		e.DOM.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 || len(urls) >= topWorkerCount {
				return
			}
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}
			href, ok := cells.Eq(1).Find("a").First().Attr("href")
			if ok {
				urls = append(urls, BaseURL+"/"+strings.TrimPrefix(href, "/"))
			}
		})
	})

	s.logger.Info("Fetching workers ranking", "url", workersURL)
	if err := c.Visit(workersURL); err != nil {
		return nil, err
	}
	c.Wait()

	if !found {
		return nil, ErrPageStructure
	}
	return urls, nil
}

// ScrapeTop ingests the top-100 wrestlers one by one. A failure on one
// profile is logged and the loop moves on.
func (s *WrestlerScraper) ScrapeTop(ctx context.Context) (RunStats, error) {
	urls, err := s.TopWrestlerURLs()
	if err != nil {
		return RunStats{}, err
	}

	var stats RunStats
	for _, url := range urls {
		s.logger.Info("Processing wrestler", "url", url)
		_, created, err := s.ScrapeProfile(ctx, url)
		if err != nil {
			s.logger.Error("Failed to process wrestler", "url", url, "err", err)
			stats.Failed++
			continue
		}
		stats.Processed++
		if created {
			stats.Created++
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

// ScrapeProfile ingests a single wrestler profile. The bool result is
// false when a wrestler with the same name was already stored and the
// page was skipped.
func (s *WrestlerScraper) ScrapeProfile(ctx context.Context, url string) (*model.Wrestler, bool, error) {
	id := parse.WrestlerID(url)
	if id == nil {
		return nil, false, fmt.Errorf("no wrestler id in url %s", url)
	}

	doc, err := s.client.Document(ctx, url)
	if err != nil {
		return nil, false, err
	}
	profile := extractProfile(doc)
	if profile.Name == "" {
		return nil, false, fmt.Errorf("no name found on profile %s", url)
	}

	stats, err := s.titleStats(ctx, *id)
	if err != nil {
		return nil, false, err
	}

	w := &model.Wrestler{
		Name:        profile.Name,
		HeightCM:    profile.HeightCM,
		WeightKG:    profile.WeightKG,
		Age:         profile.Age,
		Debut:       profile.Debut,
		IsActive:    profile.IsActive,
		YearsActive: profile.YearsActive,
		Retirement:  profile.Retirement,
		CagematchID: *id,
		TitleReigns: stats.TitleReigns,
		TitlesWon:   stats.TitlesWon,
		IsChampion:  stats.IsChampion,
	}

	if profile.Promotion != "" {
		promo, err := s.repo.GetOrCreatePromotion(ctx, profile.Promotion)
		if err != nil {
			return nil, false, err
		}
		w.PromotionID = &promo.ID
	}

	created, err := s.repo.SaveWrestler(ctx, w)
	if err != nil {
		return nil, false, err
	}
	if !created {
		s.logger.Warn("Skipping duplicate wrestler", "name", w.Name)
	}
	return w, created, nil
}

func (s *WrestlerScraper) titleStats(ctx context.Context, cagematchID int64) (titleStats, error) {
	url := fmt.Sprintf("%s/?id=2&nr=%d&page=11", BaseURL, cagematchID)
	doc, err := s.client.Document(ctx, url)
	if err != nil {
		return titleStats{}, err
	}
	return extractTitleStats(doc), nil
}

type wrestlerProfile struct {
	Name        string
	Promotion   string
	HeightCM    *int
	WeightKG    *int
	Age         *int
	Debut       *time.Time
	IsActive    bool
	YearsActive *int
	Retirement  *time.Time
}

// profileFields routes labeled information rows to their field setters.
// The order is significant: the first matching label substring wins,
// and a later "Current gimmick" row never overwrites the name.
var profileFields = []struct {
	label string
	set   func(p *wrestlerProfile, value string)
}{
	{"Current gimmick", func(p *wrestlerProfile, v string) {
		if p.Name == "" {
			p.Name = v
		}
	}},
	{"Promotion", func(p *wrestlerProfile, v string) { p.Promotion = v }},
	{"Height", func(p *wrestlerProfile, v string) { p.HeightCM = parse.Height(v) }},
	{"Weight", func(p *wrestlerProfile, v string) { p.WeightKG = parse.Weight(v) }},
	{"Age", func(p *wrestlerProfile, v string) { p.Age = parse.Age(v) }},
	{"Beginning of in-ring career", func(p *wrestlerProfile, v string) { p.Debut = parse.Date(v) }},
	{"In-ring experience", func(p *wrestlerProfile, v string) { p.YearsActive = parse.YearsActive(v) }},
	{"End of in-ring career", func(p *wrestlerProfile, v string) {
		p.Retirement = parse.Date(v)
		p.IsActive = false
	}},
}

// extractProfile reads the labeled information boxes of a wrestler
// profile page. Retired wrestlers lack a "Current gimmick" row, so the
// page header is the fallback name.
func extractProfile(doc *goquery.Document) wrestlerProfile {
	p := wrestlerProfile{IsActive: true}

	doc.Find("div.InformationBoxTable div.InformationBoxRow").Each(func(_ int, row *goquery.Selection) {
		labelSel := row.Find("div.InformationBoxTitle")
		valueSel := row.Find("div.InformationBoxContents")
		if labelSel.Length() == 0 || valueSel.Length() == 0 {
			return
		}
		label := strings.TrimSpace(labelSel.First().Text())
		value := strings.TrimSpace(valueSel.First().Text())
		if value == "" {
			return
		}
		for _, f := range profileFields {
			if strings.Contains(label, f.label) {
				f.set(&p, value)
				break
			}
		}
	})

	if p.Name == "" {
		p.Name = strings.TrimSpace(doc.Find("div.HeaderBox h1.TextHeader").First().Text())
	}
	return p
}

type titleStats struct {
	TitlesWon   int
	TitleReigns int
	IsChampion  bool
}

// extractTitleStats counts rows of the "Title Reigns" and "Titles"
// tables on the title-history page. A reign whose time frame still says
// "today" marks the wrestler as current champion. "Title Reigns" must
// be checked before the bare "Titles" substring.
func extractTitleStats(doc *goquery.Document) titleStats {
	var ts titleStats

	doc.Find("div.Caption").Each(func(_ int, caption *goquery.Selection) {
		heading := strings.TrimSpace(caption.Text())
		table := nextTable(caption)
		if table == nil {
			return
		}

		if strings.Contains(heading, "Title Reigns") {
			rows := table.Find("tr")
			ts.TitleReigns = max(rows.Length()-1, 0)
			rows.Each(func(i int, row *goquery.Selection) {
				if i == 0 {
					return
				}
				timeframe := strings.ToLower(strings.TrimSpace(row.Find("td").First().Text()))
				if strings.Contains(timeframe, "today") {
					ts.IsChampion = true
				}
			})
		} else if strings.Contains(heading, "Titles") {
			ts.TitlesWon = max(table.Find("tr").Length()-1, 0)
		}
	})

	return ts
}

// nextTable finds the first TBase table following the caption in
// document order, whether it is a direct sibling or nested in one.
func nextTable(caption *goquery.Selection) *goquery.Selection {
	var table *goquery.Selection
	caption.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if sib.Is("table.TBase") {
			table = sib
			return false
		}
		if t := sib.Find("table.TBase").First(); t.Length() > 0 {
			table = t
			return false
		}
		return true
	})
	return table
}
