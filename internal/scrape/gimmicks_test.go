package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAlterEgos(t *testing.T) {
	html := `<div class="InformationBoxTable">
	<div class="InformationBoxRow">
		<div class="InformationBoxTitle">Alter egos:</div>
		<div class="InformationBoxContents">
			<a href="?id=2&nr=119&gimmick=Hollywood+Hogan">Hollywood Hogan</a><br>
			<a href="?id=2&nr=119&gimmick=Hulk+Hogan">Hulk Hogan</a><br>
			<a href="?id=2&nr=119&gimmick=Mr.+America">Mr. America</a>
		</div>
	</div>
</div>`

	aliases := extractAlterEgos(docFrom(t, html))
	require.Len(t, aliases, 3)
	assert.Equal(t, "Hollywood Hogan", aliases[0].Name)
	assert.Equal(t, BaseURL+"/?id=2&nr=119&gimmick=Hollywood+Hogan", aliases[0].URL)
	assert.Equal(t, "Hulk Hogan", aliases[1].Name)
	assert.Equal(t, "Mr. America", aliases[2].Name)
}

func TestExtractAlterEgosMissingSection(t *testing.T) {
	html := `<div class="InformationBoxTable">
	<div class="InformationBoxRow">
		<div class="InformationBoxTitle">Promotion:</div>
		<div class="InformationBoxContents">WWE</div>
	</div>
</div>`

	assert.Nil(t, extractAlterEgos(docFrom(t, html)))
}

func matchTable(rows ...string) string {
	s := `<table class="TBase TableBorderColor"><tr><th>#</th><th>Date</th><th>Promotion</th><th>Match</th></tr>`
	for _, r := range rows {
		s += r
	}
	return s + `</table>`
}

func matchRow(date, promotion string) string {
	return `<tr><td>1</td><td>` + date + `</td><td><a href="?id=8&nr=1"><img src="p.gif" title="` + promotion + `"></a></td><td>vs. someone</td></tr>`
}

func TestExtractMatchRows(t *testing.T) {
	html := matchTable(
		matchRow("12.07.2025", "WWE"),
		matchRow("01.03.2003", "World Wrestling Entertainment"),
	)

	rows := extractMatchRows(docFrom(t, html))
	require.Len(t, rows, 2)
	assert.Equal(t, time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "WWE", rows[0].Promotion)
	assert.Equal(t, "World Wrestling Entertainment", rows[1].Promotion)
}

func TestExtractMatchRowsDropsUnparseableDates(t *testing.T) {
	html := matchTable(
		matchRow("??.??.2001", "WCW"),
		matchRow("15.03.1995", "WCW"),
	)

	rows := extractMatchRows(docFrom(t, html))
	require.Len(t, rows, 1)
	assert.Equal(t, 1995, rows[0].Date.Year())
}

func TestLastPageURL(t *testing.T) {
	current := BaseURL + "/?id=2&nr=119&page=4"
	html := `<div class="NavigationPart">
		<a href="?id=2&nr=119&page=4&s=0">1</a>
		<a href="?id=2&nr=119&page=4&s=100">2</a>
		<a href="?id=2&nr=119&page=4&s=1900">20</a>
	</div>`

	got := lastPageURL(docFrom(t, html), current)
	assert.Equal(t, BaseURL+"/?id=2&nr=119&page=4&s=1900", got)
}

func TestLastPageURLWithoutPager(t *testing.T) {
	current := BaseURL + "/?id=2&nr=9967&page=4"
	got := lastPageURL(docFrom(t, `<div class="Content">only one page</div>`), current)
	assert.Equal(t, current, got)
}

func TestDeriveAliasHistory(t *testing.T) {
	newest := time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)
	oldest := time.Date(1996, 7, 7, 0, 0, 0, 0, time.UTC)

	firstPage := []MatchRow{
		{Date: newest, Promotion: "WWE"},
		{Date: time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC), Promotion: "WWE"},
	}
	oldestPage := []MatchRow{
		{Date: time.Date(1996, 8, 10, 0, 0, 0, 0, time.UTC), Promotion: "WCW"},
		{Date: oldest, Promotion: "WCW"},
	}

	h := deriveAliasHistory(firstPage, oldestPage)
	require.NotNil(t, h.LastSeen)
	assert.Equal(t, newest, *h.LastSeen)
	require.NotNil(t, h.DateCreated)
	assert.Equal(t, oldest, *h.DateCreated)
	assert.Equal(t, "WCW", h.DebutPromotion)
}

func TestDeriveAliasHistorySinglePage(t *testing.T) {
	page := []MatchRow{
		{Date: time.Date(2003, 5, 4, 0, 0, 0, 0, time.UTC), Promotion: "WWE"},
		{Date: time.Date(2003, 3, 30, 0, 0, 0, 0, time.UTC), Promotion: "WWE"},
	}

	h := deriveAliasHistory(page, page)
	require.NotNil(t, h.LastSeen)
	require.NotNil(t, h.DateCreated)
	assert.Equal(t, 4, h.LastSeen.Day())
	assert.Equal(t, 30, h.DateCreated.Day())
	assert.Equal(t, "WWE", h.DebutPromotion)
}

func TestDeriveAliasHistoryEmpty(t *testing.T) {
	h := deriveAliasHistory(nil, nil)
	assert.Nil(t, h.LastSeen)
	assert.Nil(t, h.DateCreated)
	assert.Empty(t, h.DebutPromotion)
}
