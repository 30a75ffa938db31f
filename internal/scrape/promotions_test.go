package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFrom(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	table := doc.Find("table.TBase.TableBorderColor").First()
	require.Equal(t, 1, table.Length())
	return table
}

func TestExtractPromotionRows(t *testing.T) {
	html := `
	<table class="TBase TableBorderColor">
		<tr><td>#</td><td>Logo</td><td>Name</td><td>Location</td><td>Active Time</td></tr>
		<tr>
			<td>1</td><td></td>
			<td><a href="?id=8&nr=1">WWE</a></td>
			<td>Stamford, USA</td>
			<td>1953</td>
		</tr>
		<tr>
			<td>2</td><td></td>
			<td><a href="?id=8&nr=7">WCW</a></td>
			<td>Atlanta, USA</td>
			<td>1988-2001</td>
		</tr>
	</table>`

	promotions := extractPromotionRows(tableFrom(t, html))
	require.Len(t, promotions, 2)

	wwe := promotions[0]
	assert.Equal(t, "WWE", wwe.Name)
	assert.Equal(t, "USA", wwe.Country)
	require.NotNil(t, wwe.YearFounded)
	assert.Equal(t, 1953, *wwe.YearFounded)
	assert.Nil(t, wwe.YearDisbanded)
	assert.True(t, wwe.IsActive)
	require.NotNil(t, wwe.CagematchID)
	assert.Equal(t, int64(1), *wwe.CagematchID)

	wcw := promotions[1]
	assert.Equal(t, "WCW", wcw.Name)
	require.NotNil(t, wcw.YearDisbanded)
	assert.Equal(t, 2001, *wcw.YearDisbanded)
	assert.False(t, wcw.IsActive)
	require.NotNil(t, wcw.YearsActive)
	assert.Equal(t, 13, *wcw.YearsActive)
}

func TestExtractPromotionRowsSkipsShortAndUnlinkedRows(t *testing.T) {
	html := `
	<table class="TBase TableBorderColor">
		<tr><td>#</td><td>Logo</td><td>Name</td><td>Location</td><td>Active Time</td></tr>
		<tr><td>spacer</td><td>only two cells</td></tr>
		<tr><td>1</td><td></td><td>No anchor here</td><td>Tokyo, Japan</td><td>1972</td></tr>
		<tr>
			<td>2</td><td></td>
			<td><a href="?id=8&nr=5">NJPW</a></td>
			<td>Tokyo, Japan</td>
			<td>1972</td>
		</tr>
	</table>`

	promotions := extractPromotionRows(tableFrom(t, html))
	require.Len(t, promotions, 1)
	assert.Equal(t, "NJPW", promotions[0].Name)
	assert.Equal(t, "Japan", promotions[0].Country)
}
