package scrape

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func infoRow(label, value string) string {
	return `<div class="InformationBoxRow">
		<div class="InformationBoxTitle">` + label + `:</div>
		<div class="InformationBoxContents">` + value + `</div>
	</div>`
}

func TestExtractProfile(t *testing.T) {
	html := `<div class="InformationBoxTable">` +
		infoRow("Current gimmick", "John Cena") +
		infoRow("Promotion", "WWE") +
		infoRow("Height", `6' 1" (185 cm)`) +
		infoRow("Weight", "251 lbs (114 kg)") +
		infoRow("Age", "48 years") +
		infoRow("Beginning of in-ring career", "05.04.2000") +
		infoRow("In-ring experience", "25 years") +
		`</div>`

	p := extractProfile(docFrom(t, html))

	assert.Equal(t, "John Cena", p.Name)
	assert.Equal(t, "WWE", p.Promotion)
	require.NotNil(t, p.HeightCM)
	assert.Equal(t, 185, *p.HeightCM)
	require.NotNil(t, p.WeightKG)
	assert.Equal(t, 114, *p.WeightKG)
	require.NotNil(t, p.Age)
	assert.Equal(t, 48, *p.Age)
	require.NotNil(t, p.Debut)
	assert.Equal(t, time.Date(2000, 4, 5, 0, 0, 0, 0, time.UTC), *p.Debut)
	require.NotNil(t, p.YearsActive)
	assert.Equal(t, 25, *p.YearsActive)
	assert.True(t, p.IsActive)
	assert.Nil(t, p.Retirement)
}

func TestExtractProfileFirstGimmickWins(t *testing.T) {
	html := `<div class="InformationBoxTable">` +
		infoRow("Current gimmick", "The Undertaker") +
		infoRow("Current gimmick", "Mean Mark Callous") +
		`</div>`

	p := extractProfile(docFrom(t, html))
	assert.Equal(t, "The Undertaker", p.Name)
}

func TestExtractProfileHeaderFallback(t *testing.T) {
	html := `
	<div class="HeaderBox"><h1 class="TextHeader">Bret Hart</h1></div>
	<div class="InformationBoxTable">` +
		infoRow("End of in-ring career", "2000") +
		`</div>`

	p := extractProfile(docFrom(t, html))
	assert.Equal(t, "Bret Hart", p.Name)
	assert.False(t, p.IsActive)
	require.NotNil(t, p.Retirement)
	assert.Equal(t, 2000, p.Retirement.Year())
}

func TestExtractProfileSkipsEmptyValues(t *testing.T) {
	html := `<div class="InformationBoxTable">` +
		infoRow("Current gimmick", "Sting") +
		infoRow("Height", "") +
		`</div>`

	p := extractProfile(docFrom(t, html))
	assert.Equal(t, "Sting", p.Name)
	assert.Nil(t, p.HeightCM)
}

func titleTable(rows ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="TBase"><tr><th>Time frame</th><th>Title</th></tr>`)
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(`</table>`)
	return b.String()
}

func TestExtractTitleStats(t *testing.T) {
	html := `
	<div class="Caption">Title Reigns (3)</div>
	<div class="Wrapper">` +
		titleTable(
			`<tr><td>13.04.2024 - today</td><td>World Heavyweight Championship</td></tr>`,
			`<tr><td>05.01.2019 - 02.03.2019</td><td>Universal Championship</td></tr>`,
			`<tr><td>19.11.2017 - 20.08.2018</td><td>Intercontinental Championship</td></tr>`,
		) + `</div>
	<div class="Caption">Titles (2)</div>` +
		titleTable(
			`<tr><td>World Heavyweight Championship</td><td>1x</td></tr>`,
			`<tr><td>Universal Championship</td><td>1x</td></tr>`,
		)

	ts := extractTitleStats(docFrom(t, html))
	assert.Equal(t, 3, ts.TitleReigns)
	assert.Equal(t, 2, ts.TitlesWon)
	assert.True(t, ts.IsChampion)
}

func TestExtractTitleStatsNoCurrentReign(t *testing.T) {
	html := `
	<div class="Caption">Title Reigns (1)</div>` +
		titleTable(`<tr><td>05.01.2019 - 02.03.2019</td><td>Universal Championship</td></tr>`)

	ts := extractTitleStats(docFrom(t, html))
	assert.Equal(t, 1, ts.TitleReigns)
	assert.Equal(t, 0, ts.TitlesWon)
	assert.False(t, ts.IsChampion)
}

func TestExtractTitleStatsEmptyPage(t *testing.T) {
	ts := extractTitleStats(docFrom(t, `<div class="Content">No title matches found.</div>`))
	assert.Zero(t, ts.TitleReigns)
	assert.Zero(t, ts.TitlesWon)
	assert.False(t, ts.IsChampion)
}
