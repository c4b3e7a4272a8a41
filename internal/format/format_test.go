package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testFormatter() *Formatter {
	return New(freshness.NewChecker(0, freshness.WithClock(func() time.Time { return testNow })))
}

func housing() *models.SupportRecord {
	return &models.SupportRecord{
		ID:        "fk-bostadsbidrag",
		Authority: "Försäkringskassan",
		Audiences: []string{"privatperson"},
		Category:  "bostad",
		Region:    "nationellt",
		Text: map[string]models.LocalizedText{
			"sv": {Name: "Bostadsbidrag", Description: "Stöd för hyra"},
			"en": {Name: "Housing allowance", Description: "Help with rent"},
			"ar": {Name: "بدل السكن"},
		},
		Requirements: []string{"Låg inkomst", "Bor i Sverige"},
		Amount:       "Varierar",
		ApplyURL:     "https://example.se/ansok",
		InfoURL:      "https://example.se/info",
		LastVerified: "2026-02-15",
	}
}

func regional() *models.SupportRecord {
	return &models.SupportRecord{
		ID:           "rvn-utvecklingsstod",
		Authority:    "Region Västernorrland",
		Audiences:    []string{"företag"},
		Category:     "nystart",
		Region:       "Västernorrland",
		Text:         map[string]models.LocalizedText{"sv": {Name: "Utvecklingsstöd", Description: "Mindre stöd"}},
		Amount:       "Upp till 100 000 kr",
		LastVerified: "2025-01-10",
	}
}

func TestSearchResults(t *testing.T) {
	resp := &models.SearchResponse{
		Total: 12,
		Hits: []*models.Hit{
			{Score: 12, Record: housing()},
			{Score: 4, Record: regional()},
		},
	}
	f := testFormatter()

	sv := f.SearchResults(resp, "sv")
	assert.True(t, strings.HasPrefix(sv, "Hittade 12 möjliga stöd (visar topp 2):\n\n### Bostadsbidrag\n"), sv)
	assert.Contains(t, sv, "**Myndighet:** Försäkringskassan\n")
	assert.Contains(t, sv, "**Målgrupp:** privatperson\n")
	assert.Contains(t, sv, "**Mer info:** https://example.se/info\n**ID:** fk-bostadsbidrag")
	assert.Contains(t, sv, "\n\n---\n\n### Utvecklingsstöd ⚠️\n")
	assert.Contains(t, sv, "**Mer info:** -\n")

	en := f.SearchResults(resp, "en")
	assert.True(t, strings.HasPrefix(en, "Found 12 potential benefits (showing top 2):"), en)
	assert.Contains(t, en, "### Housing allowance\n**Authority:**")
	assert.Contains(t, en, "**Description:** Help with rent\n")
	assert.Contains(t, en, "### Utvecklingsstöd ⚠️", "missing translation falls back to Swedish")

	ar := f.SearchResults(resp, "ar")
	assert.True(t, strings.HasPrefix(ar, "تم العثور على 12 دعم محتمل:"), ar)
	assert.Contains(t, ar, "### بدل السكن\n")
	assert.Contains(t, ar, "**Description:** Stöd för hyra\n")
}

func TestSearchResults_Empty(t *testing.T) {
	f := testFormatter()
	empty := &models.SearchResponse{Hits: []*models.Hit{}}

	assert.True(t, strings.HasPrefix(f.SearchResults(empty, "sv"), "Hittade inga stöd"))
	assert.True(t, strings.HasPrefix(f.SearchResults(empty, "en"), "No matching benefits found."))
	assert.True(t, strings.HasPrefix(f.SearchResults(empty, "ar"), "لم يتم العثور"))
	assert.True(t, strings.HasPrefix(f.SearchResults(empty, "de"), "Hittade inga stöd"), "unknown language uses Swedish")
}

func TestSearchResults_DidYouMean(t *testing.T) {
	f := testFormatter()
	resp := &models.SearchResponse{Hits: []*models.Hit{}, Suggestion: "bostad"}

	sv := f.SearchResults(resp, "sv")
	assert.True(t, strings.HasPrefix(sv, "Hittade inga stöd"))
	assert.True(t, strings.HasSuffix(sv, "\n\nMenade du kategorin \"bostad\"?"))
	assert.True(t, strings.HasSuffix(f.SearchResults(resp, "en"), "Did you mean the category \"bostad\"?"))
}

func TestDetails(t *testing.T) {
	f := testFormatter()

	sv := f.Details(housing(), "sv")
	assert.True(t, strings.HasPrefix(sv, "# Bostadsbidrag\n\n**Myndighet:** Försäkringskassan\n"), sv)
	assert.Contains(t, sv, "**Kategori:** bostad\n**Region:** nationellt\n\n")
	assert.Contains(t, sv, "## Villkor\n  • Låg inkomst\n  • Bor i Sverige\n\n")
	assert.Contains(t, sv, "## Länkar\n- Ansökan: https://example.se/ansok\n- Mer info: https://example.se/info\n\n")
	assert.True(t, strings.HasSuffix(sv, "Senast verifierad: 2026-02-15"), "fresh record has no warning")

	en := f.Details(regional(), "en")
	assert.Contains(t, en, "## Requirements\n\n\n")
	assert.Contains(t, en, "- Apply: -\n")
	assert.True(t, strings.HasSuffix(en, "Last verified: 2025-01-10\n\n⚠️ Information may be outdated."), en)

	missing := regional()
	missing.Category, missing.Region, missing.LastVerified = "", "", ""
	sv = f.Details(missing, "sv")
	assert.Contains(t, sv, "**Kategori:** -\n**Region:** -\n")
	assert.Contains(t, sv, "Senast verifierad: ?\n\n⚠️ Informationen kan vara inaktuell.")

	ar := f.Details(regional(), "ar")
	assert.Contains(t, ar, "**Authority:** Region Västernorrland\n")
	assert.True(t, strings.HasSuffix(ar, "Last verified: 2025-01-10\n\n⚠️ Informationen kan vara inaktuell."), ar)
}

func TestNotFound(t *testing.T) {
	assert.Equal(t, "Hittade inget stöd med ID 'okänd'.", NotFound("okänd", "sv"))
	assert.Equal(t, "No benefit found with ID 'okänd'.", NotFound("okänd", "en"))
	assert.Equal(t, "Hittade inget stöd med ID 'x'.", NotFound("x", "ar"))
}

func TestList(t *testing.T) {
	uncategorized := &models.SupportRecord{
		ID: "x", Authority: "Kommunen", Audiences: []string{"privatperson"}, Region: "kommunalt",
		Text: map[string]models.LocalizedText{"sv": {Name: "Okategoriserat", Description: "Något"}}, LastVerified: "2026-02-20",
	}
	records := []*models.SupportRecord{uncategorized, regional(), housing()}

	out := testFormatter().List(records, "", "sv")
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "Totalt 3 stöd:", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "## Bostad", lines[2])
	assert.Equal(t, "- **Bostadsbidrag** (Försäkringskassan) — Stöd för hyra [ID: fk-bostadsbidrag]", lines[3])
	assert.Equal(t, "## Nystart", lines[5])
	assert.Equal(t, "- **Utvecklingsstöd** ⚠️ 📍Västernorrland (Region Västernorrland) — Mindre stöd [ID: rvn-utvecklingsstod]", lines[6])
	assert.Equal(t, "## Övrigt", lines[8])
	assert.Contains(t, lines[9], "📍kommunalt")
}

func TestList_HeaderAndEmpty(t *testing.T) {
	f := testFormatter()
	out := f.List([]*models.SupportRecord{regional()}, "företag", "sv")
	assert.True(t, strings.HasPrefix(out, "Totalt 1 stöd (filtrerat: företag):\n"), out)

	out = f.List([]*models.SupportRecord{regional()}, "företag", "en")
	assert.True(t, strings.HasPrefix(out, "Total 1 benefits (filtered: företag):\n"), out)

	assert.Equal(t, "Inga stöd hittades.", f.List(nil, "", "sv"))
	assert.Equal(t, "No benefits found.", f.List(nil, "", "en"))
}

func TestStats(t *testing.T) {
	out := Stats(&models.CatalogStats{
		Total:        3,
		Regional:     1,
		Stale:        2,
		TranslatedEN: 3,
		TranslatedAR: 1,
		ByCategory:   map[string]int{"nystart": 1, "bostad": 2},
		ByAudience:   map[string]int{"privatperson": 2, "företag": 1},
		ByAuthority:  map[string]int{"Försäkringskassan": 2, "Almi": 1},
	})

	assert.True(t, strings.HasPrefix(out, "# Stödlotsen — Databasstatistik\n\n**Totalt:** 3 stöd\n**Regionala:** 1\n"), out)
	assert.Contains(t, out, "**Potentiellt inaktuella:** 2\n")
	assert.Contains(t, out, "**Översatta till arabiska:** 1\n\n")
	assert.Contains(t, out, "## Per kategori\n  - bostad: 2\n  - nystart: 1\n\n")
	assert.Contains(t, out, "## Per målgrupp\n  - företag: 1\n  - privatperson: 2\n\n")
	assert.True(t, strings.HasSuffix(out, "## Per myndighet\n  - Almi: 1\n  - Försäkringskassan: 2"), out)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hälsa", capitalize("hälsa"))
	assert.Equal(t, "Övrigt", capitalize("övrigt"))
	assert.Equal(t, "Anställning", capitalize("ANSTÄLLNING"))
	assert.Equal(t, "", capitalize(""))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]string{"url": "https://a.se/?x=1&y=2"}))
	assert.Equal(t, "{\n  \"url\": \"https://a.se/?x=1&y=2\"\n}\n", buf.String())
}
