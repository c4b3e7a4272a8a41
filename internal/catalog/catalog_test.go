package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/storage"
)

const sampleJSON = `[
  {
    "id": "fk-bostadsbidrag",
    "namn": "Bostadsbidrag",
    "namn_en": "Housing allowance",
    "myndighet": "Försäkringskassan",
    "malgrupp": ["privatperson"],
    "kategori": "bostad",
    "taggar": ["bostad", "hyra"],
    "kort_beskrivning": "Stöd för hyra",
    "kort_beskrivning_en": "Help with rent",
    "relevans_signaler": ["hyra", "låg inkomst"],
    "senast_verifierad": "2026-02-15",
    "region": "nationellt"
  },
  {
    "id": "rvn-utvecklingsstod",
    "namn": "Utvecklingsstöd",
    "myndighet": "Region Västernorrland",
    "malgrupp": ["företag", " "],
    "region": "Västernorrland"
  }
]`

func TestDecodeJSON(t *testing.T) {
	records, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "fk-bostadsbidrag", r.ID)
	assert.Equal(t, "Bostadsbidrag", r.Localized(models.LangSwedish).Name)
	assert.Equal(t, "Help with rent", r.Localized(models.LangEnglish).Description)
	assert.Equal(t, []string{"hyra", "låg inkomst"}, r.Signals)
	_, hasArabic := r.Text[models.LangArabic]
	assert.False(t, hasArabic, "empty Arabic text should not be stored")

	second := records[1]
	assert.Equal(t, []string{"företag"}, second.Audiences)
	assert.Equal(t, models.DefaultCategory, second.CategoryOrDefault())
	assert.NotNil(t, second.Tags)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"id": "x"}`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
- id: csn-studiemedel
  namn: Studiemedel
  myndighet: CSN
  malgrupp: [privatperson]
  kategori: utbildning
  relevans_signaler: [studera, plugga]
`
	records, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "CSN", records[0].Authority)
	assert.Equal(t, []string{"studera", "plugga"}, records[0].Signals)

	empty, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func writeWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestDecodeXLSX(t *testing.T) {
	buf := writeWorkbook(t, [][]interface{}{
		{"ID", "namn", "myndighet", "malgrupp", "taggar", "relevans_signaler", "region"},
		{"almi-mikrolan", "Almi mikrolån", "Almi", "företag", "lån; finansiering", "lån\nstarta företag", "nationellt"},
		{"", "utan id", "Ingen", "privatperson", "", "", ""},
		{"af-starta-eget", "Starta eget", "Arbetsförmedlingen", "privatperson;företag", "", "", ""},
	})

	records, err := DecodeXLSX(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "almi-mikrolan", records[0].ID)
	assert.Equal(t, []string{"lån", "finansiering"}, records[0].Tags)
	assert.Equal(t, []string{"lån", "starta företag"}, records[0].Signals)
	assert.Equal(t, []string{"privatperson", "företag"}, records[1].Audiences)
}

func TestEmbedded(t *testing.T) {
	snap, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t, 29, snap.Len())
	assert.Equal(t, EmbeddedSource, snap.Source())

	r, ok := snap.Get("fk-bostadsbidrag")
	require.True(t, ok)
	assert.Equal(t, "Försäkringskassan", r.Authority)
	assert.NotEmpty(t, r.Localized(models.LangArabic).Name)

	for _, rec := range snap.Records() {
		assert.NotEmpty(t, rec.Audiences, rec.ID)
		assert.NotEmpty(t, rec.Localized(models.LangSwedish).Name, rec.ID)
	}
}

func TestNewSnapshot_Validation(t *testing.T) {
	ok := &models.SupportRecord{ID: "a", Audiences: []string{"privatperson"}}

	tests := []struct {
		name    string
		records []*models.SupportRecord
		wantErr string
	}{
		{"valid", []*models.SupportRecord{ok}, ""},
		{"empty catalog", nil, ""},
		{"missing id", []*models.SupportRecord{{Audiences: []string{"företag"}}}, "no id"},
		{"duplicate id", []*models.SupportRecord{ok, {ID: "a", Audiences: []string{"företag"}}}, `record "a" duplicates an earlier id`},
		{"no audience", []*models.SupportRecord{{ID: "b"}}, `record "b" has no audience`},
		{"nil record", []*models.SupportRecord{nil}, "record 0 is empty"},
		{"blank id", []*models.SupportRecord{{ID: "  ", Audiences: []string{"företag"}}}, "record 0 has no id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSnapshot(tc.records, "test")
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSnapshot_Lookup(t *testing.T) {
	snap, err := NewSnapshot([]*models.SupportRecord{
		{ID: "a", Audiences: []string{"privatperson"}},
		{ID: "b", Audiences: []string{"företag"}},
	}, "test")
	require.NoError(t, err)

	r, err := snap.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "b", r.ID)

	_, err = snap.Lookup("okänd")
	assert.True(t, errors.Is(err, ErrNotFound))

	records := snap.Records()
	records[0] = nil
	assert.NotNil(t, snap.Records()[0], "Records must return a copy")
}

func TestLoadFile_Formats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "stod.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0644))
	snap, problems, err := LoadFile(ctx, jsonPath)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, jsonPath, snap.Source())

	dbPath := filepath.Join(dir, "stod.db")
	store, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(ctx, snap.Records()))
	require.NoError(t, store.Close())

	fromDB, _, err := LoadFile(ctx, dbPath)
	require.NoError(t, err)
	assert.Equal(t, 2, fromDB.Len())
	r, ok := fromDB.Get("fk-bostadsbidrag")
	require.True(t, ok)
	assert.Equal(t, "Housing allowance", r.Localized(models.LangEnglish).Name)

	_, _, err = LoadFile(ctx, filepath.Join(dir, "stod.csv"))
	assert.ErrorContains(t, err, "unsupported catalog format")

	_, _, err = LoadFile(ctx, filepath.Join(dir, "saknas.db"))
	assert.Error(t, err)
}

func TestProvider_EmbeddedFallback(t *testing.T) {
	ctx := context.Background()

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.json")} {
		p := NewProvider(path)
		snap, err := p.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, EmbeddedSource, snap.Source())
		assert.Equal(t, 29, snap.Len())
	}
}

func TestProvider_ReloadKeepsPreviousOnFailure(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stod.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	p := NewProvider(path)
	first, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())

	again, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again, "snapshot should be loaded once")

	for _, broken := range []string{`[{"id": "x"`, `[{"id": "x"}]`} {
		require.NoError(t, os.WriteFile(path, []byte(broken), 0644))
		_, err = p.Reload(ctx)
		require.Error(t, err, broken)

		current, err := p.Snapshot(ctx)
		require.NoError(t, err)
		assert.Same(t, first, current, broken)
	}
	_, err = p.Reload(ctx)
	assert.ErrorIs(t, err, ErrNoUsableRecords)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "malgrupp": ["företag"]}]`), 0644))
	reloaded, err := p.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
}

func TestBuildSnapshot_SkipsUnusableRecords(t *testing.T) {
	records := []*models.SupportRecord{
		{ID: "a", Audiences: []string{"privatperson"}},
		nil,
		{ID: "", Audiences: []string{"företag"}},
		{ID: "b"},
		{ID: "a", Audiences: []string{"företag"}},
		{ID: "c", Audiences: []string{"företag"}},
	}
	snap, problems := BuildSnapshot(records, "test")

	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, "a", snap.Records()[0].ID)
	assert.Equal(t, "c", snap.Records()[1].ID)
	first, ok := snap.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"privatperson"}, first.Audiences, "first duplicate wins")

	require.Len(t, problems, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{problems[0].Index, problems[1].Index, problems[2].Index, problems[3].Index})
	assert.Equal(t, "has no audience", problems[2].Reason)
	assert.Equal(t, problems, Check(records))
}

func TestProvider_SkipsRecordWithoutAudience(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stod.json")
	doc := `[
  {"id": "a", "namn": "Studiemedel", "malgrupp": ["privatperson"], "relevans_signaler": ["studera"]},
  {"id": "b", "namn": "Trasig post", "relevans_signaler": ["studera"]}
]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	snap, err := NewProvider(path).Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	_, err = snap.Lookup("a")
	assert.NoError(t, err)
	_, err = snap.Lookup("b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvider_ReloadUnchangedKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stod.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	p := NewProvider(path)
	first, err := p.Reload(ctx)
	require.NoError(t, err)

	// rewriting identical content is a no-op
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))
	second, err := p.Reload(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestFingerprint(t *testing.T) {
	records, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	fp := Fingerprint(records)
	assert.True(t, strings.HasPrefix(fp, "sha256:"))
	assert.Len(t, fp, len("sha256:")+16)
	assert.Equal(t, fp, Fingerprint(records))

	snap, err := NewSnapshot(records, "test")
	require.NoError(t, err)
	assert.Equal(t, fp, snap.Fingerprint())

	changed := *records[0]
	changed.Amount = "100 kr"
	assert.NotEqual(t, fp, Fingerprint([]*models.SupportRecord{&changed, records[1]}))
	assert.NotEqual(t, fp, Fingerprint([]*models.SupportRecord{records[1], records[0]}), "order matters")
}

func TestStaticProvider(t *testing.T) {
	snap, err := NewSnapshot(nil, "static")
	require.NoError(t, err)

	got, err := NewStaticProvider(snap).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, got)
}

func TestResolveLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "sv",
		"sv":    "sv",
		"en":    "en",
		"EN":    "en",
		"en-GB": "en",
		"ar":    "ar",
		"ar-SE": "ar",
		"de":    "sv",
		"!!":    "sv",
	}
	for in, want := range tests {
		assert.Equal(t, want, ResolveLanguage(in), "input %q", in)
	}
}

func TestLocalize(t *testing.T) {
	r := &models.SupportRecord{
		ID: "x",
		Text: map[string]models.LocalizedText{
			models.LangSwedish: {Name: "Barnbidrag", Description: "Automatiskt bidrag"},
			models.LangEnglish: {Name: "Child allowance"},
		},
	}

	assert.Equal(t, "Child allowance", Name(r, "en"))
	assert.Equal(t, "Automatiskt bidrag", Description(r, "en"), "empty English description falls back")
	assert.Equal(t, "Barnbidrag", Name(r, "ar"), "missing Arabic falls back")
	assert.Equal(t, "Barnbidrag", Name(r, "fr"))
	assert.Equal(t, "Barnbidrag", Localize(r, FieldName, "sv"))
}

func TestComputeStats(t *testing.T) {
	snap, err := Embedded()
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	checker := freshness.NewChecker(0, freshness.WithClock(func() time.Time { return now }))

	st := ComputeStats(snap.Records(), checker)
	assert.Equal(t, 29, st.Total)
	assert.Equal(t, 7, st.Regional)
	assert.Equal(t, 0, st.Stale)
	assert.Equal(t, 29, st.TranslatedEN)
	assert.Equal(t, 29, st.TranslatedAR)
	assert.Equal(t, 7, st.ByCategory["investering"])
	assert.Equal(t, 17, st.ByAudience[models.AudienceIndividual])
	assert.Equal(t, 13, st.ByAudience[models.AudienceBusiness])
	assert.Equal(t, 11, st.ByAuthority["Försäkringskassan"])

	later := freshness.NewChecker(0, freshness.WithClock(func() time.Time { return now.AddDate(1, 0, 0) }))
	assert.Equal(t, 29, ComputeStats(snap.Records(), later).Stale)
}

func TestComputeStats_DefaultsCategory(t *testing.T) {
	records := []*models.SupportRecord{
		{ID: "a", Audiences: []string{"privatperson"}, LastVerified: "inte ett datum"},
	}
	st := ComputeStats(records, freshness.NewChecker(0))
	assert.Equal(t, 1, st.ByCategory[models.DefaultCategory])
	assert.Equal(t, 1, st.Stale)
	assert.Equal(t, 0, st.Regional)
}
