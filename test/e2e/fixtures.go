// Package e2e provides end-to-end tests; this file writes a catalog in every supported format.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/storage"
)

// SupportedCatalogExtensions is the list of catalog file formats exercised by the e2e tests.
var SupportedCatalogExtensions = []string{".json", ".yaml", ".xlsx", ".db"}

// xlsxColumns is the header row written to workbook fixtures.
var xlsxColumns = []string{
	"id", "namn", "namn_en", "namn_ar", "myndighet", "malgrupp", "kategori", "taggar",
	"kort_beskrivning", "kort_beskrivning_en", "kort_beskrivning_ar", "villkor", "belopp",
	"ansokan_url", "info_url", "relevans_signaler", "senast_verifierad", "region",
}

// WriteCatalog writes records to dir/stod<ext> and returns the path.
func WriteCatalog(ctx context.Context, dir, ext string, records []*models.SupportRecord) (string, error) {
	path := filepath.Join(dir, "stod"+ext)
	entries := make([]catalog.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, catalog.EntryFromRecord(r))
	}

	switch ext {
	case ".json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0644)
	case ".yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0644)
	case ".xlsx":
		return path, writeWorkbook(path, entries)
	case ".db":
		store, err := storage.NewSQLiteStore(path)
		if err != nil {
			return "", err
		}
		defer store.Close()
		return path, store.ReplaceAll(ctx, records)
	}
	return "", fmt.Errorf("unsupported catalog extension %q", ext)
}

func writeWorkbook(path string, entries []catalog.Entry) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(xlsxColumns))
	for i, c := range xlsxColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, e := range entries {
		row := []interface{}{
			e.ID, e.Name, e.NameEN, e.NameAR, e.Authority, joinList(e.Audiences), e.Category,
			joinList(e.Tags), e.Description, e.DescriptionEN, e.DescriptionAR, joinList(e.Requirements),
			e.Amount, e.ApplyURL, e.InfoURL, joinList(e.Signals), e.LastVerified, e.Region,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func joinList(values []string) string {
	return strings.Join(values, "; ")
}
