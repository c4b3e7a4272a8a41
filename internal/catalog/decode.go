package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// DecodeJSON reads a JSON array of catalog entries.
func DecodeJSON(r io.Reader) ([]*models.SupportRecord, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode JSON catalog: %w", err)
	}
	return toRecords(entries), nil
}

// DecodeYAML reads a YAML sequence of catalog entries using the same keys as JSON.
func DecodeYAML(r io.Reader) ([]*models.SupportRecord, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return []*models.SupportRecord{}, nil
		}
		return nil, fmt.Errorf("decode YAML catalog: %w", err)
	}
	return toRecords(entries), nil
}

// listColumns hold several values per cell in spreadsheets.
var listColumns = map[string]bool{
	"malgrupp":          true,
	"taggar":            true,
	"villkor":           true,
	"relevans_signaler": true,
}

// DecodeXLSX reads the first sheet of a workbook. The first row holds the
// catalog keys; list cells separate values with ";" or line breaks.
// Rows without an id are skipped.
func DecodeXLSX(r io.Reader) ([]*models.SupportRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []*models.SupportRecord{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []*models.SupportRecord{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make(map[string]string, len(header))
		for i, v := range row {
			if i < len(header) && header[i] != "" {
				cells[header[i]] = strings.TrimSpace(v)
			}
		}
		if cells["id"] == "" {
			continue
		}
		entries = append(entries, entryFromCells(cells))
	}
	return toRecords(entries), nil
}

func entryFromCells(c map[string]string) Entry {
	return Entry{
		ID:            c["id"],
		Name:          c["namn"],
		NameEN:        c["namn_en"],
		NameAR:        c["namn_ar"],
		Authority:     c["myndighet"],
		Audiences:     splitList(c["malgrupp"]),
		Category:      c["kategori"],
		Tags:          splitList(c["taggar"]),
		Description:   c["kort_beskrivning"],
		DescriptionEN: c["kort_beskrivning_en"],
		DescriptionAR: c["kort_beskrivning_ar"],
		Requirements:  splitList(c["villkor"]),
		Amount:        c["belopp"],
		ApplyURL:      c["ansokan_url"],
		InfoURL:       c["info_url"],
		Signals:       splitList(c["relevans_signaler"]),
		LastVerified:  c["senast_verifierad"],
		Region:        c["region"],
	}
}

func splitList(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toRecords(entries []Entry) []*models.SupportRecord {
	records := make([]*models.SupportRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records
}
