package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/storage"
)

// Extensions lists the catalog file formats LoadFile understands.
var Extensions = []string{".json", ".yaml", ".yml", ".xlsx", ".db", ".sqlite"}

// LoadFile reads a catalog file, choosing the decoder by extension. Records
// that fail Check are left out and returned as problems; a file whose records
// all fail is an ErrNoUsableRecords error.
func LoadFile(ctx context.Context, path string) (*Snapshot, []Problem, error) {
	records, err := ReadRecords(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	snap, problems := BuildSnapshot(records, path)
	if snap.Len() == 0 && len(records) > 0 {
		return nil, problems, fmt.Errorf("%s: %w", path, ErrNoUsableRecords)
	}
	return snap, problems, nil
}

// ReadRecords decodes the records of a catalog file without validating them.
func ReadRecords(ctx context.Context, path string) ([]*models.SupportRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".db", ".sqlite":
		return readSQLite(ctx, path)
	case ".json", ".yaml", ".yml", ".xlsx":
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return decode(f, ext)
}

func decode(r io.Reader, ext string) ([]*models.SupportRecord, error) {
	switch ext {
	case ".yaml", ".yml":
		return DecodeYAML(r)
	case ".xlsx":
		return DecodeXLSX(r)
	default:
		return DecodeJSON(r)
	}
}

func readSQLite(ctx context.Context, path string) ([]*models.SupportRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	records, err := store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("read SQLite catalog: %w", err)
	}
	return records, nil
}
