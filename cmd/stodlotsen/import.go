package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/storage"
	"github.com/hyperjump/stodlotsen/pkg/utils"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <source> <destination.db>",
		Short: "Import a catalog file into a SQLite catalog",
		Long: `Read a catalog from JSON, YAML, XLSX or another SQLite file, validate it,
and replace the contents of the destination SQLite catalog with it.

Point catalog.path at the resulting .db file to serve it.

Examples:
  stodlotsen import stod.json /var/lib/stodlotsen/stod.db
  stodlotsen import program.xlsx ./stod.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			logger, err := utils.NewLogger(opts.debug)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			ctx := cmd.Context()
			records, err := catalog.ReadRecords(ctx, src)
			if err != nil {
				return err
			}
			if problems := catalog.Check(records); len(problems) > 0 {
				for _, p := range problems {
					logger.Warn("invalid catalog record", zap.Int("index", p.Index), zap.String("id", p.ID), zap.String("reason", p.Reason))
				}
				return fmt.Errorf("invalid catalog %s: %d bad records, first: %w", src, len(problems), problems[0])
			}

			store, err := storage.NewSQLiteStore(dst)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.ReplaceAll(ctx, records); err != nil {
				return err
			}
			n, err := store.CountRecords(ctx)
			if err != nil {
				return err
			}
			size, err := storage.DiskUsageBytes(store.Path())
			if err != nil {
				logger.Warn("disk usage unavailable", zap.String("path", dst), zap.Error(err))
			}
			logger.Debug("catalog imported", zap.String("source", src), zap.String("destination", dst), zap.Int64("records", n))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s into %s (%s on disk)\n", n, src, dst, formatBytes(size))
			return nil
		},
	}
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
