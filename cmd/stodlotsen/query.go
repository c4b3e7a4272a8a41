package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/cli"
	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/search"
	"github.com/hyperjump/stodlotsen/pkg/utils"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		query     models.SearchQuery
		output    string
		serverURL string
	)
	cmd := &cobra.Command{
		Use:   "search [flags] <query...>",
		Short: "Search the catalog",
		Long: `Search the catalog for support programs matching a free-text description.

The query is all remaining arguments joined by spaces, so multi-word queries
work with or without quotes. Filters are exact: a record must match every
filter given. A region filter also matches nationwide programs.

Examples:
  stodlotsen search ensamstående mamma hyra
  stodlotsen search "sjuk barn vab" --lang en
  stodlotsen search stöd --audience business --region norrland
  stodlotsen search --explain --output json vill investera i maskiner
  stodlotsen search --server http://localhost:8000 hyra`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			query.Query = utils.JoinArgs(args)
			query.Audience = search.CanonicalAudience(query.Audience)

			if serverURL != "" {
				resp, err := cli.SearchViaHTTP(cmd.Context(), serverURL, &query)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				return cli.WriteRemoteResults(cmd.OutOrStdout(), resp, out)
			}

			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			resp, err := a.engine.Search(cmd.Context(), &query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return cli.WriteSearchResults(cmd.OutOrStdout(), resp, a.formatter, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&query.Audience, "audience", "", "only records for this audience (privatperson/företag, individual/business)")
	f.StringVar(&query.Category, "category", "", "only records in this category")
	f.StringVar(&query.Region, "region", "", "only records in this region (nationwide records always match)")
	f.StringVar(&query.Language, "lang", "sv", "output language: sv, en or ar")
	f.BoolVar(&query.Explain, "explain", false, "include per-hit score breakdowns (json output)")
	f.StringVar(&output, "output", "text", "output format: text or json")
	f.StringVar(&serverURL, "server", "", "search a running server instead of the local catalog")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var lang, output string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			snap, err := a.provider.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rec, err := snap.Lookup(args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				if out == cli.OutputJSON {
					return format.JSON(w, map[string]interface{}{"found": false, "id": args[0]})
				}
				_, err = fmt.Fprintln(w, format.NotFound(args[0], lang))
				return err
			}
			if err != nil {
				return err
			}
			if out == cli.OutputJSON {
				return format.JSON(w, rec)
			}
			_, err = fmt.Fprintln(w, a.formatter.Details(rec, lang))
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "sv", "output language: sv, en or ar")
	cmd.Flags().StringVar(&output, "output", "text", "output format: text or json")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var audience, lang, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			snap, err := a.provider.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			audience = search.CanonicalAudience(audience)
			records := search.Filter{Audience: audience}.Apply(snap.Records())
			if out == cli.OutputJSON {
				return format.JSON(cmd.OutOrStdout(), records)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.formatter.List(records, audience, lang))
			return err
		},
	}
	cmd.Flags().StringVar(&audience, "audience", "", "only records for this audience")
	cmd.Flags().StringVar(&lang, "lang", "sv", "output language: sv, en or ar")
	cmd.Flags().StringVar(&output, "output", "text", "output format: text or json")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			snap, err := a.provider.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			st := catalog.ComputeStats(snap.Records(), a.checker)
			if out == cli.OutputJSON {
				return format.JSON(cmd.OutOrStdout(), st)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), format.Stats(st))
			return err
		},
	}
	cmd.Flags().StringVar(&output, "output", "text", "output format: text or json")
	return cmd
}
