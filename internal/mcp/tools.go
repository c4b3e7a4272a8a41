package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/internal/search"
)

// ===== INPUTS AND OUTPUTS =====

type searchInput struct {
	Fraga    string `json:"fraga" jsonschema:"Beskriv din situation eller vad du söker stöd för. Kan vara på svenska, engelska eller arabiska."`
	Malgrupp string `json:"malgrupp,omitempty" jsonschema:"Valfritt filter: privatperson eller företag (individual or business)"`
	Kategori string `json:"kategori,omitempty" jsonschema:"Valfritt filter, t.ex. bostad, barn, anställning, investering, energi, utbildning, hälsa, grundtrygghet, finansiering, nystart"`
	Region   string `json:"region,omitempty" jsonschema:"Valfritt filter, t.ex. Västernorrland eller kommunalt. Matchar en del av stödets region. Nationella stöd (region nationellt) matchar alla regioner om inte konfigurationen stänger av det."`
	Sprak    string `json:"sprak,omitempty" jsonschema:"Språk för resultat: sv, en eller ar (standard sv)"`
}

type searchHit struct {
	ID    string `json:"id" jsonschema:"Record ID for stod_detaljer"`
	Score int    `json:"score" jsonschema:"Relevance score"`
	Name  string `json:"name" jsonschema:"Localized name"`
	Stale bool   `json:"stale" jsonschema:"True when the information may be outdated"`
}

type searchOutput struct {
	Total      int         `json:"total" jsonschema:"Number of matching records"`
	Shown      int         `json:"shown" jsonschema:"Number of records returned"`
	Results    []searchHit `json:"results" jsonschema:"Ranked matches, best first"`
	DidYouMean string      `json:"did_you_mean,omitempty" jsonschema:"Known category close to an unknown category filter"`
}

type detailsInput struct {
	StodID string `json:"stod_id" jsonschema:"ID för stödet, t.ex. fk-bostadsbidrag. Får du från sok_stod."`
	Sprak  string `json:"sprak,omitempty" jsonschema:"Språk: sv, en eller ar (standard sv)"`
}

type detailsOutput struct {
	Found  bool                  `json:"found" jsonschema:"Whether a record with the ID exists"`
	ID     string                `json:"id" jsonschema:"Requested ID"`
	Stale  bool                  `json:"stale" jsonschema:"True when the information may be outdated"`
	Record *models.SupportRecord `json:"record,omitempty" jsonschema:"The full record when found"`
}

type listInput struct {
	Malgrupp string `json:"malgrupp,omitempty" jsonschema:"privatperson/individual eller företag/business. Tomt = alla."`
	Sprak    string `json:"sprak,omitempty" jsonschema:"Språk: sv, en eller ar (standard sv)"`
}

type listOutput struct {
	Total int `json:"total" jsonschema:"Number of listed records"`
}

// statsInput is empty because statistics cover the whole catalog.
type statsInput struct{}

// ===== REGISTRATION =====

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "sok_stod",
		Description: "Söker efter relevanta bidrag och stöd baserat på en fritextfråga. " +
			"Beskriv din situation med vanliga ord, t.ex. \"Jag är ensamstående med två barn och har svårt med hyran\" " +
			"eller \"I'm a single parent struggling to pay rent\".",
	}, s.handleSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "stod_detaljer",
		Description: "Hämtar fullständig information om ett specifikt stöd.",
	}, s.handleDetails)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "lista_stod",
		Description: "Listar alla tillgängliga stöd i databasen, grupperade per kategori.",
	}, s.handleList)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "stod_statistik",
		Description: "Visar statistik om stöddatabasen.",
	}, s.handleStats)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ===== HANDLERS =====

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, args searchInput) (*mcp.CallToolResult, searchOutput, error) {
	lang := catalog.ResolveLanguage(args.Sprak)
	resp, err := s.engine.Search(ctx, &models.SearchQuery{
		Query:    args.Fraga,
		Audience: args.Malgrupp,
		Category: args.Kategori,
		Region:   args.Region,
		Language: lang,
	})
	if err != nil {
		return nil, searchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	out := searchOutput{
		Total:      resp.Total,
		Shown:      resp.Shown(),
		Results:    make([]searchHit, 0, resp.Shown()),
		DidYouMean: resp.Suggestion,
	}
	for _, h := range resp.Hits {
		out.Results = append(out.Results, searchHit{
			ID:    h.Record.ID,
			Score: h.Score,
			Name:  catalog.Name(h.Record, lang),
			Stale: s.checker.Stale(h.Record.LastVerified),
		})
	}
	s.logger.Debug("sok_stod",
		zap.String("search_id", resp.SearchID),
		zap.Int("total", resp.Total),
	)
	return textResult(s.formatter.SearchResults(resp, lang)), out, nil
}

func (s *Server) handleDetails(ctx context.Context, req *mcp.CallToolRequest, args detailsInput) (*mcp.CallToolResult, detailsOutput, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, detailsOutput{}, fmt.Errorf("load catalog: %w", err)
	}
	id := strings.TrimSpace(args.StodID)
	record, err := snap.Lookup(id)
	if errors.Is(err, catalog.ErrNotFound) {
		return textResult(format.NotFound(id, args.Sprak)), detailsOutput{ID: id}, nil
	}
	if err != nil {
		return nil, detailsOutput{}, err
	}
	out := detailsOutput{
		Found:  true,
		ID:     id,
		Stale:  s.checker.Stale(record.LastVerified),
		Record: record,
	}
	return textResult(s.formatter.Details(record, args.Sprak)), out, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, args listInput) (*mcp.CallToolResult, listOutput, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, listOutput{}, fmt.Errorf("load catalog: %w", err)
	}
	audience := search.CanonicalAudience(args.Malgrupp)
	records := search.Filter{Audience: audience}.Apply(snap.Records())
	return textResult(s.formatter.List(records, audience, args.Sprak)), listOutput{Total: len(records)}, nil
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest, args statsInput) (*mcp.CallToolResult, models.CatalogStats, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, models.CatalogStats{}, fmt.Errorf("load catalog: %w", err)
	}
	st := catalog.ComputeStats(snap.Records(), s.checker)
	return textResult(format.Stats(st)), *st, nil
}
