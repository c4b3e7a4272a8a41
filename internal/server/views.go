package server

import (
	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// recordView is a record flattened to one language.
type recordView struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Authority    string                 `json:"authority"`
	Audiences    []string               `json:"audiences"`
	Category     string                 `json:"category,omitempty"`
	Region       string                 `json:"region,omitempty"`
	Amount       string                 `json:"amount,omitempty"`
	InfoURL      string                 `json:"info_url,omitempty"`
	ApplyURL     string                 `json:"apply_url,omitempty"`
	Requirements []string               `json:"requirements,omitempty"`
	LastVerified string                 `json:"last_verified,omitempty"`
	Stale        bool                   `json:"stale"`
	Score        int                    `json:"score,omitempty"`
	Breakdown    *models.ScoreBreakdown `json:"breakdown,omitempty"`
}

type searchResponseView struct {
	SearchID  string       `json:"search_id"`
	Query     string       `json:"query"`
	Language  string       `json:"language"`
	Total     int          `json:"total"`
	Shown     int          `json:"shown"`
	Results   []recordView `json:"results"`
	QueryTime int64        `json:"query_time_ms"`
	// DidYouMean suggests a category when the category filter is unknown.
	DidYouMean string `json:"did_you_mean,omitempty"`
}

type listResponseView struct {
	Total    int          `json:"total"`
	Audience string       `json:"audience,omitempty"`
	Records  []recordView `json:"records"`
}

func (s *Server) summary(r *models.SupportRecord, lang string) recordView {
	return recordView{
		ID:          r.ID,
		Name:        catalog.Name(r, lang),
		Description: catalog.Description(r, lang),
		Authority:   r.Authority,
		Audiences:   r.Audiences,
		Category:    r.Category,
		Region:      r.Region,
		Amount:      r.Amount,
		InfoURL:     r.InfoURL,
		Stale:       s.checker.Stale(r.LastVerified),
	}
}

func (s *Server) detail(r *models.SupportRecord, lang string) recordView {
	v := s.summary(r, lang)
	v.ApplyURL = r.ApplyURL
	v.Requirements = r.Requirements
	v.LastVerified = r.LastVerified
	return v
}
