package search

import (
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// audienceSynonyms maps English audience words to catalog values.
var audienceSynonyms = map[string]string{
	"individual": models.AudienceIndividual,
	"person":     models.AudienceIndividual,
	"business":   models.AudienceBusiness,
}

// CanonicalAudience maps an audience filter to its catalog value.
// Unknown values pass through unchanged.
func CanonicalAudience(audience string) string {
	if v, ok := audienceSynonyms[strings.ToLower(strings.TrimSpace(audience))]; ok {
		return v
	}
	return strings.TrimSpace(audience)
}

// Filter holds the hard constraints of a query. Empty fields do not constrain.
type Filter struct {
	Audience string
	Category string
	Region   string
	// NationalRegions match any non-empty region filter.
	NationalRegions []string
}

// NewFilter builds a Filter from q.
func NewFilter(q *models.SearchQuery, nationalRegions []string) Filter {
	return Filter{
		Audience:        CanonicalAudience(q.Audience),
		Category:        strings.TrimSpace(q.Category),
		Region:          strings.TrimSpace(q.Region),
		NationalRegions: nationalRegions,
	}
}

// Matches reports whether r satisfies every constraint.
func (f Filter) Matches(r *models.SupportRecord) bool {
	if f.Audience != "" && !r.HasAudience(f.Audience) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	if f.Region != "" && !f.regionMatches(r.Region) {
		return false
	}
	return true
}

func (f Filter) regionMatches(region string) bool {
	if strings.Contains(strings.ToLower(region), strings.ToLower(f.Region)) {
		return true
	}
	for _, n := range f.NationalRegions {
		if n != "" && strings.EqualFold(strings.TrimSpace(region), n) {
			return true
		}
	}
	return false
}

// Apply returns the records that match, keeping their order.
func (f Filter) Apply(records []*models.SupportRecord) []*models.SupportRecord {
	out := make([]*models.SupportRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
