package catalog

import (
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// ComputeStats aggregates counts over records. Staleness is decided by checker.
func ComputeStats(records []*models.SupportRecord, checker *freshness.Checker) *models.CatalogStats {
	st := &models.CatalogStats{
		Total:       len(records),
		ByCategory:  map[string]int{},
		ByAudience:  map[string]int{},
		ByAuthority: map[string]int{},
	}
	for _, r := range records {
		st.ByCategory[r.CategoryOrDefault()]++
		for _, a := range r.Audiences {
			st.ByAudience[a]++
		}
		st.ByAuthority[r.Authority]++
		if !r.IsNational() {
			st.Regional++
		}
		if r.Localized(models.LangEnglish).Name != "" {
			st.TranslatedEN++
		}
		if r.Localized(models.LangArabic).Name != "" {
			st.TranslatedAR++
		}
		if checker.Stale(r.LastVerified) {
			st.Stale++
		}
	}
	return st
}
