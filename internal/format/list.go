package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// List renders records grouped by category. audience is the already
// applied filter and only appears in the header.
func (f *Formatter) List(records []*models.SupportRecord, audience, lang string) string {
	l, lang := labelsFor(lang)
	if len(records) == 0 {
		return l.listEmpty
	}

	sorted := append([]*models.SupportRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CategoryOrDefault() < sorted[j].CategoryOrDefault()
	})

	lines := make([]string, 0, len(sorted)*2)
	current := ""
	for _, r := range sorted {
		if heading := capitalize(r.CategoryOrDefault()); heading != current {
			current = heading
			lines = append(lines, "\n## "+current)
		}
		region := ""
		if !r.IsNational() {
			region = " 📍" + r.Region
		}
		lines = append(lines, fmt.Sprintf("- **%s**%s%s (%s) — %s [ID: %s]",
			catalog.Name(r, lang), f.flag(r), region, r.Authority, catalog.Description(r, lang), r.ID))
	}

	header := fmt.Sprintf(l.listTotal, len(records))
	if audience != "" {
		header += fmt.Sprintf(l.listFilter, audience)
	}
	return header + ":\n" + strings.Join(lines, "\n")
}
