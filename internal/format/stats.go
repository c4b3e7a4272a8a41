package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// Stats renders catalog statistics. The overview is always Swedish.
func Stats(st *models.CatalogStats) string {
	var b strings.Builder
	b.WriteString("# Stödlotsen — Databasstatistik\n\n")
	fmt.Fprintf(&b, "**Totalt:** %d stöd\n", st.Total)
	fmt.Fprintf(&b, "**Regionala:** %d\n", st.Regional)
	fmt.Fprintf(&b, "**Potentiellt inaktuella:** %d\n", st.Stale)
	fmt.Fprintf(&b, "**Översatta till engelska:** %d\n", st.TranslatedEN)
	fmt.Fprintf(&b, "**Översatta till arabiska:** %d\n\n", st.TranslatedAR)
	fmt.Fprintf(&b, "## Per kategori\n%s\n\n", counts(st.ByCategory))
	fmt.Fprintf(&b, "## Per målgrupp\n%s\n\n", counts(st.ByAudience))
	fmt.Fprintf(&b, "## Per myndighet\n%s", counts(st.ByAuthority))
	return b.String()
}

func counts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("  - %s: %d", k, m[k])
	}
	return strings.Join(lines, "\n")
}
