package format

import (
	"fmt"
	"strings"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// SearchResults renders a search response in lang.
func (f *Formatter) SearchResults(resp *models.SearchResponse, lang string) string {
	l, lang := labelsFor(lang)
	if resp.Empty() {
		if resp != nil && resp.Suggestion != "" {
			return l.noMatches + "\n\n" + fmt.Sprintf(l.didYouMean, resp.Suggestion)
		}
		return l.noMatches
	}

	blocks := make([]string, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		r := h.Record
		var b strings.Builder
		fmt.Fprintf(&b, "### %s%s\n", catalog.Name(r, lang), f.flag(r))
		fmt.Fprintf(&b, "**%s:** %s\n", l.Authority, r.Authority)
		fmt.Fprintf(&b, "**%s:** %s\n", l.Audience, strings.Join(r.Audiences, ", "))
		fmt.Fprintf(&b, "**%s:** %s\n", l.Description, catalog.Description(r, lang))
		fmt.Fprintf(&b, "**%s:** %s\n", l.Amount, r.Amount)
		fmt.Fprintf(&b, "**%s:** %s\n", l.MoreInfo, orDash(r.InfoURL))
		fmt.Fprintf(&b, "**ID:** %s", r.ID)
		blocks = append(blocks, b.String())
	}
	return l.foundHeader(resp.Total, resp.Shown()) + "\n\n" + strings.Join(blocks, "\n\n---\n\n")
}
