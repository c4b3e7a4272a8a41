package format

import (
	"fmt"
	"strings"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// Details renders every field of r in lang.
func (f *Formatter) Details(r *models.SupportRecord, lang string) string {
	l, lang := labelsFor(lang)

	requirements := make([]string, 0, len(r.Requirements))
	for _, req := range r.Requirements {
		requirements = append(requirements, "  • "+req)
	}
	lastVerified := r.LastVerified
	if lastVerified == "" {
		lastVerified = "?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", catalog.Name(r, lang))
	fmt.Fprintf(&b, "**%s:** %s\n", l.Authority, r.Authority)
	fmt.Fprintf(&b, "**%s:** %s\n", l.Audience, strings.Join(r.Audiences, ", "))
	fmt.Fprintf(&b, "**%s:** %s\n", l.Category, orDash(r.Category))
	fmt.Fprintf(&b, "**%s:** %s\n\n", l.Region, orDash(r.Region))
	fmt.Fprintf(&b, "## %s\n%s\n\n", l.Description, catalog.Description(r, lang))
	fmt.Fprintf(&b, "## %s\n%s\n\n", l.Requirements, strings.Join(requirements, "\n"))
	fmt.Fprintf(&b, "## %s\n%s\n\n", l.Amount, r.Amount)
	fmt.Fprintf(&b, "## %s\n", l.Links)
	fmt.Fprintf(&b, "- %s: %s\n", l.Apply, orDash(r.ApplyURL))
	fmt.Fprintf(&b, "- %s: %s\n\n", l.MoreInfo, orDash(r.InfoURL))
	fmt.Fprintf(&b, "%s: %s", l.LastVerified, lastVerified)
	if f.flag(r) != "" {
		b.WriteString("\n\n" + l.Outdated)
	}
	return b.String()
}

// NotFound is the message for an unknown record id.
func NotFound(id, lang string) string {
	l, _ := labelsFor(lang)
	return fmt.Sprintf(l.notFound, id)
}
