package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// turkishLower folds Turkish text correctly: dotted/dotless I casing
// ("İlkadım" to "ilkadım") breaks under strings.ToLower. A Caser is
// stateful, so one is built per call rather than shared.
func turkishLower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// FilterOptions restricts the final lead set. Zero values disable the
// corresponding predicate.
type FilterOptions struct {
	MinRating    float64
	MinReviews   int
	NameContains string
}

// ApplyFilters returns the leads passing every enabled predicate. The
// input order is preserved; the input slice is not modified.
func ApplyFilters(leads []model.Lead, opts FilterOptions) []model.Lead {
	needle := turkishLower(strings.TrimSpace(opts.NameContains))

	var out []model.Lead
	for _, lead := range leads {
		if opts.MinRating > 0 && lead.Rating < opts.MinRating {
			continue
		}
		if opts.MinReviews > 0 && lead.ReviewCount < opts.MinReviews {
			continue
		}
		if needle != "" && !strings.Contains(turkishLower(lead.Name), needle) {
			continue
		}
		out = append(out, lead)
	}
	return out
}

// SortKey selects the lead sort order.
type SortKey string

const (
	SortByName    SortKey = "name"    // A to Z, Turkish collation by lowered name
	SortByRating  SortKey = "rating"  // highest first
	SortByReviews SortKey = "reviews" // most reviewed first
)

// SortLeads sorts leads in place, stably, by the given key. Unknown
// keys leave the order untouched.
func SortLeads(leads []model.Lead, key SortKey) {
	switch key {
	case SortByName:
		sort.SliceStable(leads, func(i, j int) bool {
			return turkishLower(leads[i].Name) < turkishLower(leads[j].Name)
		})
	case SortByRating:
		sort.SliceStable(leads, func(i, j int) bool {
			return leads[i].Rating > leads[j].Rating
		})
	case SortByReviews:
		sort.SliceStable(leads, func(i, j int) bool {
			return leads[i].ReviewCount > leads[j].ReviewCount
		})
	}
}
