package reconcile

import "github.com/capitolworks/legisync/pkg/legis"

// titlePriority orders title types from most to least preferred when
// selecting a bill's primary display title.
var titlePriority = []string{"short", "popular", "official"}

// PrimaryTitle selects the primary display title from a bill's ordered
// title sequence. The rule is a deterministic total function of the
// sequence: the last non-empty title of the most preferred type present
// wins (later titles reflect later legislative stages), preferring
// short over popular over official; if no title of a known type has
// text, the last non-empty title of any type is used; an empty sequence
// yields an empty title.
func PrimaryTitle(titles []legis.BillTitle) string {
	byType := make(map[string]string, len(titles))
	lastNonEmpty := ""
	for _, title := range titles {
		if title.Text == "" {
			continue
		}
		byType[title.Type] = title.Text
		lastNonEmpty = title.Text
	}

	for _, typ := range titlePriority {
		if text, ok := byType[typ]; ok {
			return text
		}
	}
	return lastNonEmpty
}
