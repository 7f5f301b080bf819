package suggest

const (
	// GlobalLimit caps the global search list.
	GlobalLimit = 32
	// NoLimit disables truncation, used by inline package filtering.
	NoLimit = 0
)

// Page is the visible part of a ranked result set.
type Page struct {
	Results []Ranked
	// Found is the number of matches before truncation.
	Found int
	// Shown is len(Results).
	Shown int
}

// Window truncates ranked to at most limit entries. A limit <= 0 keeps all.
func Window(ranked []Ranked, limit int) Page {
	found := len(ranked)
	shown := found
	if limit > 0 && shown > limit {
		shown = limit
	}
	return Page{Results: ranked[:shown], Found: found, Shown: shown}
}

// InlineOrder maps entity names to their display order for inline filtering.
// Better matches get lower values; names absent from the map are hidden.
// When a name appears more than once its best score wins.
func InlineOrder(ranked []Ranked) map[string]int {
	order := make(map[string]int, len(ranked))
	for _, r := range ranked {
		if _, seen := order[r.Entity.Name]; seen {
			continue
		}
		order[r.Entity.Name] = -r.Score
	}
	return order
}
