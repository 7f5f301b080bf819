package suggest

import (
	"sort"
	"strings"

	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/match"
)

// Ranked is one matching entity with its score and highlight data.
type Ranked struct {
	Entity corpus.Entity
	Score  int
	// Positions are rune indices into Entity.Full from the primary match.
	Positions []int
	Substring bool
	// Highlighted is Entity.Full with every matched rune wrapped in markers.
	Highlighted string
}

// Options configures a Ranker.
type Options struct {
	Weights        match.Weights
	HighlightOpen  string
	HighlightClose string
	// CacheSize is the number of queries memoized. Zero disables caching.
	CacheSize int
}

// DefaultOptions returns the standard weights and HTML bold markers.
func DefaultOptions() Options {
	return Options{
		Weights:        match.DefaultWeights(),
		HighlightOpen:  "<b>",
		HighlightClose: "</b>",
		CacheSize:      256,
	}
}

// Ranker ranks a fixed entity scope.
type Ranker struct {
	entities []corpus.Entity
	matcher  *match.Matcher
	open     string
	close    string
	cache    *Cache
}

// NewRanker creates a ranker over entities. The slice must not be modified afterwards.
func NewRanker(entities []corpus.Entity, opts Options) *Ranker {
	r := &Ranker{
		entities: entities,
		matcher:  match.New(opts.Weights),
		open:     opts.HighlightOpen,
		close:    opts.HighlightClose,
	}
	if opts.CacheSize > 0 {
		r.cache = NewCache(opts.CacheSize)
	}
	return r
}

// Rank ranks entities against query with the default options and no cache.
func Rank(entities []corpus.Entity, query string) []Ranked {
	opts := DefaultOptions()
	opts.CacheSize = 0
	return NewRanker(entities, opts).Rank(query)
}

// Rank returns every entity matching query, best first.
// An empty query yields no results.
func (r *Ranker) Rank(query string) []Ranked {
	if query == "" {
		return nil
	}
	if r.cache != nil {
		if cached, ok := r.cache.Get(query); ok {
			return cached
		}
	}

	results := r.rank(query)
	if r.cache != nil {
		r.cache.Add(query, results)
	}
	return results
}

func (r *Ranker) rank(query string) []Ranked {
	var results []Ranked
	for _, e := range r.entities {
		primary := r.matcher.Match(e.Full, query)
		if !primary.Matched {
			continue
		}

		score := primary.Score
		if _, suffix, ok := strings.Cut(e.Full, "."); ok {
			if secondary := r.matcher.Match(suffix, query); secondary.Matched {
				score += secondary.Score
			}
		}

		results = append(results, Ranked{
			Entity:      e,
			Score:       score,
			Positions:   primary.Positions,
			Substring:   primary.Substring,
			Highlighted: match.Highlight(e.Full, primary.Positions, primary.Substring, r.open, r.close),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entity.Name < results[j].Entity.Name
	})
	return results
}

// Entities returns the ranked scope.
func (r *Ranker) Entities() []corpus.Entity {
	return r.entities
}

// Stats returns scope and cache counters.
func (r *Ranker) Stats() map[string]int {
	stats := map[string]int{"entities": len(r.entities)}
	if r.cache != nil {
		stats["cached_queries"] = r.cache.Len()
		stats["cache_hits"] = int(r.cache.Hits())
		stats["cache_misses"] = int(r.cache.Misses())
	}
	return stats
}
