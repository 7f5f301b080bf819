/*
Package suggest ranks corpus entities against a query and windows the results.

Rank is the pure entry point: it matches every entity's full name, adds the
score of a second match on the unqualified part when the name is qualified,
drops non-matches and orders the rest by score (descending) then name
(ascending). Equal keys keep corpus order.

A Ranker binds Rank to one entity scope, one set of matcher weights and one
pair of highlight markers, and memoizes results per query in an LRU cache.
Cached and uncached calls return identical results.

	opts := suggest.DefaultOptions()
	opts.CacheSize = 1024
	r := suggest.NewRanker(c.Entities(), opts)
	page := suggest.Window(r.Rank("tolo"), 32)
*/
package suggest

import "github.com/bastiangx/symserve/pkg/corpus"

// IRanker defines the interface sessions rank through
type IRanker interface {
	// Rank returns every matching entity in display order
	Rank(query string) []Ranked

	// Entities returns the scope being ranked
	Entities() []corpus.Entity

	// Stats returns counters about the scope and cache
	Stats() map[string]int
}
