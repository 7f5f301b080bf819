package corpus

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Index maps full names to entity positions using a patricia trie.
// Several entities may share a full name, so every item is a []int.
type Index struct {
	trie        *patricia.Trie
	unqualified []int
	entities    []Entity
}

func newIndex(entities []Entity) *Index {
	idx := &Index{trie: patricia.NewTrie(), entities: entities}
	for i, e := range entities {
		if e.Qualifier == "" {
			idx.unqualified = append(idx.unqualified, i)
		}
		key := patricia.Prefix(e.Full)
		if item := idx.trie.Get(key); item != nil {
			idx.trie.Set(key, append(item.([]int), i))
			continue
		}
		idx.trie.Insert(key, []int{i})
	}
	return idx
}

// Lookup returns the positions of entities named full.
func (x *Index) Lookup(full string) []int {
	item := x.trie.Get(patricia.Prefix(full))
	if item == nil {
		return nil
	}
	return item.([]int)
}

// Qualified returns the positions of entities qualified by q, ascending.
func (x *Index) Qualified(q string) []int {
	if q == "" {
		return x.unqualified
	}
	var out []int
	_ = x.trie.VisitSubtree(patricia.Prefix(q+"."), func(_ patricia.Prefix, item patricia.Item) error {
		for _, i := range item.([]int) {
			if x.entities[i].Qualifier == q {
				out = append(out, i)
			}
		}
		return nil
	})
	sort.Ints(out)
	return out
}
