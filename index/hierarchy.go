package index

import (
	"github.com/fonto-dev/fonto/graph"
	"go.uber.org/zap"
)

// HierarchyIndex resolves direct parents and direct children per entity.
// The store only carries the forward is-a direction; children are derived
// here as its inverse. Dangling parent references (targets never declared
// by any source document) are dropped with a warning.
type HierarchyIndex struct {
	parents  map[string][]string
	children map[string][]string
}

func buildHierarchyIndex(store *graph.TripleStore, log *zap.SugaredLogger) *HierarchyIndex {
	idx := &HierarchyIndex{
		parents:  make(map[string][]string),
		children: make(map[string][]string),
	}

	dangling := 0
	store.EachEntity(func(rec *graph.EntityRecord) {
		for _, parent := range rec.Parents {
			target, ok := store.Entity(parent)
			if !ok || !target.Declared {
				dangling++
				continue
			}
			idx.parents[rec.IRI] = append(idx.parents[rec.IRI], parent)
			idx.children[parent] = append(idx.children[parent], rec.IRI)
		}
	})

	if dangling > 0 {
		log.Warnw("dropped dangling parent references", "count", dangling)
	}
	return idx
}

// Parents returns the direct parents of an entity in declaration order.
func (hi *HierarchyIndex) Parents(iri string) []string {
	return hi.parents[iri]
}

// Children returns the direct children of an entity in first-seen order.
func (hi *HierarchyIndex) Children(iri string) []string {
	return hi.children[iri]
}
