package index

import (
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/graph"
	"go.uber.org/zap"
)

// Index bundles the three derived structures over one triple store. It is
// built once, after the store is fully assembled, and is read-only: any
// change to the underlying data requires a full rebuild.
type Index struct {
	store     *graph.TripleStore
	labels    *LabelIndex
	hierarchy *HierarchyIndex
	locality  *LocalityIndex
}

// Build derives all indices from a completed triple store. Malformed data
// (dangling or cyclic relations) never fails the build; only a missing or
// empty store does.
func Build(store *graph.TripleStore, log *zap.SugaredLogger) (*Index, error) {
	if store == nil || store.Len() == 0 {
		return nil, errors.Wrap(errors.ErrUnavailable, "cannot index an empty triple store")
	}

	idx := &Index{
		store:     store,
		labels:    buildLabelIndex(store),
		hierarchy: buildHierarchyIndex(store, log),
		locality:  buildLocalityIndex(store),
	}

	log.Infow("indices built",
		"statements", store.Len(),
		"entities", store.EntityCount(),
		"labels", len(idx.labels.entries),
	)
	return idx, nil
}

// Store returns the underlying triple store.
func (ix *Index) Store() *graph.TripleStore {
	return ix.store
}

// Labels returns the label index.
func (ix *Index) Labels() *LabelIndex {
	return ix.labels
}

// Hierarchy returns the hierarchy index.
func (ix *Index) Hierarchy() *HierarchyIndex {
	return ix.hierarchy
}

// Locality returns the locality index.
func (ix *Index) Locality() *LocalityIndex {
	return ix.locality
}

// Resolve maps a caller-supplied term to a single entity: by exact IRI,
// by prefixed IRI, by IRI local name, and finally by ranked label match.
// candidates reports how many entities were in contention so callers can
// disambiguate; ok is false when nothing matched (a normal empty result).
func (ix *Index) Resolve(term string) (iri string, candidates int, ok bool) {
	if rec, found := ix.store.Entity(term); found && rec.Declared {
		return rec.IRI, 1, true
	}
	if expanded := graph.Expand(term); expanded != term {
		if rec, found := ix.store.Entity(expanded); found && rec.Declared {
			return rec.IRI, 1, true
		}
	}
	if entries := ix.labels.matchLocalName(term); len(entries) > 0 {
		return entries[0].iri, len(entries), true
	}
	if matches := ix.labels.Match(term); len(matches) > 0 {
		return matches[0].IRI, len(matches), true
	}
	return "", 0, false
}
