package index

import (
	"strings"

	"github.com/fonto-dev/fonto/graph"
)

// LocalityIndex maps each entity to its source module path, used for
// provenance display only. Preference order: the compacted
// rdfs:isDefinedBy target, then the module structure of the entity IRI
// itself. Entities with neither have no locality.
type LocalityIndex struct {
	paths map[string]string
}

func buildLocalityIndex(store *graph.TripleStore) *LocalityIndex {
	idx := &LocalityIndex{paths: make(map[string]string)}

	store.EachEntity(func(rec *graph.EntityRecord) {
		if !rec.Declared {
			return
		}
		if rec.DefinedBy != "" {
			idx.paths[rec.IRI] = strings.TrimSuffix(graph.Compact(rec.DefinedBy), "/")
			return
		}
		if path := graph.ModulePath(rec.IRI); path != "" {
			idx.paths[rec.IRI] = path
		}
	})

	return idx
}

// Locality returns the module path for an entity. ok is false when the
// entity has no recorded locality; that is a normal condition, not an error.
func (li *LocalityIndex) Locality(iri string) (path string, ok bool) {
	path, ok = li.paths[iri]
	return path, ok
}
