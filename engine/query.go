package engine

import (
	"context"

	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/graph"
)

// Direction selects which way Hierarchy walks the is-a relation.
type Direction string

const (
	// Ancestors walks toward more general entities.
	Ancestors Direction = "ancestors"
	// Descendants walks toward more specific entities.
	Descendants Direction = "descendants"
)

// DefineResult is the resolved view of one entity.
type DefineResult struct {
	IRI         string   `json:"iri"`
	Labels      []string `json:"labels"`
	Definitions []string `json:"definitions"`
	Parents     []string `json:"parents"` // direct parents, by label
	Locality    string   `json:"locality,omitempty"`
	HasLocality bool     `json:"has_locality"`
	// Candidates is the number of entities the term could have resolved
	// to; values above 1 mean the caller may want to disambiguate via
	// Search.
	Candidates int `json:"candidates"`
}

// SearchHit is one ranked search result.
type SearchHit struct {
	IRI   string `json:"iri"`
	Label string `json:"label"`
	Rank  string `json:"rank"` // exact | case-insensitive | token | substring
}

// HierarchyNode is one traversal entry: an entity and its distance from
// the starting term.
type HierarchyNode struct {
	IRI   string `json:"iri"`
	Label string `json:"label"`
	Level int    `json:"level"`
}

// LocateResult carries only provenance: where in the ontology the entity
// was declared.
type LocateResult struct {
	IRI         string `json:"iri"`
	Locality    string `json:"locality,omitempty"`
	HasLocality bool   `json:"has_locality"`
}

// Define resolves a term to one entity. A nil result with a nil error
// means the term matched nothing — a normal empty result, not a failure.
func (e *Engine) Define(ctx context.Context, term string) (*DefineResult, error) {
	s, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	iri, candidates, ok := s.index.Resolve(term)
	if !ok {
		return nil, nil
	}
	rec, _ := s.index.Store().Entity(iri)

	parents := make([]string, 0, len(s.index.Hierarchy().Parents(iri)))
	for _, p := range s.index.Hierarchy().Parents(iri) {
		parents = append(parents, s.labelOf(p))
	}

	locality, hasLocality := s.index.Locality().Locality(iri)
	return &DefineResult{
		IRI:         graph.Compact(iri),
		Labels:      rec.Labels,
		Definitions: rec.Definitions,
		Parents:     parents,
		Locality:    locality,
		HasLocality: hasLocality,
		Candidates:  candidates,
	}, nil
}

// Search returns entities whose labels match query, best match first. The
// order is deterministic for identical inputs against an unchanged
// snapshot. limit must be positive; it is capped at the configured
// maximum. Pass 0 through the CLI default, not here.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgumentf("limit must be a positive integer, got %d", limit)
	}
	s, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	if max := e.cfg.Search.MaxLimit; max > 0 && limit > max {
		limit = max
	}

	matches := s.index.Labels().Match(query)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	hits := make([]SearchHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, SearchHit{
			IRI:   graph.Compact(m.IRI),
			Label: m.Label,
			Rank:  m.Rank.String(),
		})
	}
	return hits, nil
}

// Hierarchy resolves the term and walks the is-a relation breadth-first in
// the requested direction, up to depth levels. Cyclic data terminates via
// a visited set; no entity appears twice. A nil slice with nil error means
// the term matched nothing.
func (e *Engine) Hierarchy(ctx context.Context, term string, direction Direction, depth int) ([]HierarchyNode, error) {
	if direction != Ancestors && direction != Descendants {
		return nil, errors.InvalidArgumentf("direction must be %q or %q, got %q", Ancestors, Descendants, direction)
	}
	if depth <= 0 {
		return nil, errors.InvalidArgumentf("depth must be a positive integer, got %d", depth)
	}
	s, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	start, _, ok := s.index.Resolve(term)
	if !ok {
		return nil, nil
	}

	next := func(iri string) []string {
		if direction == Ancestors {
			return s.index.Hierarchy().Parents(iri)
		}
		return s.index.Hierarchy().Children(iri)
	}

	// Non-nil even when the walk finds nothing: a resolved entity with no
	// edges in range is an empty answer, distinct from an unresolved term.
	nodes := []HierarchyNode{}
	visited := map[string]struct{}{start: {}}
	frontier := []string{start}
	for level := 1; level <= depth && len(frontier) > 0; level++ {
		var following []string
		for _, iri := range frontier {
			for _, edge := range next(iri) {
				if _, seen := visited[edge]; seen {
					continue
				}
				visited[edge] = struct{}{}
				nodes = append(nodes, HierarchyNode{
					IRI:   graph.Compact(edge),
					Label: s.labelOf(edge),
					Level: level,
				})
				following = append(following, edge)
			}
		}
		frontier = following
	}
	return nodes, nil
}

// Locate resolves the term and returns its provenance only. A nil result
// with nil error means the term matched nothing.
func (e *Engine) Locate(ctx context.Context, term string) (*LocateResult, error) {
	s, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}

	iri, _, ok := s.index.Resolve(term)
	if !ok {
		return nil, nil
	}
	locality, hasLocality := s.index.Locality().Locality(iri)
	return &LocateResult{
		IRI:         graph.Compact(iri),
		Locality:    locality,
		HasLocality: hasLocality,
	}, nil
}

func (s *snapshot) labelOf(iri string) string {
	if rec, ok := s.index.Store().Entity(iri); ok {
		return rec.Label()
	}
	return graph.LocalName(iri)
}
