// Package index derives the read-only secondary structures the query engine
// runs against: a ranked label index, a hierarchy index, and a locality
// index. All three are computed in one pass over a completed triple store
// and never mutated afterwards.
package index

import (
	"sort"
	"strings"

	"github.com/fonto-dev/fonto/graph"
)

// MatchRank orders match quality. Higher is better.
type MatchRank int

const (
	RankNone MatchRank = iota
	RankSubstring
	RankToken
	RankFold // case-insensitive exact
	RankExact
)

func (r MatchRank) String() string {
	switch r {
	case RankExact:
		return "exact"
	case RankFold:
		return "case-insensitive"
	case RankToken:
		return "token"
	case RankSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Match is one ranked label-index hit.
type Match struct {
	IRI     string
	Label   string
	Rank    MatchRank
	ordinal int
}

type labelEntry struct {
	iri     string
	label   string
	folded  string
	ordinal int
}

// LabelIndex maps label text to entity identifiers, supporting exact,
// case-insensitive exact, token, and substring matching.
type LabelIndex struct {
	exact      map[string][]labelEntry
	folded     map[string][]labelEntry
	tokens     map[string][]labelEntry
	localNames map[string][]labelEntry
	entries    []labelEntry
}

func buildLabelIndex(store *graph.TripleStore) *LabelIndex {
	idx := &LabelIndex{
		exact:      make(map[string][]labelEntry),
		folded:     make(map[string][]labelEntry),
		tokens:     make(map[string][]labelEntry),
		localNames: make(map[string][]labelEntry),
	}

	store.EachEntity(func(rec *graph.EntityRecord) {
		if !rec.Declared {
			return
		}
		local := labelEntry{
			iri:     rec.IRI,
			label:   rec.Label(),
			folded:  fold(graph.LocalName(rec.IRI)),
			ordinal: rec.Ordinal,
		}
		idx.localNames[local.folded] = append(idx.localNames[local.folded], local)

		for _, label := range rec.Labels {
			e := labelEntry{
				iri:     rec.IRI,
				label:   label,
				folded:  fold(label),
				ordinal: rec.Ordinal,
			}
			idx.entries = append(idx.entries, e)
			idx.exact[label] = append(idx.exact[label], e)
			idx.folded[e.folded] = append(idx.folded[e.folded], e)
			for _, tok := range strings.Fields(e.folded) {
				idx.tokens[tok] = append(idx.tokens[tok], e)
			}
		}
	})

	return idx
}

// Match returns all entities whose labels match query, best rank first,
// ties broken by first-seen ingestion order. Each entity appears once, at
// its best rank.
func (li *LabelIndex) Match(query string) []Match {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	fq := fold(q)

	best := make(map[string]Match)
	consider := func(e labelEntry, rank MatchRank) {
		if prev, ok := best[e.iri]; ok && prev.Rank >= rank {
			return
		}
		best[e.iri] = Match{IRI: e.iri, Label: e.label, Rank: rank, ordinal: e.ordinal}
	}

	for _, e := range li.exact[q] {
		consider(e, RankExact)
	}
	for _, e := range li.folded[fq] {
		consider(e, RankFold)
	}
	for _, e := range li.tokens[fq] {
		consider(e, RankToken)
	}
	for _, e := range li.entries {
		if strings.Contains(e.folded, fq) {
			consider(e, RankSubstring)
		}
	}

	matches := make([]Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Rank != matches[j].Rank {
			return matches[i].Rank > matches[j].Rank
		}
		return matches[i].ordinal < matches[j].ordinal
	})
	return matches
}

// matchLocalName returns entities whose IRI local name equals term,
// case-insensitively, in first-seen order.
func (li *LabelIndex) matchLocalName(term string) []labelEntry {
	entries := li.localNames[fold(term)]
	sorted := make([]labelEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ordinal < sorted[j].ordinal })
	return sorted
}

// fold normalizes label text for case-insensitive comparison: lowercase
// with whitespace runs collapsed to single spaces.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
