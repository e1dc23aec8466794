package graph

// TripleStore is the merged, in-memory statement collection. It is built
// once during ingestion and read-only afterwards; the index builder and the
// query engine never mutate it.
type TripleStore struct {
	statements []Statement
	seen       map[string]struct{}
	entities   map[string]*EntityRecord
	order      []string // entity IRIs in first-seen order
}

// NewTripleStore returns an empty store.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		seen:     make(map[string]struct{}),
		entities: make(map[string]*EntityRecord),
	}
}

// Add merges one statement into the store. Duplicates are idempotent.
// Entity records are updated as a side effect: labels, definitions, parent
// relations, and locality accumulate in first-seen order.
func (ts *TripleStore) Add(st Statement) {
	if st.Subject.Kind != TermEntity || st.Predicate.Kind != TermEntity {
		return
	}
	key := st.key()
	if _, dup := ts.seen[key]; dup {
		return
	}
	ts.seen[key] = struct{}{}
	ts.statements = append(ts.statements, st)

	subj := ts.touch(st.Subject.Value)
	subj.Declared = true
	if st.Object.Kind == TermEntity && !st.Object.IsBlank() {
		ts.touch(st.Object.Value)
	}

	switch st.Predicate.Value {
	case RDFSLabel, SKOSPrefLabel:
		if st.Object.Kind == TermLiteral {
			subj.addLabel(st.Object.Value)
		}
	case SKOSDefinition, RDFSComment:
		if st.Object.Kind == TermLiteral {
			subj.addDefinition(st.Object.Value)
		}
	case RDFSSubClassOf:
		if st.Object.Kind == TermEntity && !st.Object.IsBlank() {
			subj.addParent(st.Object.Value)
		}
	case RDFSIsDefinedBy:
		if st.Object.Kind == TermEntity && subj.DefinedBy == "" {
			subj.DefinedBy = st.Object.Value
		}
	}
}

// touch returns the entity record for iri, creating it on first sight.
func (ts *TripleStore) touch(iri string) *EntityRecord {
	if rec, ok := ts.entities[iri]; ok {
		return rec
	}
	rec := &EntityRecord{
		IRI:        iri,
		Ordinal:    len(ts.order),
		labelSeen:  make(map[string]struct{}),
		defSeen:    make(map[string]struct{}),
		parentSeen: make(map[string]struct{}),
	}
	ts.entities[iri] = rec
	ts.order = append(ts.order, iri)
	return rec
}

func (e *EntityRecord) addLabel(label string) {
	if _, ok := e.labelSeen[label]; ok {
		return
	}
	e.labelSeen[label] = struct{}{}
	e.Labels = append(e.Labels, label)
}

func (e *EntityRecord) addDefinition(def string) {
	if _, ok := e.defSeen[def]; ok {
		return
	}
	e.defSeen[def] = struct{}{}
	e.Definitions = append(e.Definitions, def)
}

func (e *EntityRecord) addParent(iri string) {
	if _, ok := e.parentSeen[iri]; ok {
		return
	}
	e.parentSeen[iri] = struct{}{}
	e.Parents = append(e.Parents, iri)
}

// Len returns the number of distinct statements.
func (ts *TripleStore) Len() int {
	return len(ts.statements)
}

// Statements returns the statement slice in insertion order. Callers must
// not modify it.
func (ts *TripleStore) Statements() []Statement {
	return ts.statements
}

// Entity returns the merged record for an IRI.
func (ts *TripleStore) Entity(iri string) (*EntityRecord, bool) {
	rec, ok := ts.entities[iri]
	return rec, ok
}

// EntityCount returns the number of distinct entities seen as a subject or
// non-blank object.
func (ts *TripleStore) EntityCount() int {
	return len(ts.order)
}

// EachEntity visits entity records in first-seen order.
func (ts *TripleStore) EachEntity(fn func(*EntityRecord)) {
	for _, iri := range ts.order {
		fn(ts.entities[iri])
	}
}
