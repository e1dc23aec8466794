// Package graph holds the parsed representation of the ontology: an
// immutable in-memory collection of subject-predicate-object statements,
// plus the parsers and serializer for its text formats.
package graph

// TermKind tags a graph element as identifier-bearing or value-bearing.
// Traversal logic dispatches on this tag.
type TermKind uint8

const (
	// TermEntity is an IRI-identified node (or a blank node).
	TermEntity TermKind = iota
	// TermLiteral is a plain value: text, number, date.
	TermLiteral
)

// Term is one element of a statement.
type Term struct {
	Kind  TermKind
	Value string // IRI for entities, lexical form for literals
}

// IRI returns an entity term.
func IRI(v string) Term {
	return Term{Kind: TermEntity, Value: v}
}

// Literal returns a literal term.
func Literal(v string) Term {
	return Term{Kind: TermLiteral, Value: v}
}

// IsEntity reports whether the term is identifier-bearing.
func (t Term) IsEntity() bool {
	return t.Kind == TermEntity
}

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool {
	return t.Kind == TermEntity && len(t.Value) > 1 && t.Value[0] == '_' && t.Value[1] == ':'
}

// Statement is one (subject, predicate, object) fact. Statements are
// immutable once loaded; loading the same statement twice is a no-op.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (s Statement) key() string {
	// Object kind is part of the key: <x> as IRI and "x" as literal are
	// distinct facts.
	sep := "\x1f"
	kind := "e"
	if s.Object.Kind == TermLiteral {
		kind = "l"
	}
	return s.Subject.Value + sep + s.Predicate.Value + sep + kind + sep + s.Object.Value
}

// EntityRecord is the merged view of one entity across all source documents.
// Sequences preserve first-seen order; merging is union, never overwrite.
type EntityRecord struct {
	IRI         string
	Ordinal     int      // first-seen ingestion order, used as ranking tie-break
	Labels      []string // rdfs:label, skos:prefLabel
	Definitions []string // skos:definition, rdfs:comment
	Parents     []string // rdfs:subClassOf targets, declared direction only
	DefinedBy   string   // rdfs:isDefinedBy target, first one wins
	Declared    bool     // appeared as the subject of at least one statement

	labelSeen  map[string]struct{}
	defSeen    map[string]struct{}
	parentSeen map[string]struct{}
}

// Label returns the entity's primary label, or its IRI local name when no
// label was declared.
func (e *EntityRecord) Label() string {
	if len(e.Labels) > 0 {
		return e.Labels[0]
	}
	return LocalName(e.IRI)
}
