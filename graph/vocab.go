package graph

import "strings"

// Recognized predicate IRIs. Labels and definitions are accumulated from
// both the RDFS and SKOS forms because FIBO uses them interchangeably.
const (
	RDFType         = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel       = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSComment     = "http://www.w3.org/2000/01/rdf-schema#comment"
	RDFSSubClassOf  = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RDFSIsDefinedBy = "http://www.w3.org/2000/01/rdf-schema#isDefinedBy"
	SKOSPrefLabel   = "http://www.w3.org/2004/02/skos/core#prefLabel"
	SKOSDefinition  = "http://www.w3.org/2004/02/skos/core#definition"
	OWLClass        = "http://www.w3.org/2002/07/owl#Class"
)

// Prefixes maps namespace IRIs to their conventional short prefixes,
// used to compact IRIs for display and locality strings.
var Prefixes = map[string]string{
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#":             "rdf:",
	"http://www.w3.org/2000/01/rdf-schema#":                   "rdfs:",
	"http://www.w3.org/2002/07/owl#":                          "owl:",
	"http://www.w3.org/2004/02/skos/core#":                    "skos:",
	"https://www.omg.org/spec/Commons/AnnotationVocabulary/":  "cmns-av:",
	"https://spec.edmcouncil.org/fibo/ontology/":              "fibo:",
}

// Compact rewrites a full IRI using the conventional prefix table.
// Unknown namespaces pass through unchanged.
func Compact(iri string) string {
	for full, prefix := range Prefixes {
		if strings.HasPrefix(iri, full) {
			return prefix + iri[len(full):]
		}
	}
	return iri
}

// Expand reverses Compact for a prefixed name like "fibo:FND/Accounting/X".
// Returns the input unchanged when the prefix is not recognized.
func Expand(curie string) string {
	i := strings.Index(curie, ":")
	if i < 0 {
		return curie
	}
	want := curie[:i+1]
	for full, prefix := range Prefixes {
		if prefix == want {
			return full + curie[i+1:]
		}
	}
	return curie
}

// LocalName returns the final path or fragment segment of an IRI, the short
// name an entity is commonly referred to by (e.g. "SovereignState").
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}

// ModulePath derives a module/namespace path from an entity IRI: the path
// portion between the recognized namespace and the local name. Returns ""
// when the IRI carries no module structure.
func ModulePath(iri string) string {
	for full := range Prefixes {
		if strings.HasPrefix(iri, full) {
			rest := iri[len(full):]
			if i := strings.LastIndexAny(rest, "#/"); i > 0 {
				return strings.TrimSuffix(rest[:i], "/")
			}
			return ""
		}
	}
	return ""
}
