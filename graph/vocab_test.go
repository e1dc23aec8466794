package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactAndExpand(t *testing.T) {
	tests := []struct {
		iri     string
		compact string
	}{
		{"http://www.w3.org/2000/01/rdf-schema#label", "rdfs:label"},
		{"http://www.w3.org/2004/02/skos/core#definition", "skos:definition"},
		{"https://spec.edmcouncil.org/fibo/ontology/BE/LegalEntities/LegalPersons/LegalPerson", "fibo:BE/LegalEntities/LegalPersons/LegalPerson"},
		{"http://example.org/unknown", "http://example.org/unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.compact, Compact(tt.iri))
		assert.Equal(t, tt.iri, Expand(tt.compact))
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		iri      string
		expected string
	}{
		{"https://spec.edmcouncil.org/fibo/ontology/BE/SovereignState", "SovereignState"},
		{"http://www.w3.org/2000/01/rdf-schema#label", "label"},
		{"plainname", "plainname"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LocalName(tt.iri))
	}
}

func TestModulePath(t *testing.T) {
	assert.Equal(t, "BE/LegalEntities/LegalPersons",
		ModulePath("https://spec.edmcouncil.org/fibo/ontology/BE/LegalEntities/LegalPersons/LegalPerson"))
	assert.Equal(t, "", ModulePath("http://example.org/X"))
	assert.Equal(t, "", ModulePath("https://spec.edmcouncil.org/fibo/ontology/TopLevel"))
}
