package graph

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fonto-dev/fonto/errors"
)

const (
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS = "http://www.w3.org/XML/1998/namespace"
)

// ParseRDFXML reads an RDF/XML document into the store. It covers the
// subset published ontologies actually use: rdf:Description and typed node
// elements, rdf:about/rdf:ID/rdf:nodeID, rdf:resource property elements,
// literal property elements with xml:lang and rdf:datatype, nested node
// elements, and rdf:parseType="Resource". rdf:parseType="Collection" and
// "Literal" subtrees are consumed without emitting statements.
func ParseRDFXML(r io.Reader, store *TripleStore, docTag string) error {
	p := &rdfxmlParser{
		dec:    xml.NewDecoder(r),
		store:  store,
		docTag: docTag,
	}
	return p.parse()
}

type rdfxmlParser struct {
	dec    *xml.Decoder
	store  *TripleStore
	docTag string
	base   string
	bnodes int
}

func (p *rdfxmlParser) parse() error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "rdfxml: malformed document")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		p.captureBase(start)
		if start.Name.Space == rdfNS && start.Name.Local == "RDF" {
			return p.nodeElements(start.Name)
		}
		// A document whose root is itself a node element.
		if _, err := p.nodeElement(start); err != nil {
			return err
		}
	}
}

// nodeElements consumes children of rdf:RDF until its end tag.
func (p *rdfxmlParser) nodeElements(parent xml.Name) error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "rdfxml: malformed document")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := p.nodeElement(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == parent {
				return nil
			}
		}
	}
}

// nodeElement parses one resource description and returns its subject term.
func (p *rdfxmlParser) nodeElement(start xml.StartElement) (Term, error) {
	p.captureBase(start)
	subj := p.subjectOf(start)

	// A typed node element asserts rdf:type from its element name.
	if !(start.Name.Space == rdfNS && start.Name.Local == "Description") {
		p.store.Add(Statement{
			Subject:   subj,
			Predicate: IRI(RDFType),
			Object:    IRI(start.Name.Space + start.Name.Local),
		})
	}

	// Non-syntax attributes are shorthand for literal properties.
	for _, attr := range start.Attr {
		if isSyntaxAttr(attr.Name) {
			continue
		}
		p.store.Add(Statement{
			Subject:   subj,
			Predicate: IRI(attr.Name.Space + attr.Name.Local),
			Object:    Literal(attr.Value),
		})
	}

	if err := p.propertyElements(subj, start.Name); err != nil {
		return Term{}, err
	}
	return subj, nil
}

// propertyElements consumes property children until the node's end tag.
func (p *rdfxmlParser) propertyElements(subj Term, parent xml.Name) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return errors.Wrap(err, "rdfxml: malformed document")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.propertyElement(subj, t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == parent {
				return nil
			}
		}
	}
}

func (p *rdfxmlParser) propertyElement(subj Term, start xml.StartElement) error {
	p.captureBase(start)
	pred := IRI(start.Name.Space + start.Name.Local)

	var resource, nodeID, parseType string
	for _, attr := range start.Attr {
		if attr.Name.Space != rdfNS {
			continue
		}
		switch attr.Name.Local {
		case "resource":
			resource = attr.Value
		case "nodeID":
			nodeID = attr.Value
		case "parseType":
			parseType = attr.Value
		}
	}

	switch {
	case resource != "":
		p.store.Add(Statement{Subject: subj, Predicate: pred, Object: IRI(p.resolve(resource))})
		return p.dec.Skip()
	case nodeID != "":
		p.store.Add(Statement{Subject: subj, Predicate: pred, Object: p.labeledBlank(nodeID)})
		return p.dec.Skip()
	case parseType == "Resource":
		blank := p.freshBlank()
		p.store.Add(Statement{Subject: subj, Predicate: pred, Object: blank})
		return p.propertyElements(blank, start.Name)
	case parseType != "":
		// Collection and Literal content carry no queryable statements.
		return p.dec.Skip()
	}

	// Either a text literal or a nested node element.
	var text strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return errors.Wrap(err, "rdfxml: malformed document")
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			obj, err := p.nodeElement(t)
			if err != nil {
				return err
			}
			p.store.Add(Statement{Subject: subj, Predicate: pred, Object: obj})
			// Consume the property's own end tag.
			if err := p.dec.Skip(); err != nil {
				return errors.Wrap(err, "rdfxml: malformed document")
			}
			return nil
		case xml.EndElement:
			if t.Name == start.Name {
				p.store.Add(Statement{
					Subject:   subj,
					Predicate: pred,
					Object:    Literal(strings.TrimSpace(text.String())),
				})
				return nil
			}
		}
	}
}

// subjectOf determines the subject term from rdf:about, rdf:ID, or
// rdf:nodeID, falling back to a fresh blank node.
func (p *rdfxmlParser) subjectOf(start xml.StartElement) Term {
	for _, attr := range start.Attr {
		if attr.Name.Space != rdfNS {
			continue
		}
		switch attr.Name.Local {
		case "about":
			return IRI(p.resolve(attr.Value))
		case "ID":
			return IRI(p.resolve("#" + attr.Value))
		case "nodeID":
			return p.labeledBlank(attr.Value)
		}
	}
	return p.freshBlank()
}

func (p *rdfxmlParser) captureBase(start xml.StartElement) {
	for _, attr := range start.Attr {
		if isXMLSpace(attr.Name.Space) && attr.Name.Local == "base" {
			p.base = attr.Value
		}
	}
}

// isXMLSpace matches the reserved xml prefix, which encoding/xml reports as
// the literal prefix rather than its namespace IRI.
func isXMLSpace(space string) bool {
	return space == "xml" || space == xmlNS
}

func (p *rdfxmlParser) resolve(ref string) string {
	if ref == "" {
		return p.base
	}
	if strings.Contains(ref, "://") || p.base == "" {
		return ref
	}
	if strings.HasPrefix(ref, "#") {
		return strings.TrimSuffix(p.base, "#") + ref
	}
	if strings.HasSuffix(p.base, "/") || strings.HasSuffix(p.base, "#") {
		return p.base + ref
	}
	return p.base + "/" + ref
}

func (p *rdfxmlParser) labeledBlank(name string) Term {
	return IRI("_:" + p.docTag + "." + name)
}

func (p *rdfxmlParser) freshBlank() Term {
	p.bnodes++
	return IRI(fmt.Sprintf("_:%s.x%d", p.docTag, p.bnodes))
}

func isSyntaxAttr(name xml.Name) bool {
	if name.Space == rdfNS || isXMLSpace(name.Space) || name.Space == "xmlns" {
		return true
	}
	return name.Space == "" && name.Local == "xmlns"
}
