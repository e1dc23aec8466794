package graph

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fonto-dev/fonto/errors"
)

const (
	rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	rdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	rdfNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// malformedDateTime matches xsd:dateTime literals with single-digit month or
// day, which some published ontology files carry and strict parsers reject.
var malformedDateTime = regexp.MustCompile(`"(\d{4})-(\d{1,2})-(\d{1,2})T`)

// NormalizeDateLiterals zero-pads single-digit month and day components in
// dateTime literals so documents with sloppy timestamps still parse.
func NormalizeDateLiterals(src string) string {
	return malformedDateTime.ReplaceAllStringFunc(src, func(m string) string {
		parts := malformedDateTime.FindStringSubmatch(m)
		return `"` + parts[1] + "-" + pad2(parts[2]) + "-" + pad2(parts[3]) + "T"
	})
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseTurtle reads a Turtle document (including its N-Triples subset) into
// the store. docTag namespaces blank node labels so documents merged into
// one store cannot collide.
func ParseTurtle(r io.Reader, store *TripleStore, docTag string) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read document")
	}

	p := &ttlParser{
		src:    string(src),
		store:  store,
		prefix: make(map[string]string),
		docTag: docTag,
	}
	return p.parse()
}

type ttlParser struct {
	src    string
	pos    int
	store  *TripleStore
	prefix map[string]string
	base   string
	docTag string
	bnodes int
}

func (p *ttlParser) parse() error {
	for {
		p.skipWS()
		if p.pos >= len(p.src) {
			return nil
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
}

func (p *ttlParser) statement() error {
	switch {
	case p.hasKeyword("@prefix"), p.hasKeyword("PREFIX"):
		return p.prefixDirective()
	case p.hasKeyword("@base"), p.hasKeyword("BASE"):
		return p.baseDirective()
	}

	subj, err := p.term(false)
	if err != nil {
		return err
	}
	if subj.Kind != TermEntity {
		return p.errf("literal cannot be a subject")
	}
	if err := p.predicateObjectList(subj); err != nil {
		return err
	}
	return p.expect('.')
}

func (p *ttlParser) prefixDirective() error {
	sparqlForm := p.hasKeyword("PREFIX")
	p.skipKeyword()
	p.skipWS()

	colon := strings.IndexByte(p.src[p.pos:], ':')
	if colon < 0 {
		return p.errf("malformed prefix directive")
	}
	name := strings.TrimSpace(p.src[p.pos : p.pos+colon])
	p.pos += colon + 1

	p.skipWS()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.prefix[name] = iri

	if !sparqlForm {
		return p.expect('.')
	}
	return nil
}

func (p *ttlParser) baseDirective() error {
	sparqlForm := p.hasKeyword("BASE")
	p.skipKeyword()
	p.skipWS()
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.base = iri
	if !sparqlForm {
		return p.expect('.')
	}
	return nil
}

func (p *ttlParser) predicateObjectList(subj Term) error {
	for {
		p.skipWS()
		pred, err := p.verb()
		if err != nil {
			return err
		}
		if err := p.objectList(subj, pred); err != nil {
			return err
		}
		p.skipWS()
		if p.peek() != ';' {
			return nil
		}
		p.pos++
		p.skipWS()
		// Trailing semicolon before '.' or ']' is legal Turtle.
		if c := p.peek(); c == '.' || c == ']' {
			return nil
		}
	}
}

func (p *ttlParser) objectList(subj, pred Term) error {
	for {
		p.skipWS()
		obj, err := p.term(true)
		if err != nil {
			return err
		}
		p.store.Add(Statement{Subject: subj, Predicate: pred, Object: obj})
		p.skipWS()
		if p.peek() != ',' {
			return nil
		}
		p.pos++
	}
}

func (p *ttlParser) verb() (Term, error) {
	if p.peek() == 'a' && p.pos+1 < len(p.src) && isWS(p.src[p.pos+1]) {
		p.pos++
		return IRI(RDFType), nil
	}
	t, err := p.term(false)
	if err != nil {
		return Term{}, err
	}
	if t.Kind != TermEntity {
		return Term{}, p.errf("literal cannot be a predicate")
	}
	return t, nil
}

// term reads one subject/predicate/object term. Literals, bnode property
// lists, and collections are only legal where allowObject is true.
func (p *ttlParser) term(allowObject bool) (Term, error) {
	p.skipWS()
	if p.pos >= len(p.src) {
		return Term{}, p.errf("unexpected end of document")
	}

	switch c := p.src[p.pos]; {
	case c == '<':
		iri, err := p.iriRef()
		if err != nil {
			return Term{}, err
		}
		return IRI(iri), nil
	case c == '_':
		return p.blankLabel()
	case c == '[':
		return p.bnodePropertyList()
	case c == '(':
		if !allowObject {
			return Term{}, p.errf("collection not allowed here")
		}
		return p.collection()
	case c == '"' || c == '\'':
		if !allowObject {
			return Term{}, p.errf("literal not allowed here")
		}
		return p.literal()
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		if !allowObject {
			return Term{}, p.errf("numeric literal not allowed here")
		}
		return p.numericLiteral()
	case p.hasBareKeyword("true"), p.hasBareKeyword("false"):
		word := p.readWord()
		return Literal(word), nil
	default:
		return p.prefixedName()
	}
}

func (p *ttlParser) iriRef() (string, error) {
	if p.peek() != '<' {
		return "", p.errf("expected IRI")
	}
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return "", p.errf("unterminated IRI")
	}
	iri := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return p.resolve(iri), nil
}

func (p *ttlParser) resolve(iri string) string {
	if iri == "" {
		return p.base
	}
	if strings.Contains(iri, "://") || p.base == "" {
		return iri
	}
	if strings.HasPrefix(iri, "#") {
		return strings.TrimSuffix(p.base, "#") + iri
	}
	if strings.HasSuffix(p.base, "/") || strings.HasSuffix(p.base, "#") {
		return p.base + iri
	}
	return p.base + "/" + iri
}

func (p *ttlParser) blankLabel() (Term, error) {
	if !strings.HasPrefix(p.src[p.pos:], "_:") {
		return Term{}, p.errf("expected blank node label")
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isPNChar(c) || (c == '.' && p.pos+1 < len(p.src) && isPNChar(p.src[p.pos+1])) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if name == "" {
		return Term{}, p.errf("empty blank node label")
	}
	return IRI("_:" + p.docTag + "." + name), nil
}

func (p *ttlParser) freshBlank() Term {
	p.bnodes++
	return IRI(fmt.Sprintf("_:%s.g%d", p.docTag, p.bnodes))
}

func (p *ttlParser) bnodePropertyList() (Term, error) {
	p.pos++ // consume '['
	node := p.freshBlank()
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return node, nil
	}
	if err := p.predicateObjectList(node); err != nil {
		return Term{}, err
	}
	p.skipWS()
	if err := p.expect(']'); err != nil {
		return Term{}, err
	}
	return node, nil
}

func (p *ttlParser) collection() (Term, error) {
	p.pos++ // consume '('
	head := IRI(rdfNil)
	var tail Term
	for {
		p.skipWS()
		if p.peek() == ')' {
			p.pos++
			return head, nil
		}
		obj, err := p.term(true)
		if err != nil {
			return Term{}, err
		}
		cell := p.freshBlank()
		if head.Value == rdfNil {
			head = cell
		} else {
			p.store.Add(Statement{Subject: tail, Predicate: IRI(rdfRest), Object: cell})
		}
		p.store.Add(Statement{Subject: cell, Predicate: IRI(rdfFirst), Object: obj})
		tail = cell
	}
}

func (p *ttlParser) literal() (Term, error) {
	quote := p.src[p.pos]
	long := strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(quote), 3))

	var raw string
	if long {
		p.pos += 3
		end := strings.Index(p.src[p.pos:], strings.Repeat(string(quote), 3))
		if end < 0 {
			return Term{}, p.errf("unterminated long literal")
		}
		raw = p.src[p.pos : p.pos+end]
		p.pos += end + 3
	} else {
		p.pos++
		var sb strings.Builder
		for {
			if p.pos >= len(p.src) {
				return Term{}, p.errf("unterminated literal")
			}
			c := p.src[p.pos]
			if c == quote {
				p.pos++
				break
			}
			if c == '\\' && p.pos+1 < len(p.src) {
				sb.WriteByte(c)
				sb.WriteByte(p.src[p.pos+1])
				p.pos += 2
				continue
			}
			if c == '\n' {
				return Term{}, p.errf("newline in short literal")
			}
			sb.WriteByte(c)
			p.pos++
		}
		raw = sb.String()
	}

	value, err := unescapeLiteral(raw)
	if err != nil {
		return Term{}, p.errf("%v", err)
	}

	// Datatype and language tags are consumed but not retained: queries
	// operate on lexical forms only.
	if strings.HasPrefix(p.src[p.pos:], "^^") {
		p.pos += 2
		if p.peek() == '<' {
			if _, err := p.iriRef(); err != nil {
				return Term{}, err
			}
		} else {
			if _, err := p.prefixedName(); err != nil {
				return Term{}, err
			}
		}
	} else if p.peek() == '@' {
		p.pos++
		p.readWord()
	}

	return Literal(value), nil
}

func (p *ttlParser) numericLiteral() (Term, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' {
			// A dot followed by whitespace terminates the statement,
			// not the number.
			if c == '.' && (p.pos+1 >= len(p.src) || !isDigit(p.src[p.pos+1])) {
				break
			}
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return Term{}, p.errf("malformed numeric literal")
	}
	return Literal(p.src[start:p.pos]), nil
}

func (p *ttlParser) prefixedName() (Term, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isWS(c) || c == ';' || c == ',' || c == ')' || c == ']' || c == '"' || c == '\'' || c == '<' {
			break
		}
		if c == '.' && (p.pos+1 >= len(p.src) || !isPNChar(p.src[p.pos+1])) {
			break
		}
		p.pos++
	}
	name := p.src[start:p.pos]
	colon := strings.IndexByte(name, ':')
	if colon < 0 {
		return Term{}, p.errf("expected prefixed name, got %q", name)
	}
	ns, ok := p.prefix[name[:colon]]
	if !ok {
		return Term{}, p.errf("undeclared prefix %q", name[:colon])
	}
	return IRI(ns + name[colon+1:]), nil
}

func unescapeLiteral(raw string) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '"', '\'', '\\':
			sb.WriteByte(raw[i])
		case 'u', 'U':
			width := 4
			if raw[i] == 'U' {
				width = 8
			}
			if i+width >= len(raw) {
				return "", errors.New("truncated unicode escape")
			}
			code, err := strconv.ParseUint(raw[i+1:i+1+width], 16, 32)
			if err != nil {
				return "", errors.Wrap(err, "bad unicode escape")
			}
			sb.WriteRune(rune(code))
			i += width
		default:
			return "", errors.Newf("unknown escape \\%c", raw[i])
		}
	}
	return sb.String(), nil
}

func (p *ttlParser) hasKeyword(kw string) bool {
	return strings.HasPrefix(p.src[p.pos:], kw)
}

// hasBareKeyword matches kw only when it is not the start of a longer name
// or prefixed name (so "true" matches but "truest:x" does not).
func (p *ttlParser) hasBareKeyword(kw string) bool {
	if !strings.HasPrefix(p.src[p.pos:], kw) {
		return false
	}
	rest := p.src[p.pos+len(kw):]
	return rest == "" || (!isPNChar(rest[0]) && rest[0] != ':')
}

func (p *ttlParser) skipKeyword() {
	for p.pos < len(p.src) && !isWS(p.src[p.pos]) {
		p.pos++
	}
}

func (p *ttlParser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) && isPNChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *ttlParser) skipWS() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isWS(c) {
			p.pos++
			continue
		}
		if c == '#' {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		return
	}
}

func (p *ttlParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *ttlParser) expect(c byte) error {
	p.skipWS()
	if p.peek() != c {
		return p.errf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *ttlParser) errf(format string, args ...interface{}) error {
	line := 1 + strings.Count(p.src[:min(p.pos, len(p.src))], "\n")
	return errors.Newf("turtle: line %d: %s", line, fmt.Sprintf(format, args...))
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isPNChar(c byte) bool {
	return c == '_' || c == '-' || c == '%' || isDigit(c) ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
