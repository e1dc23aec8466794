package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteNTriples serializes the store as N-Triples, one statement per line in
// insertion order. The output parses back via ParseTurtle, and a store
// rebuilt from it is statement-for-statement identical.
func WriteNTriples(ts *TripleStore, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, st := range ts.Statements() {
		if _, err := fmt.Fprintf(bw, "%s %s %s .\n",
			formatEntity(st.Subject),
			formatEntity(st.Predicate),
			formatTerm(st.Object),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatEntity(t Term) string {
	if t.IsBlank() {
		return t.Value
	}
	return "<" + t.Value + ">"
}

func formatTerm(t Term) string {
	if t.Kind == TermEntity {
		return formatEntity(t)
	}
	return `"` + escapeLiteral(t.Value) + `"`
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
