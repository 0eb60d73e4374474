package artifact

import (
	"bufio"
	"fmt"
	"io"
)

// Document is the full text artifact spec.md §6 asks the driver to write
// after the search converges: the coefficient assignment block (one
// `name:value;` line per coefficient, already produced by a
// scheme.Printer) followed by the order-condition / Shu-Osher identity
// text a computer-algebra session can load to check the discovered
// scheme independently of this module's own search.
type Document struct {
	Assignments []string
	Identities  []string
}

// Write renders the document: assignment lines first, one per line with
// a trailing semicolon (already present from scheme.Printer), then a
// blank separator, then the identity lines, also semicolon-terminated.
func Write(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for _, line := range doc.Assignments {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	if len(doc.Identities) > 0 {
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
		for _, line := range doc.Identities {
			if _, err := fmt.Fprintf(bw, "%s;\n", line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
