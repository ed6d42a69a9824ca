// Package assemble implements the ProgramAssembler of spec.md §4.6: it
// wraps compiled ZPL fields in the label start/end markers, the optional
// CI28 encoding directive, and debug overlays, producing the final
// program string.
//
// The byte-buffer print/printf/println helpers are grounded on
// withastro-compiler's internal/printer.printer (print/printf/println
// appending to a []byte buffer).
package assemble

import "fmt"

type printer struct {
	output []byte
}

func (p *printer) print(text string) {
	p.output = append(p.output, []byte(text)...)
}

func (p *printer) printf(format string, a ...interface{}) {
	p.print(fmt.Sprintf(format, a...))
}

func (p *printer) println(text string) {
	p.print(text + "\n")
}
