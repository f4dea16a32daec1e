// Package driver implements the per-file translation loop of spec §4.9: it
// owns a session's reader, grammar, symbol tables and diagnostics, and
// drives them line by line the way the teacher's vm.Parser/asm.CodeGenerator
// pair drives a translation unit end to end.
package driver

import (
	"io"

	"github.com/google/uuid"

	"github.com/xyce-xdm/xdm-core/pkg/diag"
	"github.com/xyce-xdm/xdm-core/pkg/dialect"
	"github.com/xyce-xdm/xdm-core/pkg/expr"
	"github.com/xyce-xdm/xdm-core/pkg/lines"
	"github.com/xyce-xdm/xdm-core/pkg/utils"
)

// Session is one file's translation state: a session ID (for correlating
// diagnostics across a multi-file run, spec §6), the active dialect
// grammar, the logical-line reader bound to it, and the expression symbol
// tables that persist for the session's whole lifetime (spec §3 "process
// lifetime").
type Session struct {
	ID uuid.UUID

	FileName string
	Dialect  dialect.Dialect
	Reader   *lines.Reader
	Symbols  *expr.SymbolTable
	Eval     *expr.Evaluator
	Diag     *diag.Sink

	// subckt tracks open .SUBCKT/.ENDS nesting (and Spectre's lowercase
	// subckt/ends equivalents) across the whole file, so an unmatched .ENDS
	// or an unclosed .SUBCKT at EOF can be diagnosed the same way the
	// teacher's assembler tracks label/scope nesting with a Stack.
	subckt utils.Stack[string]
}

// NewSession builds a Session over r for the named dialect. fileName is
// carried into every LogicalLine/ParsedLine for provenance.
func NewSession(r io.Reader, fileName, dialectName string) (*Session, error) {
	d, err := dialect.New(dialectName)
	if err != nil {
		return nil, err
	}

	sink := diag.NewSink()
	symbols := expr.NewSymbolTable()
	ev := expr.NewEvaluator(symbols)
	ev.Diagnostics = sink.Warn

	s := &Session{
		ID:       uuid.New(),
		FileName: fileName,
		Dialect:  d,
		Symbols:  symbols,
		Eval:     ev,
		Diag:     sink,
	}
	s.Reader = lines.New(r, fileName, d.CommentPrefixes(), d.StripInline)
	return s, nil
}
