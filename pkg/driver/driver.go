package driver

import (
	"fmt"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/dialect"
	"github.com/xyce-xdm/xdm-core/pkg/lines"
	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// ParsedLine is one logical line's translation result (spec §6 wire
// format): its provenance, the source text (rewritten in place when the
// grammar rejected the line), and the classified tokens the grammar
// produced for it. ErrorKind and ErrorMessage are only set when the
// grammar rejected the line and the driver fell back to rewriting it as
// an opaque comment rather than failing the whole file (spec §7).
type ParsedLine struct {
	FileName     string        `json:"file_name"`
	LineNumbers  []int         `json:"line_numbers"`
	SourceLine   string        `json:"source_line"`
	Tokens       []token.Token `json:"tokens"`
	ErrorKind    string        `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Recovered reports whether this line was rejected by the grammar and
// rewritten as a comment rather than parsed normally (spec §7).
func (p ParsedLine) Recovered() bool { return p.ErrorKind != "" }

// Next produces the next ParsedLine, or ok=false at end of file. Only an
// I/O failure from the underlying reader is returned as err; every grammar
// rejection is recovered locally (spec §7's "local, not whole-file,
// recovery").
func (s *Session) Next() (ParsedLine, bool, error) {
	ll, ok, err := s.Reader.Next()
	if err != nil {
		return ParsedLine{}, false, err
	}
	if !ok {
		s.flushSpectreStats()
		s.flushSubcktStats()
		return ParsedLine{}, false, nil
	}

	trimmed := strings.TrimSpace(ll.Text)

	if sp, isSpectre := s.Dialect.(*dialect.Spectre); isSpectre {
		if pl, handled := s.recoverStatisticsBlock(sp, ll); handled {
			return pl, true, nil
		}
	}

	// The logical line whose first source line number is 1 is a mandatory
	// title: it is never run through the grammar, and takes priority over
	// comment detection, regardless of dialect (spec §4.9). Every dialect's
	// original parser interface applies this same rule to its top-level
	// file, Spectre included, with no exception for a line that happens to
	// look like a comment.
	if len(ll.LineNumbers) > 0 && ll.LineNumbers[0] == 1 {
		return ParsedLine{
			FileName:    ll.FileName,
			LineNumbers: ll.LineNumbers,
			SourceLine:  ll.Text,
			Tokens:      []token.Token{token.New(trimmed, token.Title)},
		}, true, nil
	}

	if s.isCommentLine(trimmed) {
		return ParsedLine{
			FileName:    ll.FileName,
			LineNumbers: ll.LineNumbers,
			SourceLine:  ll.Text,
			Tokens:      []token.Token{token.New(trimmed, token.Comment)},
		}, true, nil
	}

	code, comment := s.Dialect.StripInline(trimmed)
	code = strings.TrimRight(code, " \t")

	toks, perr := s.Dialect.ParseLine(code)
	if perr != nil {
		return s.recoverAsComment(ll, trimmed, perr), true, nil
	}

	if strings.TrimSpace(comment) != "" {
		toks = append(toks, token.New(strings.TrimSpace(comment), token.InlineComment))
	}

	s.trackSubcktNesting(toks)

	return ParsedLine{
		FileName:    ll.FileName,
		LineNumbers: ll.LineNumbers,
		SourceLine:  ll.Text,
		Tokens:      toks,
	}, true, nil
}

// recoverStatisticsBlock implements Spectre's statistics-block special case
// (spec §4.9, §5's bracket_count): while inside, or opening, a
// "statistics { ... }" block, the line is commented out and its braces
// alone update bracket_count — it never reaches the title check or the
// grammar at all. Only the line that opens the block (bracket_count == 0
// on entry) carries the warn error_kind/error_message; continuation lines
// are rewritten silently, matching the original driver's behavior.
func (s *Session) recoverStatisticsBlock(sp *dialect.Spectre, ll lines.LogicalLine) (ParsedLine, bool) {
	trimmed := strings.TrimSpace(ll.Text)
	if !sp.InStatisticsBlock(trimmed) {
		return ParsedLine{}, false
	}

	entering := sp.BracketCount() == 0
	rewritten := "// " + ll.Text
	pl := ParsedLine{FileName: ll.FileName, LineNumbers: ll.LineNumbers}
	if entering {
		rewritten += "; Spectre statistics block Retained (as a comment). Continuing."
		pl.ErrorKind = "warn"
		pl.ErrorMessage = rewritten
	}
	pl.SourceLine = rewritten
	pl.Tokens = []token.Token{token.New(rewritten, token.Comment)}

	sp.UpdateBracketCount(rewritten)
	return pl, true
}

// recoverAsComment rewrites a line the grammar rejected into the dialect's
// comment form and re-checks that rewritten line against the dialect's own
// comment prefixes (the same check Next applies to ordinary comment lines),
// so the recovered line produces a single COMMENT token (spec §4.9, §7, §8
// scenario 6).
func (s *Session) recoverAsComment(ll lines.LogicalLine, trimmed string, perr error) ParsedLine {
	prefix := "*"
	if prefixes := s.Dialect.CommentPrefixes(); len(prefixes) > 0 {
		prefix = prefixes[0]
	}
	rewritten := fmt.Sprintf("%s %s ; %s Parser Retained (as a comment). Continuing.", prefix, trimmed, s.Dialect.Name())

	s.Diag.Warn(fmt.Sprintf("%s:%v: %v; rewriting as comment", ll.FileName, ll.LineNumbers, perr))

	pl := ParsedLine{
		FileName:     ll.FileName,
		LineNumbers:  ll.LineNumbers,
		SourceLine:   rewritten,
		ErrorKind:    "warn",
		ErrorMessage: rewritten,
	}

	if !s.isCommentLine(rewritten) {
		s.Diag.Warn(fmt.Sprintf("%s:%v: rewritten comment line could not be recognized as a comment", ll.FileName, ll.LineNumbers))
		pl.Tokens = []token.Token{}
		return pl
	}
	pl.Tokens = []token.Token{token.New(rewritten, token.Comment)}
	return pl
}

// trackSubcktNesting pushes/pops s.subckt on a .SUBCKT/.ENDS pair (or
// Spectre's lowercase subckt/ends directives), warning immediately on an
// .ENDS with nothing open to close.
func (s *Session) trackSubcktNesting(toks []token.Token) {
	if len(toks) == 0 || toks[0].Classes[0] != token.DirectiveType {
		return
	}
	switch strings.ToUpper(toks[0].Value) {
	case ".SUBCKT", "SUBCKT":
		name := ""
		if len(toks) > 1 {
			name = toks[1].Value
		}
		s.subckt.Push(name)
	case ".ENDS", "ENDS":
		if _, err := s.subckt.Pop(); err != nil {
			s.Diag.Warn(fmt.Sprintf("%s: .ENDS with no matching open .SUBCKT", s.FileName))
		}
	}
}

// flushSubcktStats warns if any .SUBCKT block was still open at EOF.
func (s *Session) flushSubcktStats() {
	for s.subckt.Count() > 0 {
		name, _ := s.subckt.Pop()
		s.Diag.Warn(fmt.Sprintf("%s: .SUBCKT %q never closed with .ENDS", s.FileName, name))
	}
}

func (s *Session) isCommentLine(trimmed string) bool {
	for _, p := range s.Dialect.CommentPrefixes() {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// flushSpectreStats records a diagnostic if a Spectre file's bracket_count
// never returned to zero: a "statistics { ... }" block was opened but never
// closed by EOF (spec §4.9, §5).
func (s *Session) flushSpectreStats() {
	sp, ok := s.Dialect.(*dialect.Spectre)
	if !ok {
		return
	}
	if n := sp.BracketCount(); n != 0 {
		s.Diag.Warn(fmt.Sprintf("%s: statistics block never closed (bracket count %d)", s.FileName, n))
	}
}
