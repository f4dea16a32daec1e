// Package lines implements the physical-line reader of spec §4.6: it turns
// a byte stream into logical lines by resolving continuation markers and
// stripping comments, so the grammar layer above it only ever sees logical,
// not physical, lines.
package lines

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LogicalLine is the joined source text after continuation resolution, plus
// its provenance (spec §3).
type LogicalLine struct {
	Text        string
	FileName    string
	LineNumbers []int // strictly ascending, non-empty (spec invariant 2)
}

// InlineCommentStripper splits a line of code from its trailing inline
// comment (if any), matching dialect-specific comment syntax. It is
// supplied by the active dialect grammar (spec §4.6 "a side invocation of
// the active dialect grammar's inline-comment sub-rule").
type InlineCommentStripper func(line string) (code, comment string)

// Reader produces LogicalLines from an io.Reader, honoring the
// continuation and comment conventions of spec §4.6.
type Reader struct {
	scanner     *bufio.Scanner
	fileName    string
	stripInline InlineCommentStripper
	lineNo      int

	pending     string
	pendingNums []int
	hasPending  bool

	// queued holds a fully-assembled LogicalLine (a standalone comment that
	// interrupted an in-progress continuation) ready to return verbatim on
	// the next call, bypassing continuation logic entirely so it can never
	// be merged into by a trailing "+" line (comments are always standalone).
	queued *LogicalLine

	lineStartPrefixes []string // e.g. "*", "//", "$" — own-logical-line comment markers
}

// New returns a Reader over r. lineStartPrefixes are the dialect's
// start-of-line comment markers (spec §6 comment-prefix table);
// stripInline strips a dialect's inline comment from each "+" continuation
// line before it is joined (the comment is dropped); the first physical line
// of a logical line is left as read.
func New(r io.Reader, fileName string, lineStartPrefixes []string, stripInline InlineCommentStripper) *Reader {
	// Vendor-exported netlists sometimes carry a UTF-8 BOM; strip it so it
	// never ends up glued to the first token of the title line.
	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{
		scanner:           sc,
		fileName:          fileName,
		stripInline:       stripInline,
		lineStartPrefixes: lineStartPrefixes,
	}
}

// Next returns the next LogicalLine. ok is false once the stream is
// exhausted; err is non-nil only for an I/O failure of the underlying
// reader, which the caller treats as fatal (spec §7).
func (r *Reader) Next() (LogicalLine, bool, error) {
	if r.queued != nil {
		out := *r.queued
		r.queued = nil
		return out, true, nil
	}

	for {
		text, num, ok := r.readPhysical()
		if !ok {
			if err := r.scanner.Err(); err != nil {
				return LogicalLine{}, false, err
			}
			if r.hasPending {
				return r.flushPending()
			}
			return LogicalLine{}, false, nil
		}

		trimmed := strings.TrimRight(text, " \t\r")
		trimmedLeft := strings.TrimLeft(trimmed, " \t")

		if strings.TrimSpace(trimmedLeft) == "" {
			continue // empty/whitespace-only lines advance the counter only
		}

		if r.startsWithCommentMarker(trimmedLeft) {
			comment := LogicalLine{Text: trimmed, FileName: r.fileName, LineNumbers: []int{num}}
			if r.hasPending {
				// The pending logical line is complete; queue the comment
				// to be returned untouched on the next call (rule: any
				// other next line terminates the current logical line, and
				// a comment is always its own, non-extensible logical
				// line — it must never absorb a later "+" continuation).
				out, _, _ := r.flushPending()
				r.queued = &comment
				return out, true, nil
			}
			return comment, true, nil
		}

		if !r.hasPending {
			r.pending = trimmed
			r.pendingNums = []int{num}
			r.hasPending = true
			continue
		}

		if strings.HasPrefix(trimmedLeft, ")") {
			r.pending = r.pending + trimmed
			r.pendingNums = append(r.pendingNums, num)
			continue
		}

		if strings.HasSuffix(r.pending, "\\\\") {
			r.pending = strings.TrimSuffix(r.pending, "\\\\") + trimmed
			r.pendingNums = append(r.pendingNums, num)
			continue
		}

		if strings.HasSuffix(r.pending, "\\") {
			r.pending = strings.TrimSuffix(r.pending, "\\") + " " + trimmed
			r.pendingNums = append(r.pendingNums, num)
			continue
		}

		if strings.HasPrefix(trimmedLeft, "+") {
			cont := strings.TrimLeft(trimmedLeft, "+")
			cont = strings.TrimLeft(cont, " \t")
			code, _ := r.stripInlineSafe(cont)
			r.pending = r.pending + " " + code
			r.pendingNums = append(r.pendingNums, num)
			continue
		}

		// Any other line terminates the current logical line; this one
		// starts the next.
		out := LogicalLine{Text: r.pending, FileName: r.fileName, LineNumbers: r.pendingNums}
		r.pending = trimmed
		r.pendingNums = []int{num}
		return out, true, nil
	}
}

func (r *Reader) flushPending() (LogicalLine, bool, error) {
	out := LogicalLine{Text: r.pending, FileName: r.fileName, LineNumbers: r.pendingNums}
	r.hasPending = false
	r.pending = ""
	r.pendingNums = nil
	return out, true, nil
}

func (r *Reader) startsWithCommentMarker(s string) bool {
	for _, p := range r.lineStartPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (r *Reader) stripInlineSafe(s string) (code, comment string) {
	if r.stripInline == nil {
		return s, ""
	}
	return r.stripInline(s)
}

func (r *Reader) readPhysical() (string, int, bool) {
	if !r.scanner.Scan() {
		return "", 0, false
	}
	r.lineNo++
	return r.scanner.Text(), r.lineNo, true
}
