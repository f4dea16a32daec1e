package dialect

import (
	"fmt"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// Spectre is a standalone grammar (spec §9): unlike HSPICE/PSPICE/TSPICE it
// does not compose the base Xyce grammar, since its statement shape
// ("instance (nodes) model param=value ...", bracket-delimited parameter
// blocks, "parameters"/"simulator" keyword lines) diverges too far from
// Xyce's dotted-directive convention to share productions with it.
//
// It also tracks bracket_count (spec §4.9, §5): the `{`/`}` nesting depth
// of a "statistics { ... }" block, a mechanism entirely separate from the
// parenthesized node lists every instance line uses. A caller (the driver)
// consults InStatisticsBlock before dispatching a line to ParseLine at all,
// and calls UpdateBracketCount on the line it emitted.
type Spectre struct {
	bracketCount int
}

// NewSpectre returns a fresh Spectre grammar instance.
func NewSpectre() *Spectre { return &Spectre{} }

func (s *Spectre) Name() string { return "spectre" }

// CommentPrefixes: Spectre accepts both "//" and "*" as start-of-line
// comment markers, on any line.
func (s *Spectre) CommentPrefixes() []string { return []string{"//", "*"} }

func (s *Spectre) StripInline(line string) (code, comment string) {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx], line[idx:]
	}
	return line, ""
}

// BracketCount reports bracket_count: the running `{`/`}` depth of a
// statistics block. Nonzero at EOF means the block was opened but never
// closed.
func (s *Spectre) BracketCount() int { return s.bracketCount }

// InStatisticsBlock reports whether trimmed is inside, or opens, a
// "statistics { ... }" block (spec §4.9): either bracket_count is already
// positive from an earlier line, or this line itself starts with the
// "statistics" keyword. Such a line is commented out without ever reaching
// ParseLine.
func (s *Spectre) InStatisticsBlock(trimmed string) bool {
	if s.bracketCount > 0 {
		return true
	}
	return strings.HasPrefix(strings.ToLower(trimmed), "statistics")
}

// UpdateBracketCount scans line for brace characters and adjusts
// bracket_count by +1 per `{` and -1 per `}` (spec §4.9's "after emission,
// scan its characters").
func (s *Spectre) UpdateBracketCount(line string) {
	for _, ch := range line {
		switch ch {
		case '{':
			s.bracketCount++
		case '}':
			s.bracketCount--
		}
	}
}

// ParseLine classifies one Spectre statement body.
func (s *Spectre) ParseLine(body string) ([]token.Token, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("dialect: empty statement body")
	}

	firstWord := firstWordOf(trimmed)
	switch strings.ToLower(firstWord) {
	case "parameters":
		return s.classifyParameters(trimmed[len(firstWord):])
	case "simulator":
		return s.classifyKeyValueLine(token.DirectiveType, firstWord, trimmed[len(firstWord):])
	case "subckt":
		return s.classifySubckt(trimmed[len(firstWord):])
	case "ends":
		rest := strings.TrimSpace(trimmed[len(firstWord):])
		out := []token.Token{token.New("ends", token.DirectiveType)}
		if rest != "" {
			out = append(out, token.New(rest, token.ModelName))
		}
		return out, nil
	}

	return s.classifyInstance(firstWord, strings.TrimSpace(trimmed[len(firstWord):]))
}

func (s *Spectre) classifyParameters(rest string) ([]token.Token, error) {
	fields, err := Tokenize(strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New("parameters", token.DirectiveType)}
	for _, f := range fields {
		if f.Kind == KindKeyValue {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, token.New(f.Value, token.Expression))
			continue
		}
		out = append(out, fieldToken(f, token.ParamName))
	}
	return out, nil
}

func (s *Spectre) classifyKeyValueLine(directiveClass token.Class, name, rest string) ([]token.Token, error) {
	fields, err := Tokenize(strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(strings.ToLower(name), directiveClass)}
	for _, f := range fields {
		if f.Kind == KindKeyValue {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, valueFieldToken(f))
			continue
		}
		out = append(out, fieldToken(f, token.GeneralValue))
	}
	return out, nil
}

func (s *Spectre) classifySubckt(rest string) ([]token.Token, error) {
	fields, err := Tokenize(strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New("subckt", token.DirectiveType)}
	idx := 0
	if len(fields) > 0 {
		out = append(out, fieldToken(fields[0], token.ModelName))
		idx = 1
	}
	if idx < len(fields) && fields[idx].Kind == KindParenGroup {
		for _, n := range fields[idx].Group {
			out = append(out, fieldToken(n, token.GeneralNode))
		}
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], nil)...)
	return out, nil
}

// classifyInstance implements Spectre's universal instance shape:
// name (node node ...) model param=value ...
func (s *Spectre) classifyInstance(name, rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(name, token.DeviceName)}

	idx := 0
	if len(fields) > 0 && fields[0].Kind == KindParenGroup {
		for _, n := range fields[0].Group {
			out = append(out, fieldToken(n, token.GeneralNode))
		}
		idx = 1
	}
	if idx < len(fields) && fields[idx].Kind == KindBare {
		out = append(out, fieldToken(fields[idx], token.ModelName))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], nil)...)
	return out, nil
}
