package dialect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// PSPICE composes the base Xyce grammar by delegation (spec §9). Its
// comment conventions differ from Xyce's — a semicolon opens both a
// standalone and an inline comment — and it adds productions of its own
// (PSPICEGrammar.hpp): ".PROBE"/".PROBE64", each an output-variable list,
// and ".TEMP", a list of bare temperature values rather than output
// variables.
type PSPICE struct {
	base *Xyce
}

// NewPSPICE returns the PSPICE dialect overlay.
func NewPSPICE() *PSPICE { return &PSPICE{base: NewXyce()} }

func (p *PSPICE) Name() string { return "pspice" }

func (p *PSPICE) CommentPrefixes() []string { return []string{"*", ";"} }

func (p *PSPICE) StripInline(line string) (code, comment string) {
	for i, c := range line {
		if c == ';' {
			return line[:i], line[i:]
		}
	}
	return line, ""
}

// aliasWrapper matches PSPICE's "alias(identifier)" artifact
// (PSPICEGrammar.hpp: "lit is used because we do not want it passed up --
// alias() is an artifact of pspice and should be ignored"): it wraps a
// node/value reference and contributes nothing to the token stream beyond
// the identifier it wraps.
var aliasWrapper = regexp.MustCompile(`(?i)\balias\s*\(\s*([^()\s]+)\s*\)`)

// ParseLine unwraps any "alias(...)" occurrences before delegating, then
// special-cases ".PROBE"/".PROBE64"/".TEMP"; everything else is Xyce's
// grammar unchanged.
func (p *PSPICE) ParseLine(body string) ([]token.Token, error) {
	body = aliasWrapper.ReplaceAllString(body, "$1")

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("dialect: empty statement body")
	}
	word := firstWordOf(trimmed)
	upper := strings.ToUpper(word)
	rest := strings.TrimSpace(trimmed[len(word):])

	switch upper {
	case ".PROBE", ".PROBE64":
		return p.classifyProbe(upper, rest)
	case ".TEMP":
		return p.classifyTemp(rest)
	}

	return p.base.ParseLine(body)
}

// classifyProbe implements ".PROBE"/".PROBE64 output_variable ...".
func (p *PSPICE) classifyProbe(directive, rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(directive, token.DirectiveType)}
	for _, f := range fields {
		if f.Kind == KindParenGroup {
			out = append(out, token.New(renderGroup(f.Group), token.OutputVariable))
			continue
		}
		out = append(out, fieldToken(f, token.OutputVariable))
	}
	return out, nil
}

// classifyTemp implements ".TEMP value value ..." — a bare list of
// temperature values, not output-variable expressions.
func (p *PSPICE) classifyTemp(rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(".TEMP", token.DirectiveType)}
	for _, f := range fields {
		out = append(out, fieldToken(f, token.GeneralValue))
	}
	return out, nil
}
