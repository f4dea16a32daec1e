package dialect

import (
	"fmt"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// HSPICE composes the base Xyce grammar by delegation (spec §9): it
// overrides the conventions that actually differ — comment markers, the
// ".OPTION"/".OPTIONS" alias, the ".DATA"/".ENDDATA" table block, and the
// ".IF"/".ELSEIF"/".ELSE"/".ENDIF" conditional directives — and falls
// through to the base grammar's device/directive classification for
// everything else.
//
// ".DATA"/".ENDDATA" brackets a run of data rows (HSPICEGrammar.hpp's
// data_dir/enddata_dir), each a plain list of values with no directive
// keyword of its own; HSPICE tracks whether it is currently inside such a
// block the same way Spectre tracks its statistics block, except the rows
// themselves still reach the grammar (they are real tokens, not comments).
type HSPICE struct {
	base        *Xyce
	inDataBlock bool
}

// NewHSPICE returns the HSPICE dialect overlay.
func NewHSPICE() *HSPICE { return &HSPICE{base: NewXyce()} }

func (h *HSPICE) Name() string { return "hspice" }

// CommentPrefixes: HSPICE accepts both the base "*" and a bare "$" as a
// whole-line comment marker.
func (h *HSPICE) CommentPrefixes() []string { return []string{"*", "$"} }

// StripInline: HSPICE treats "$" as an inline comment marker too (the same
// character, used both as a standalone-line and an inline marker, is
// disambiguated by position alone — leading vs. embedded).
func (h *HSPICE) StripInline(line string) (code, comment string) {
	return stripInlineDollar(line)
}

// ParseLine delegates to the base grammar for everything except the
// overrides named above.
func (h *HSPICE) ParseLine(body string) ([]token.Token, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("dialect: empty statement body")
	}
	word := firstWordOf(trimmed)
	upper := strings.ToUpper(word)

	if h.inDataBlock {
		if upper == ".ENDDATA" {
			h.inDataBlock = false
			return []token.Token{token.New(upper, token.DirectiveType)}, nil
		}
		return h.classifyDataRow(trimmed)
	}

	switch upper {
	case ".OPTION":
		// HSPICE accepts the singular spelling as a synonym for .OPTIONS.
		return h.base.ParseLine(".OPTIONS" + strings.TrimPrefix(trimmed, word))
	case ".DATA":
		h.inDataBlock = true
		return h.classifyDataHeader(strings.TrimSpace(trimmed[len(word):]))
	case ".IF", ".ELSEIF":
		return h.classifyConditional(upper, strings.TrimSpace(trimmed[len(word):]))
	case ".ELSE", ".ENDIF":
		return []token.Token{token.New(upper, token.DirectiveType)}, nil
	}

	return h.base.ParseLine(body)
}

// classifyDataHeader implements ".DATA table_name param_name ..." — the
// table's name followed by its column headers, both plain identifiers.
func (h *HSPICE) classifyDataHeader(rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(".DATA", token.DirectiveType)}
	for _, f := range fields {
		out = append(out, fieldToken(f, token.ParamName))
	}
	return out, nil
}

// classifyDataRow implements a bare row of values inside a ".DATA" block
// (HSPICEGrammar.hpp's DATA_PARAM_VALUE): positional numbers/expressions,
// one per declared column, with no directive keyword on the line at all.
func (h *HSPICE) classifyDataRow(row string) ([]token.Token, error) {
	fields, err := Tokenize(row)
	if err != nil {
		return nil, err
	}
	var out []token.Token
	for _, f := range fields {
		out = append(out, fieldToken(f, token.DataParamValue))
	}
	return out, nil
}

// classifyConditional implements ".IF"/".ELSEIF", each followed by a single
// boolean-valued expression (HSPICEGrammar.hpp's IF_COND).
func (h *HSPICE) classifyConditional(directive, cond string) ([]token.Token, error) {
	if cond == "" {
		return nil, fmt.Errorf("dialect: %s requires a condition expression", directive)
	}
	return []token.Token{
		token.New(directive, token.DirectiveType),
		token.New(cond, token.ConditionalStatement),
	}, nil
}
