package dialect

import (
	"fmt"
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// TSPICE composes the base Xyce grammar by delegation (spec §9). It shares
// Xyce's comment conventions exactly, aliases ".MACRO"/".EOM" to
// ".SUBCKT"/".ENDS" (TSPICEGrammar.hpp: "Aliases in TSPICE .macro = .subckt
// and .eom = .ends"), and relaxes the node-voltage, sweep, and
// output-variable directives (".IC"/".NODESET", ".STEP", ".PRINT",
// ".FOUR") to the more permissive shapes TSPICEGrammar.hpp gives them.
// ".OPTIONS" and ".MEASURE" are structurally identical to the base
// grammar's productions for them (modulo whitespace), so TSPICE leaves
// those to the base classifier.
type TSPICE struct {
	base *Xyce
}

// NewTSPICE returns the TSPICE dialect overlay.
func NewTSPICE() *TSPICE { return &TSPICE{base: NewXyce()} }

func (t *TSPICE) Name() string { return "tspice" }

func (t *TSPICE) CommentPrefixes() []string { return t.base.CommentPrefixes() }

func (t *TSPICE) StripInline(line string) (code, comment string) {
	return t.base.StripInline(line)
}

func (t *TSPICE) ParseLine(body string) ([]token.Token, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("dialect: empty statement body")
	}
	word := firstWordOf(trimmed)
	upper := strings.ToUpper(word)
	rest := strings.TrimSpace(trimmed[len(word):])

	switch upper {
	case ".MACRO":
		fields, err := Tokenize(rest)
		if err != nil {
			return nil, err
		}
		return append([]token.Token{token.New(upper, token.DirectiveType)}, classifySubckt(fields)...), nil
	case ".EOM":
		fields, err := Tokenize(rest)
		if err != nil {
			return nil, err
		}
		return append([]token.Token{token.New(upper, token.DirectiveType)}, classifyPositionalUntilNamed(fields, nil)...), nil
	case ".IC", ".NODESET":
		return t.classifyVoltageAssignments(upper, rest)
	case ".STEP":
		return t.classifyStep(rest)
	case ".PRINT":
		return t.classifyPrint(rest)
	case ".FOUR":
		return t.classifyFour(rest)
	}

	return t.base.ParseLine(body)
}

// classifyVoltageAssignments implements TSPICE's ".IC"/".NODESET": one or
// more "[V](node[,node])[=]value" assignments, looser than the base
// grammar's generic name=value handling about the surrounding parens and
// the optional leading voltage-type keyword.
func (t *TSPICE) classifyVoltageAssignments(directive, rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(directive, token.DirectiveType)}
	for _, f := range fields {
		switch {
		case f.Kind == KindParenGroup:
			for _, n := range f.Group {
				out = append(out, fieldToken(n, token.GeneralNode))
			}
		case f.Kind == KindBare && f.Text == "=":
			continue
		default:
			out = append(out, fieldToken(f, token.GeneralValue))
		}
	}
	return out, nil
}

// classifyStep implements TSPICE's ".STEP" form, which (unlike Xyce's) has
// no mandatory leading "PARAM" keyword: a run of sweep values with LIN/
// DEC/OCT/SWEEP keywords tagged as schedule types wherever they appear.
func (t *TSPICE) classifyStep(rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(".STEP", token.DirectiveType)}
	for _, f := range fields {
		switch strings.ToUpper(f.Text) {
		case "LIN", "DEC", "OCT", "SWEEP":
			out = append(out, fieldToken(f, token.ScheduleType))
		default:
			out = append(out, fieldToken(f, token.SweepParamVal))
		}
	}
	return out, nil
}

// classifyPrint implements TSPICE's ".PRINT analysis_type
// [param=value ...] output_variable ...", which unlike the base grammar
// allows param=value pairs interleaved before the output-variable tail.
func (t *TSPICE) classifyPrint(rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(".PRINT", token.DirectiveType)}
	for i, f := range fields {
		switch {
		case i == 0:
			out = append(out, fieldToken(f, token.SweepType))
		case f.Kind == KindKeyValue:
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, valueFieldToken(f))
		case f.Kind == KindParenGroup:
			out = append(out, token.New(renderGroup(f.Group), token.OutputVariable))
		default:
			out = append(out, fieldToken(f, token.OutputVariable))
		}
	}
	return out, nil
}

// classifyFour implements TSPICE's ".FOUR fund_freq output_variable ...
// [param=value ...]", which allows trailing param=value pairs the base
// grammar's ".FOUR" doesn't.
func (t *TSPICE) classifyFour(rest string) ([]token.Token, error) {
	fields, err := Tokenize(rest)
	if err != nil {
		return nil, err
	}
	out := []token.Token{token.New(".FOUR", token.DirectiveType)}
	for i, f := range fields {
		switch {
		case i == 0:
			out = append(out, fieldToken(f, token.FundFreqValue))
		case f.Kind == KindKeyValue:
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, valueFieldToken(f))
		case f.Kind == KindParenGroup:
			out = append(out, token.New(renderGroup(f.Group), token.OutputVariable))
		default:
			out = append(out, fieldToken(f, token.OutputVariable))
		}
	}
	return out, nil
}
