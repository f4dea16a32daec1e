package dialect

import (
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// directiveSet is the base Xyce dot-directive vocabulary (spec §4.7): the
// dotted keyword that opens the line, case-insensitively.
var directiveSet = map[string]bool{
	".PARAM": true, ".MODEL": true, ".SUBCKT": true, ".ENDS": true,
	".OPTIONS": true, ".PRINT": true, ".TRAN": true, ".DC": true, ".AC": true,
	".OP": true, ".IC": true, ".NODESET": true, ".GLOBAL": true, ".INCLUDE": true,
	".LIB": true, ".END": true, ".STEP": true, ".MEASURE": true, ".FUNC": true,
	".SENS": true, ".TF": true, ".TITLE": true,

	// spec.md's base directive list also requires these; most take the
	// default flat name/positional-until-named classification, the rest
	// are aliases of directives already dispatched above.
	".DCVOLT": true, ".INITCOND": true, ".ENDL": true, ".FOUR": true,
	".GLOBAL_PARAM": true, ".HB": true, ".INC": true, ".LIN": true,
	".MEAS": true, ".PREPROCESS": true, ".SAVE": true, ".TR": true,
	".MOR": true, ".MPDE": true,
}

// IsDirective reports whether name (the first whitespace-delimited word,
// case-insensitive) opens a directive line.
func IsDirective(name string) bool {
	return directiveSet[strings.ToUpper(name)]
}

// ClassifyDirective maps a directive keyword and its remaining fields to
// classified tokens. Directives whose shape varies enough to need their own
// walk (.PARAM, .MODEL, .SUBCKT, .PRINT, .MEASURE, .STEP, .FUNC) are
// dispatched to dedicated handlers; the rest default to a flat
// name/positional-until-named classification like a device's tail.
func ClassifyDirective(name string, fields []Field) []token.Token {
	upper := strings.ToUpper(name)
	out := []token.Token{token.New(upper, token.DirectiveType)}

	switch upper {
	case ".PARAM", ".GLOBAL_PARAM":
		return append(out, classifyParam(fields)...)
	case ".MODEL":
		return append(out, classifyModel(fields)...)
	case ".SUBCKT":
		return append(out, classifySubckt(fields)...)
	case ".FUNC":
		return append(out, classifyFunc(fields)...)
	case ".PRINT":
		return append(out, classifyPrint(fields)...)
	case ".FOUR":
		return append(out, classifyFour(fields)...)
	case ".MEASURE", ".MEAS":
		return append(out, classifyMeasure(fields)...)
	case ".STEP":
		return append(out, classifyStep(fields)...)
	case ".TRAN", ".TR", ".DC", ".AC", ".HB":
		return append(out, classifySweep(upper, fields)...)
	case ".TITLE":
		return out // only the .TITLE directive token is emitted; its body fields are not classified
	}

	return append(out, classifyPositionalUntilNamed(fields, nil)...)
}

// classifyParam implements one-or-more "name=expr" pairs per line.
func classifyParam(fields []Field) []token.Token {
	var out []token.Token
	for _, f := range fields {
		if f.Kind == KindKeyValue {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, token.New(f.Value, token.Expression))
			continue
		}
		out = append(out, fieldToken(f, token.ParamName))
	}
	return out
}

// classifyModel implements "name type (param=value ...)".
func classifyModel(fields []Field) []token.Token {
	var out []token.Token
	if len(fields) > 0 {
		out = append(out, fieldToken(fields[0], token.ModelName))
	}
	if len(fields) > 1 {
		out = append(out, fieldToken(fields[1], token.ModelName))
	}
	if len(fields) > 2 {
		for _, f := range fields[2:] {
			if f.Kind == KindParenGroup {
				out = append(out, classifyPositionalUntilNamed(f.Group, nil)...)
				continue
			}
			out = append(out, classifyPositionalUntilNamed([]Field{f}, nil)...)
		}
	}
	return out
}

// classifySubckt implements "name node node ... [PARAMS: name=value ...]".
func classifySubckt(fields []Field) []token.Token {
	var out []token.Token
	idx := 0
	if len(fields) > 0 {
		out = append(out, fieldToken(fields[0], token.ModelName))
		idx = 1
	}
	for idx < len(fields) && fields[idx].Kind != KindKeyValue {
		if strings.EqualFold(fields[idx].Text, "PARAMS:") {
			out = append(out, token.New(fields[idx].Text, token.ParamsHeader))
			idx++
			continue
		}
		out = append(out, fieldToken(fields[idx], token.GeneralNode))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], nil)...)
	return out
}

// classifyFunc implements ".FUNC name(args) {body}"; the signature and body
// are handed to pkg/expr's own lazy FuncDef parsing rather than re-split
// here, matching spec §9's "function bodies are not parsed until called".
func classifyFunc(fields []Field) []token.Token {
	var out []token.Token
	for _, f := range fields {
		switch f.Kind {
		case KindParenGroup:
			out = append(out, token.New(renderGroup(f.Group), token.FuncArg))
		case KindBrace:
			out = append(out, token.New(f.Text, token.FuncExpression))
		default:
			out = append(out, fieldToken(f, token.FuncName))
		}
	}
	return out
}

// classifyPrint implements ".PRINT TRAN V(1) I(R1) ..." — an analysis-type
// keyword followed by one or more output-variable expressions.
func classifyPrint(fields []Field) []token.Token {
	var out []token.Token
	for i, f := range fields {
		if i == 0 && f.Kind == KindBare {
			out = append(out, fieldToken(f, token.SweepType))
			continue
		}
		if f.Kind == KindParenGroup {
			out = append(out, token.New(renderGroup(f.Group), token.OutputVariable))
			continue
		}
		out = append(out, fieldToken(f, token.OutputVariable))
	}
	return out
}

// classifyFour implements ".FOUR fundamental_freq V(1) I(R1) ..." — a
// fundamental frequency value followed by one or more output-variable
// expressions, the same output-variable tail .PRINT uses.
func classifyFour(fields []Field) []token.Token {
	var out []token.Token
	for i, f := range fields {
		if i == 0 {
			out = append(out, fieldToken(f, token.FundFreqValue))
			continue
		}
		if f.Kind == KindParenGroup {
			out = append(out, token.New(renderGroup(f.Group), token.OutputVariable))
			continue
		}
		out = append(out, fieldToken(f, token.OutputVariable))
	}
	return out
}

// classifyMeasure implements ".MEASURE TRAN result-name TRIG ... TARG ...".
func classifyMeasure(fields []Field) []token.Token {
	var out []token.Token
	for i, f := range fields {
		switch {
		case i == 0:
			out = append(out, fieldToken(f, token.SweepType))
		case i == 1:
			out = append(out, fieldToken(f, token.ParamName))
		case f.Kind == KindKeyValue:
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, valueFieldToken(f))
		default:
			out = append(out, fieldToken(f, token.ConditionalStatement))
		}
	}
	return out
}

// classifyStep implements ".STEP PARAM name start stop step" and the
// swept-device/model-parameter forms.
func classifyStep(fields []Field) []token.Token {
	var out []token.Token
	roles := []token.Class{token.ScheduleType, token.ParamName, token.SweepParamVal, token.SweepParamVal, token.SweepParamVal}
	for i, f := range fields {
		if i < len(roles) {
			out = append(out, fieldToken(f, roles[i]))
			continue
		}
		out = append(out, fieldToken(f, token.SweepParamVal))
	}
	return out
}

// classifySweep implements the analysis directives (.TRAN/.DC/.AC), whose
// positional arguments are purely numeric/keyword with no name=value form.
func classifySweep(directive string, fields []Field) []token.Token {
	var out []token.Token
	for _, f := range fields {
		switch strings.ToUpper(f.Text) {
		case "UIC":
			out = append(out, fieldToken(f, token.UICValue))
		case "LIN", "DEC", "OCT":
			out = append(out, fieldToken(f, token.SweepType))
		default:
			out = append(out, fieldToken(f, token.SweepParamVal))
		}
	}
	_ = directive
	return out
}
