package dialect

import (
	"strings"

	"github.com/xyce-xdm/xdm-core/pkg/token"
)

// DeviceSpec is the per-device-letter template spec §4.7 describes: a fixed
// node template, followed by an interleaving of positional values and
// named key=value pairs, disambiguated by the "positional-until-named"
// rule applied uniformly across every device shape.
type DeviceSpec struct {
	Letter     byte
	NodeRoles  []token.Class // fixed node template, in order
	ValueRoles []token.Class // positional-value slots consumed after the nodes, in order
}

// deviceTable is the base Xyce set of device letters (spec §4.7 "the
// universe of device letters").
var deviceTable = map[byte]DeviceSpec{
	'R': {Letter: 'R', NodeRoles: []token.Class{token.PosNode, token.NegNode}, ValueRoles: []token.Class{token.GeneralValue}},
	'C': {Letter: 'C', NodeRoles: []token.Class{token.PosNode, token.NegNode}, ValueRoles: []token.Class{token.GeneralValue}},
	'L': {Letter: 'L', NodeRoles: []token.Class{token.PosNode, token.NegNode}, ValueRoles: []token.Class{token.GeneralValue}},
	'D': {Letter: 'D', NodeRoles: []token.Class{token.PosNode, token.NegNode}},
	'J': {Letter: 'J', NodeRoles: []token.Class{token.DrainNode, token.GateNode, token.SourceNode}, ValueRoles: []token.Class{token.AreaValue}},
	'Z': {Letter: 'Z', NodeRoles: []token.Class{token.DrainNode, token.GateNode, token.SourceNode}, ValueRoles: []token.Class{token.AreaValue}},
	'F': {Letter: 'F', NodeRoles: []token.Class{token.PosNode, token.NegNode}, ValueRoles: []token.Class{token.GainValue}},
	'H': {Letter: 'H', NodeRoles: []token.Class{token.PosNode, token.NegNode}, ValueRoles: []token.Class{token.TransconductanceValue}},
	'S': {Letter: 'S', NodeRoles: []token.Class{token.PosNode, token.NegNode, token.ControlPosNode, token.ControlNegNode}},
	'W': {Letter: 'W', NodeRoles: []token.Class{token.SwitchPosNode, token.SwitchNegNode}},
	'T': {Letter: 'T', NodeRoles: []token.Class{token.APortNode, token.APortNode, token.BPortNode, token.BPortNode}},
	'O': {Letter: 'O', NodeRoles: []token.Class{token.APortNode, token.APortNode, token.BPortNode, token.BPortNode}},
	'Y': {Letter: 'Y', NodeRoles: []token.Class{token.APortNode, token.APortNode, token.BPortNode, token.BPortNode}},
	'P': {Letter: 'P', NodeRoles: []token.Class{token.PosNode, token.NegNode}},
}

// ClassifyDevice maps a device-letter (the first character of the device
// identifier, e.g. 'R' of "R1") and its remaining fields to classified
// tokens, applying the positional-until-named disambiguation rule (spec
// §4.7) uniformly. Devices with a genuinely variable shape (BJTs, MOSFETs,
// mutual inductors, controlled sources, independent sources, subcircuit
// calls, behavioral sources) are dispatched to their own handler below.
func ClassifyDevice(letter byte, name string, fields []Field) []token.Token {
	var out []token.Token
	out = append(out, token.New(string(letter), token.DeviceID))
	out = append(out, token.New(name, token.DeviceName))

	switch letter {
	case 'Q':
		return append(out, classifyBJT(fields)...)
	case 'M':
		return append(out, classifyMOSFET(fields)...)
	case 'K':
		return append(out, classifyMutualInductor(fields)...)
	case 'E', 'G':
		return append(out, classifyControlledSource(letter, fields)...)
	case 'V', 'I':
		return append(out, classifyIndependentSource(fields)...)
	case 'X':
		return append(out, classifySubcircuitCall(fields)...)
	case 'B':
		return append(out, classifyBehavioral(fields)...)
	}

	spec, known := deviceTable[letter]
	if !known {
		spec = DeviceSpec{Letter: letter, NodeRoles: []token.Class{token.PosNode, token.NegNode}}
	}

	idx := 0
	for _, role := range spec.NodeRoles {
		if idx >= len(fields) {
			break
		}
		out = append(out, fieldToken(fields[idx], role))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], spec.ValueRoles)...)
	return out
}

// classifyPositionalUntilNamed implements spec §4.7's core disambiguation
// rule: every KeyValue field, wherever it appears, becomes a PARAM_NAME /
// PARAM_VALUE pair; every other field fills the next declared positional
// slot, including bare fields that follow a KeyValue. Once the slots run
// out, each further bare field is ambiguously tagged both MODEL_NAME and
// VALUE (spec §3 "multiple classes express deliberate ambiguity"),
// mirroring the real grammar's inability to know, context-free, whether a
// bare identifier here names a model or is itself a positional value.
func classifyPositionalUntilNamed(fields []Field, valueRoles []token.Class) []token.Token {
	var out []token.Token
	roleIdx := 0
	for _, f := range fields {
		if f.Kind == KindKeyValue {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, valueFieldToken(f))
			continue
		}
		if roleIdx < len(valueRoles) {
			out = append(out, fieldToken(f, valueRoles[roleIdx]))
			roleIdx++
			continue
		}
		// No more declared positional slots and not a key=value pair:
		// ambiguous between a model reference and a bare positional value.
		out = append(out, fieldToken(f, token.ModelName, token.Value))
	}
	return out
}

func fieldToken(f Field, classes ...token.Class) token.Token {
	switch f.Kind {
	case KindParenGroup:
		return token.New(renderGroup(f.Group), classes...)
	case KindKeyValue:
		return token.New(f.Text+"="+f.Value, classes...)
	default:
		return token.New(f.Text, classes...)
	}
}

// valueFieldToken classifies a KeyValue field's RHS as a PARAM_VALUE.
func valueFieldToken(f Field) token.Token {
	return token.New(f.Value, token.ParamValue)
}

func renderGroup(group []Field) string {
	parts := make([]string, len(group))
	for i, f := range group {
		switch f.Kind {
		case KindKeyValue:
			parts[i] = f.Text + "=" + f.Value
		case KindParenGroup:
			parts[i] = "(" + renderGroup(f.Group) + ")"
		default:
			parts[i] = f.Text
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// classifyBJT implements spec §4.7's Q device. The common 3-terminal
// "C B E model [area]" form is the only template: the first three fields
// are the nodes and the fourth is tagged MODEL_NAME. Extended forms with a
// substrate or thermal node are not recognized; their fourth node is tagged
// MODEL_NAME and the actual model name falls to positional-until-named.
func classifyBJT(fields []Field) []token.Token {
	nodeRoles := []token.Class{token.CollectorNode, token.BaseNode, token.EmitterNode}
	var out []token.Token
	idx := 0
	for idx < len(nodeRoles) && idx < len(fields) {
		out = append(out, fieldToken(fields[idx], nodeRoles[idx]))
		idx++
	}
	if idx < len(fields) && fields[idx].Kind != KindKeyValue {
		out = append(out, fieldToken(fields[idx], token.ModelName))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], []token.Class{token.AreaValue})...)
	return out
}

// classifyMOSFET implements spec §4.7's M device. The canonical 4-terminal
// "D G S B model" form is the only template: the first four fields are the
// nodes and the fifth is tagged MODEL_NAME. Extended forms with more nodes
// are not recognized; their fifth node is tagged MODEL_NAME and the actual
// model name falls to positional-until-named.
func classifyMOSFET(fields []Field) []token.Token {
	nodeRoles := []token.Class{token.DrainNode, token.GateNode, token.SourceNode, token.BodyNode}
	var out []token.Token
	idx := 0
	for idx < len(nodeRoles) && idx < len(fields) {
		out = append(out, fieldToken(fields[idx], nodeRoles[idx]))
		idx++
	}
	if idx < len(fields) && fields[idx].Kind != KindKeyValue {
		out = append(out, fieldToken(fields[idx], token.ModelName))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], nil)...)
	return out
}

// classifyMutualInductor implements spec §4.7's K device: either a list of
// coupled-inductor names followed by the coupling value/model, or the
// two-inductor form with an optional "K=" prefix on the coupling value.
func classifyMutualInductor(fields []Field) []token.Token {
	var out []token.Token
	for i, f := range fields {
		if f.Kind == KindKeyValue && strings.EqualFold(f.Text, "K") {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, token.New(f.Value, token.CouplingValue))
			continue
		}
		if i == len(fields)-1 {
			out = append(out, fieldToken(f, token.CouplingValue, token.ModelName))
			continue
		}
		out = append(out, fieldToken(f, token.FuncNameValue))
	}
	return out
}

// classifyControlledSource implements spec §4.7's E/G devices: the four
// shapes POLY(n) args…, VALUE = {expr}, TABLE {expr} = (x,y)…, and the
// simple "pos neg ctrl+ ctrl- gain" form.
func classifyControlledSource(letter byte, fields []Field) []token.Token {
	var out []token.Token
	if len(fields) < 2 {
		return out
	}
	out = append(out, fieldToken(fields[0], token.PosNode))
	out = append(out, fieldToken(fields[1], token.NegNode))
	rest := fields[2:]

	if len(rest) > 0 && rest[0].Kind == KindBare && strings.EqualFold(rest[0].Text, "POLY") {
		out = append(out, token.New(rest[0].Text, token.Poly))
		out = append(out, classifyPositionalUntilNamed(rest[1:], []token.Class{token.ControlPosNode, token.ControlNegNode, token.GainValue})...)
		return out
	}
	if len(rest) > 0 && rest[0].Kind == KindKeyValue && strings.EqualFold(rest[0].Text, "VALUE") {
		out = append(out, token.New(rest[0].Text, token.ValueKeyword))
		out = append(out, token.New(rest[0].Value, token.Expression))
		return out
	}
	if len(rest) > 0 && rest[0].Kind == KindBare && strings.EqualFold(rest[0].Text, "TABLE") {
		out = append(out, token.New(rest[0].Text, token.Table))
		out = append(out, classifyPositionalUntilNamed(rest[1:], []token.Class{token.Expression})...)
		return out
	}
	out = append(out, classifyPositionalUntilNamed(rest, []token.Class{token.ControlPosNode, token.ControlNegNode, token.GainValue})...)
	_ = letter
	return out
}

// classifyIndependentSource implements spec §4.7's V/I devices: an
// interleaving of DC, AC, and one transient function (PULSE, SIN, EXP, PWL,
// SFFM).
func classifyIndependentSource(fields []Field) []token.Token {
	var out []token.Token
	if len(fields) < 2 {
		return out
	}
	out = append(out, fieldToken(fields[0], token.PosNode))
	out = append(out, fieldToken(fields[1], token.NegNode))

	transientFuncs := map[string]bool{"PULSE": true, "SIN": true, "EXP": true, "PWL": true, "SFFM": true}

	for _, f := range fields[2:] {
		switch f.Kind {
		case KindKeyValue:
			switch strings.ToUpper(f.Text) {
			case "DC":
				out = append(out, token.New(f.Text, token.SweepType))
				out = append(out, token.New(f.Value, token.DCValueValue))
			case "AC":
				out = append(out, token.New(f.Text, token.SweepType))
				out = append(out, token.New(f.Value, token.ACMagValue))
			default:
				out = append(out, token.New(f.Text, token.ParamName))
				out = append(out, valueFieldToken(f))
			}
		case KindBare:
			upper := strings.ToUpper(f.Text)
			if upper == "DC" || upper == "AC" {
				out = append(out, token.New(f.Text, token.SweepType))
				continue
			}
			if transientFuncs[upper] {
				out = append(out, token.New(f.Text, token.FuncNameValue))
				continue
			}
			out = append(out, fieldToken(f, token.GeneralValue))
		case KindParenGroup:
			out = append(out, token.New(renderGroup(f.Group), token.FuncExpression))
		default:
			out = append(out, fieldToken(f, token.GeneralValue))
		}
	}
	return out
}

// classifySubcircuitCall implements spec §4.7's X device: node identifiers
// followed by the subcircuit name, then optionally a "PARAMS:" header and
// named parameters. The subcircuit name is the last bare identifier before
// either the "PARAMS:" marker or the first key=value pair, whichever comes
// first — everything bare before it is a node.
func classifySubcircuitCall(fields []Field) []token.Token {
	bareEnd := 0
	for bareEnd < len(fields) && fields[bareEnd].Kind != KindKeyValue && !strings.EqualFold(fields[bareEnd].Text, "PARAMS:") {
		bareEnd++
	}

	var out []token.Token
	idx := 0
	for ; idx < bareEnd-1; idx++ {
		out = append(out, fieldToken(fields[idx], token.GeneralNode))
	}
	if idx < bareEnd {
		out = append(out, fieldToken(fields[idx], token.ModelName))
		idx++
	}
	if idx < len(fields) && strings.EqualFold(fields[idx].Text, "PARAMS:") {
		out = append(out, token.New(fields[idx].Text, token.ParamsHeader))
		idx++
	}
	out = append(out, classifyPositionalUntilNamed(fields[idx:], nil)...)
	return out
}

// classifyBehavioral implements a B-source device: two nodes plus a
// V={expr} or I={expr} behavioral definition.
func classifyBehavioral(fields []Field) []token.Token {
	var out []token.Token
	if len(fields) < 2 {
		return out
	}
	out = append(out, fieldToken(fields[0], token.PosNode))
	out = append(out, fieldToken(fields[1], token.NegNode))
	for _, f := range fields[2:] {
		if f.Kind == KindKeyValue {
			out = append(out, token.New(f.Text, token.ParamName))
			out = append(out, token.New(f.Value, token.Expression))
			continue
		}
		out = append(out, fieldToken(f, token.GeneralValue))
	}
	return out
}

// IsDeviceLetter reports whether c names one of the base Xyce device
// letters (spec §4.7).
func IsDeviceLetter(c byte) bool {
	switch c {
	case 'R', 'C', 'L', 'D', 'Q', 'M', 'J', 'V', 'I', 'E', 'F', 'G', 'H', 'K',
		'S', 'W', 'T', 'O', 'X', 'Y', 'B', 'P', 'Z':
		return true
	}
	return false
}
