package expr

import (
	"math"
	"strings"
)

// SymbolTable holds the three mutable, process-lifetime mappings the
// evaluator reads and writes (spec §3).
type SymbolTable struct {
	Variables       map[string]float64
	FunctionBodies  map[string]string
	FunctionFormals map[string][]string
}

// NewSymbolTable returns an empty, ready-to-use SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Variables:       map[string]float64{},
		FunctionBodies:  map[string]string{},
		FunctionFormals: map[string][]string{},
	}
}

// Evaluator reduces an AST to a float64 against a SymbolTable. It never
// fails: every unresolved or malformed path returns quiet NaN (spec §4.4,
// §7 "the evaluator never fails; it returns NaN").
type Evaluator struct {
	Symbols *SymbolTable
	// Diagnostics, when non-nil, receives a message for conditions spec §9
	// says implementations SHOULD surface (phrase-parse errors swallowed by
	// the reference) without failing evaluation.
	Diagnostics func(msg string)
}

// NewEvaluator returns an Evaluator bound to the given symbol table.
func NewEvaluator(symbols *SymbolTable) *Evaluator {
	return &Evaluator{Symbols: symbols}
}

// EvalText parses and evaluates a complete expression, the signature spec
// §6 calls the "expression evaluator boundary": process_input.
func (e *Evaluator) EvalText(input string) float64 {
	root, err := Parse(input)
	if err != nil {
		e.warn("parse failure: " + err.Error())
		return math.NaN()
	}
	return e.Eval(root.Inner)
}

func (e *Evaluator) warn(msg string) {
	if e.Diagnostics != nil {
		e.Diagnostics(msg)
	}
}

// Eval reduces a single AST node (spec §4.4 semantics, node by node).
func (e *Evaluator) Eval(node Expr) float64 {
	switch n := node.(type) {
	case nil:
		return math.NaN()
	case Nil:
		return math.NaN()
	case Number:
		return ParseNumberLiteral(n.Literal)
	case Variable:
		v, ok := e.Symbols.Variables[n.Name]
		if !ok {
			return math.NaN()
		}
		return v
	case Unary:
		rhs := e.Eval(n.Operand)
		if n.Sign == '-' {
			return -rhs
		}
		return rhs
	case BinOp:
		return e.evalBinOp(n)
	case BoolOp:
		return e.evalBoolOp(n)
	case Ternary:
		return e.evalTernary(n)
	case Assignment:
		v := e.Eval(n.Rhs)
		e.Symbols.Variables[n.Name] = v
		return v
	case FuncDef:
		name, formals, ok := splitSignature(n.SignatureText)
		if !ok {
			e.warn("malformed function signature: " + n.SignatureText)
			return math.NaN()
		}
		e.Symbols.FunctionFormals[name] = formals
		e.Symbols.FunctionBodies[name] = n.BodyText
		return math.NaN()
	case FuncCall:
		return e.evalFuncCall(n)
	case BuiltIn:
		return e.evalBuiltIn(n)
	case Root:
		return e.Eval(n.Inner)
	default:
		return math.NaN()
	}
}

func (e *Evaluator) evalBinOp(n BinOp) float64 {
	v := e.Eval(n.First)
	for _, term := range n.Rest {
		rhs := e.Eval(term.Rhs)
		switch term.Op {
		case OpAdd:
			v = v + rhs
		case OpSubtract:
			v = v - rhs
		case OpMultiply:
			v = v * rhs
		case OpDivide:
			v = v / rhs
		case OpPower:
			v = math.Pow(v, rhs)
		}
	}
	return v
}

func (e *Evaluator) evalBoolOp(n BoolOp) float64 {
	v := e.Eval(n.First)
	for _, term := range n.Rest {
		if math.IsNaN(v) {
			return math.NaN()
		}
		rhs := e.Eval(term.Rhs)
		if math.IsNaN(rhs) {
			return math.NaN()
		}
		switch term.Op {
		case OpOr:
			v = boolToFloat(truthy(v) || truthy(rhs))
		case OpAnd:
			v = boolToFloat(truthy(v) && truthy(rhs))
		case OpEqual:
			v = boolToFloat(v == rhs)
		case OpNotEqual:
			v = boolToFloat(v != rhs)
		case OpLess:
			v = boolToFloat(v < rhs)
		case OpLessEqual:
			v = boolToFloat(v <= rhs)
		case OpGreater:
			v = boolToFloat(v > rhs)
		case OpGreaterEqual:
			v = boolToFloat(v >= rhs)
		}
	}
	return v
}

func truthy(v float64) bool { return v != 0 }

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func (e *Evaluator) evalTernary(n Ternary) float64 {
	cond := e.EvalText(n.CondText)
	if math.IsNaN(cond) {
		return math.NaN()
	}
	if cond == 0 {
		return e.EvalText(n.RightText)
	}
	return e.EvalText(n.LeftText)
}

// splitArgs splits a call's argument-list body on commas, rejoining pieces
// whose parenthesis count is unbalanced — the exact algorithm the
// reference implementation uses (original_source's funcEval/builtIn
// handlers), needed because a nested call's own commas must not be treated
// as argument separators.
func splitArgs(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	rawParts := strings.Split(body, ",")
	var args []string
	var curr string
	for _, part := range rawParts {
		if curr == "" {
			curr = part
		} else {
			curr = curr + "," + part
		}
		open := strings.Count(curr, "(")
		if open > 0 {
			close := strings.Count(curr, ")")
			if open != close {
				continue
			}
		}
		args = append(args, curr)
		curr = ""
	}
	if curr != "" {
		args = append(args, curr)
	}
	return args
}

// callNameAndArgs splits "name(a,b,c)" into "name" and the raw,
// un-split argument body "a,b,c".
func callNameAndArgs(callText string) (name, body string) {
	idx := strings.IndexByte(callText, '(')
	if idx == -1 {
		return strings.TrimSpace(callText), ""
	}
	name = strings.TrimSpace(callText[:idx])
	rest := callText[idx+1:]
	if len(rest) > 0 && rest[len(rest)-1] == ')' {
		rest = rest[:len(rest)-1]
	}
	return name, rest
}

// splitSignature splits "name(a,b,c)" into the function name and its
// ordered formal-parameter names (spec §4.4 FuncDef).
func splitSignature(sig string) (name string, formals []string, ok bool) {
	name, body := callNameAndArgs(sig)
	if name == "" {
		return "", nil, false
	}
	if strings.TrimSpace(body) == "" {
		return name, nil, true
	}
	for _, a := range strings.Split(body, ",") {
		formals = append(formals, strings.TrimSpace(a))
	}
	return name, formals, true
}

// evalFuncCall implements spec §4.4's FuncCall semantics and the
// shadow-and-restore invariant (spec §3 invariant 5, §9): every formal's
// pre-call binding is snapshotted, restored on every exit path, success or
// NaN.
func (e *Evaluator) evalFuncCall(n FuncCall) float64 {
	name, argBody := callNameAndArgs(n.CallText)
	formals, known := e.Symbols.FunctionFormals[name]
	body, hasBody := e.Symbols.FunctionBodies[name]
	if !known || !hasBody {
		e.warn("call to undefined function: " + name)
		return math.NaN()
	}

	args := splitArgs(argBody)

	type saved struct {
		name   string
		value  float64
		wasSet bool
	}
	var snapshot []saved

	restore := func() {
		for _, s := range snapshot {
			if s.wasSet {
				e.Symbols.Variables[s.name] = s.value
			} else {
				delete(e.Symbols.Variables, s.name)
			}
		}
	}

	failed := false
	for i, formalName := range formals {
		var argText string
		if i < len(args) {
			argText = args[i]
		}
		argValue := e.EvalText(argText)

		prev, wasSet := e.Symbols.Variables[formalName]
		snapshot = append(snapshot, saved{name: formalName, value: prev, wasSet: wasSet})
		e.Symbols.Variables[formalName] = argValue

		if math.IsNaN(argValue) {
			failed = true
			break
		}
	}

	if failed {
		restore()
		return math.NaN()
	}

	result := e.EvalText(body)
	restore()
	return result
}

// evalBuiltIn implements spec §4.4's built-in dispatch table.
func (e *Evaluator) evalBuiltIn(n BuiltIn) float64 {
	name, argBody := callNameAndArgs(n.CallText)
	name = strings.ToLower(name)
	args := splitArgs(argBody)

	vals := make([]float64, len(args))
	for i, a := range args {
		vals[i] = e.EvalText(a)
	}

	return dispatchBuiltin(name, vals)
}
