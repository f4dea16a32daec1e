package expr

import "github.com/xyce-xdm/xdm-core/pkg/token"

// Print performs the pre-order walk of spec §4.5: it linearizes an AST back
// into the sequence of classified tokens a netlist grammar embeds for an
// inline expression (e.g. the RHS of a .PARAM).
func Print(e Expr) []token.Token {
	var out []token.Token
	appendPrint(&out, e)
	return out
}

func appendPrint(out *[]token.Token, e Expr) {
	switch n := e.(type) {
	case nil, Nil:
		return
	case Root:
		appendPrint(out, n.Inner)
	case Number:
		*out = append(*out, token.New(n.Literal, token.ParamValue))
	case Variable:
		*out = append(*out, token.New(n.Name, token.ParamName))
	case Unary:
		*out = append(*out, token.New(string(n.Sign), signClass(n.Sign)))
		appendPrint(out, n.Operand)
	case BinOp:
		appendPrint(out, n.First)
		for _, term := range n.Rest {
			*out = append(*out, token.New(string(term.Op), binOpClass(term.Op)))
			appendPrint(out, term.Rhs)
		}
	case BoolOp:
		appendPrint(out, n.First)
		for _, term := range n.Rest {
			*out = append(*out, token.New(string(term.Op), boolOpClass(term.Op)))
			appendPrint(out, term.Rhs)
		}
	case Ternary:
		*out = append(*out, token.New(n.CondText, token.TernaryCondition))
		*out = append(*out, token.New(n.LeftText, token.TernaryLeft))
		*out = append(*out, token.New(n.RightText, token.TernaryRight))
	case Assignment:
		*out = append(*out, token.New(n.Name, token.ParamName))
		appendPrint(out, n.Rhs)
	case FuncDef:
		name, _, _ := splitSignature(n.SignatureText)
		*out = append(*out, token.New(name, token.FuncName))
		*out = append(*out, token.New("(", token.FuncBegin))
		*out = append(*out, token.New(n.BodyText, token.FuncArg))
		*out = append(*out, token.New(")", token.FuncEnd))
	case FuncCall:
		appendCall(out, n.CallText)
	case BuiltIn:
		appendCall(out, n.CallText)
	}
}

func appendCall(out *[]token.Token, callText string) {
	name, argBody := callNameAndArgs(callText)
	*out = append(*out, token.New(name, token.FuncName))
	*out = append(*out, token.New("(", token.FuncBegin))
	for _, a := range splitArgs(argBody) {
		*out = append(*out, token.New(a, token.FuncArg))
	}
	*out = append(*out, token.New(")", token.FuncEnd))
}

func signClass(sign byte) token.Class {
	if sign == '-' {
		return token.Subtract
	}
	return token.Add
}

func binOpClass(op BinOpKind) token.Class {
	switch op {
	case OpAdd:
		return token.Add
	case OpSubtract:
		return token.Subtract
	case OpMultiply:
		return token.Multiply
	case OpDivide:
		return token.Divide
	case OpPower:
		return token.Power
	}
	return token.Expression
}

func boolOpClass(op BoolOpKind) token.Class {
	switch op {
	case OpOr:
		return token.LogicalOr
	case OpAnd:
		return token.LogicalAnd
	case OpEqual:
		return token.Equality
	case OpNotEqual:
		return token.Inequality
	case OpGreater:
		return token.GreaterThan
	case OpGreaterEqual:
		return token.GreaterThanOrEqual
	case OpLess:
		return token.LessThan
	case OpLessEqual:
		return token.LessThanOrEqual
	}
	return token.Expression
}
