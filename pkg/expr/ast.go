// Package expr implements the netlist expression sub-language: arithmetic,
// boolean and ternary operators, user-defined functions, built-ins and
// engineering-notation numeric literals. It provides both a grammar (for
// rewriting an expression into classified tokens) and an evaluator (for
// resolving a parameter's numeric value during translation).
package expr

// Expr is the recursive variant AST produced by the grammar. Construction is
// performed only by the grammar (Parse); the evaluator and printer are pure
// consumers and never mutate a node once it has been handed to them.
//
// Ownership is exclusive: every composite node owns its children and the
// grammar is context-free/recursive-descent, so no cycle can be built.
type Expr interface{ exprNode() }

// Nil is the empty expression, produced by Parse for empty (or
// whitespace-only) input.
type Nil struct{}

// Number is an unparsed numeric literal; the SI suffix (if any) is resolved
// at evaluation time, not at parse time, so the literal string is retained
// verbatim.
type Number struct{ Literal string }

// Variable is a name reference resolved against the evaluator's variables
// table; a miss evaluates to quiet NaN.
type Variable struct{ Name string }

// Unary applies a leading sign to its operand.
type Unary struct {
	Sign    byte // '+' or '-'
	Operand Expr
}

// BinOpKind enumerates the arithmetic operators of the expr precedence
// chain (spec §4.3 levels 3–5).
type BinOpKind string

const (
	OpAdd      BinOpKind = "+"
	OpSubtract BinOpKind = "-"
	OpMultiply BinOpKind = "*"
	OpDivide   BinOpKind = "/"
	OpPower    BinOpKind = "**" // '^' is accepted as a synonym by the grammar
)

// BinOpTerm is one (operator, right-hand-side) link in a left-associative
// arithmetic chain.
type BinOpTerm struct {
	Op  BinOpKind
	Rhs Expr
}

// BinOp is a left-associative chain of arithmetic operations sharing a
// common first operand, mirroring the reference `expr{first, rest}` shape.
type BinOp struct {
	First Expr
	Rest  []BinOpTerm
}

// BoolOpKind enumerates the boolean/relational operators (spec §4.3 levels
// 1–2).
type BoolOpKind string

const (
	OpOr          BoolOpKind = "||"
	OpAnd         BoolOpKind = "&&"
	OpEqual       BoolOpKind = "=="
	OpNotEqual    BoolOpKind = "!="
	OpLess        BoolOpKind = "<"
	OpLessEqual   BoolOpKind = "<="
	OpGreater     BoolOpKind = ">"
	OpGreaterEqual BoolOpKind = ">="
)

// BoolOpTerm is one (operator, right-hand-side) link in a left-associative
// boolean/relational chain.
type BoolOpTerm struct {
	Op  BoolOpKind
	Rhs Expr
}

// BoolOp is a left-associative chain of boolean/relational operations.
type BoolOp struct {
	First Expr
	Rest  []BoolOpTerm
}

// Ternary stores its three branches as unparsed source substrings rather
// than pre-parsed subtrees. This is essential for correctness: the dead
// branch may contain ill-typed or undefined references and must never be
// parsed or evaluated (spec §9 "Lazy sub-expressions").
type Ternary struct {
	CondText  string
	LeftText  string
	RightText string
}

// Assignment stores a numeric value into the variables table and evaluates
// to that value.
type Assignment struct {
	Name string
	Rhs  Expr
}

// FuncDef records a user function's signature and body as source text; both
// are re-parsed lazily (on call, and per-argument) rather than eagerly, to
// preserve caller-scope evaluation order (spec §9).
type FuncDef struct {
	SignatureText string
	BodyText      string
}

// FuncCall captures an entire call expression (name plus parenthesized
// argument list) as source text, split and evaluated by the evaluator under
// the shadow-and-restore discipline (spec §4.4).
type FuncCall struct{ CallText string }

// BuiltIn captures an entire built-in call expression as source text,
// dispatched case-insensitively by the evaluator (spec §4.4).
type BuiltIn struct{ CallText string }

// Root wraps whatever top-level production matched: an Assignment, a
// FuncDef, or a bare BoolOp/BinOp/etc.
type Root struct{ Inner Expr }

func (Nil) exprNode()        {}
func (Number) exprNode()     {}
func (Variable) exprNode()   {}
func (Unary) exprNode()      {}
func (BinOp) exprNode()      {}
func (BoolOp) exprNode()     {}
func (Ternary) exprNode()    {}
func (Assignment) exprNode() {}
func (FuncDef) exprNode()    {}
func (FuncCall) exprNode()   {}
func (BuiltIn) exprNode()    {}
func (Root) exprNode()       {}
