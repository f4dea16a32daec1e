package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyce-xdm/xdm-core/pkg/expr"
)

func mustEval(t *testing.T, ev *expr.Evaluator, input string) float64 {
	t.Helper()
	root, err := expr.Parse(input)
	require.NoError(t, err, input)
	return ev.Eval(root.Inner)
}

func TestFuncDef_ShadowAndRestore(t *testing.T) {
	symbols := expr.NewSymbolTable()
	ev := expr.NewEvaluator(symbols)

	symbols.Variables["x"] = 99

	mustEval(t, ev, "func(x) = {x * 2}")
	got := mustEval(t, ev, "func(21)")

	assert.Equal(t, 42.0, got)
	// x's pre-call binding must be restored exactly, on the success path.
	assert.Equal(t, 99.0, symbols.Variables["x"])
}

func TestFuncDef_ShadowAndRestore_OnNaNArgument(t *testing.T) {
	symbols := expr.NewSymbolTable()
	ev := expr.NewEvaluator(symbols)

	symbols.Variables["y"] = 7

	mustEval(t, ev, "f(y) = {y + 1}")
	got := mustEval(t, ev, "f(unboundVar)")

	assert.True(t, math.IsNaN(got))
	// restored even though the call failed midway through binding.
	assert.Equal(t, 7.0, symbols.Variables["y"])
}

func TestFuncCall_ProgressiveBinding(t *testing.T) {
	symbols := expr.NewSymbolTable()
	ev := expr.NewEvaluator(symbols)

	// second argument's expression references the first formal by name,
	// which must already be bound by the time it's evaluated.
	mustEval(t, ev, "g(a,b) = {a + b}")
	got := mustEval(t, ev, "g(3, a*2)")
	assert.Equal(t, 9.0, got)
}

func TestFuncCall_Undefined_IsNaN(t *testing.T) {
	ev := expr.NewEvaluator(expr.NewSymbolTable())
	got := mustEval(t, ev, "neverDefined(1)")
	assert.True(t, math.IsNaN(got))
}

func TestAssignment_UpdatesSymbolTable(t *testing.T) {
	symbols := expr.NewSymbolTable()
	ev := expr.NewEvaluator(symbols)

	got := mustEval(t, ev, "z = 3 + 4")
	assert.Equal(t, 7.0, got)
	assert.Equal(t, 7.0, symbols.Variables["z"])
}

func TestBuiltins_Dispatch(t *testing.T) {
	ev := expr.NewEvaluator(expr.NewSymbolTable())

	cases := []struct {
		input string
		want  float64
	}{
		{"abs(-5)", 5},
		{"max(1,2)", 2},
		{"min(1,2)", 1},
		{"sqrt(16)", 4},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, mustEval(t, ev, c.input), 1e-9, c.input)
	}
}

func TestEvalText_ParseFailure_IsNaN_AndWarns(t *testing.T) {
	var messages []string
	ev := &expr.Evaluator{Symbols: expr.NewSymbolTable(), Diagnostics: func(msg string) {
		messages = append(messages, msg)
	}}

	got := ev.EvalText("1 + + +")
	assert.True(t, math.IsNaN(got))
	assert.NotEmpty(t, messages)
}
