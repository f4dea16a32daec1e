package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyce-xdm/xdm-core/pkg/expr"
	"github.com/xyce-xdm/xdm-core/pkg/token"
)

func TestPrint_RoundTripsOperatorClasses(t *testing.T) {
	root, err := expr.Parse("1 + 2 * 3")
	require.NoError(t, err)

	toks := expr.Print(root.Inner)
	var classes []token.Class
	for _, tok := range toks {
		classes = append(classes, tok.Classes[0])
	}

	assert.Contains(t, classes, token.Add)
	assert.Contains(t, classes, token.Multiply)
	assert.Contains(t, classes, token.ParamValue)
}

func TestPrint_Assignment(t *testing.T) {
	root, err := expr.Parse("freq = 1k")
	require.NoError(t, err)

	toks := expr.Print(root.Inner)
	require.Len(t, toks, 2)
	assert.Equal(t, "freq", toks[0].Value)
	assert.True(t, toks[0].Has(token.ParamName))
	assert.Equal(t, "1k", toks[1].Value)
	assert.True(t, toks[1].Has(token.ParamValue))
}
