package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyce-xdm/xdm-core/pkg/dialect"
	"github.com/xyce-xdm/xdm-core/pkg/token"
)

func TestHSPICE_OptionSingularAliasesOptions(t *testing.T) {
	h := dialect.NewHSPICE()
	toks, err := h.ParseLine(".OPTION RELTOL=1e-3")
	require.NoError(t, err)

	require.Len(t, toks, 3)
	assert.Equal(t, ".OPTIONS", toks[0].Value)
}

func TestHSPICE_DataBlock_RowsClassifiedUntilEndData(t *testing.T) {
	h := dialect.NewHSPICE()

	header, err := h.ParseLine(".DATA mytable vin vout")
	require.NoError(t, err)
	require.Len(t, header, 4)
	assert.Equal(t, token.DirectiveType, header[0].Classes[0])
	assert.Equal(t, ".DATA", header[0].Value)
	assert.Equal(t, token.ParamName, header[1].Classes[0])
	assert.Equal(t, "mytable", header[1].Value)

	row, err := h.ParseLine("1 2")
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, token.DataParamValue, row[0].Classes[0])
	assert.Equal(t, "1", row[0].Value)
	assert.Equal(t, token.DataParamValue, row[1].Classes[0])

	end, err := h.ParseLine(".ENDDATA")
	require.NoError(t, err)
	require.Len(t, end, 1)
	assert.Equal(t, ".ENDDATA", end[0].Value)

	// Once the block is closed, ordinary device lines parse normally again.
	toks, err := h.ParseLine("R1 1 0 1k")
	require.NoError(t, err)
	assert.Equal(t, token.DeviceID, toks[0].Classes[0])
}

func TestHSPICE_IfElseifElseEndif(t *testing.T) {
	h := dialect.NewHSPICE()

	ifToks, err := h.ParseLine(".IF (temp > 25)")
	require.NoError(t, err)
	require.Len(t, ifToks, 2)
	assert.Equal(t, token.DirectiveType, ifToks[0].Classes[0])
	assert.Equal(t, token.ConditionalStatement, ifToks[1].Classes[0])

	elseifToks, err := h.ParseLine(".ELSEIF (temp > 0)")
	require.NoError(t, err)
	require.Len(t, elseifToks, 2)

	elseToks, err := h.ParseLine(".ELSE")
	require.NoError(t, err)
	require.Len(t, elseToks, 1)

	endifToks, err := h.ParseLine(".ENDIF")
	require.NoError(t, err)
	require.Len(t, endifToks, 1)
}
