package lines_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyce-xdm/xdm-core/pkg/lines"
)

func stripDollar(line string) (string, string) {
	if idx := strings.Index(line, "$"); idx >= 0 {
		return line[:idx], line[idx:]
	}
	return line, ""
}

func readAll(t *testing.T, input string) []lines.LogicalLine {
	t.Helper()
	r := lines.New(strings.NewReader(input), "test.cir", []string{"*"}, stripDollar)
	var out []lines.LogicalLine
	for {
		ll, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, ll)
	}
	return out
}

func TestReader_PlusContinuation(t *testing.T) {
	out := readAll(t, "R1 1 0 1k\n+ tc1=0.01\n+ tc2=0.001\n")
	require.Len(t, out, 1)
	assert.Equal(t, "R1 1 0 1k tc1=0.01 tc2=0.001", out[0].Text)
	assert.Equal(t, []int{1, 2, 3}, out[0].LineNumbers)
}

func TestReader_BackslashContinuation(t *testing.T) {
	out := readAll(t, "R1 1 0 \\\n1k\n")
	require.Len(t, out, 1)
	assert.Equal(t, "R1 1 0  1k", out[0].Text)
}

func TestReader_StrayLeadingParen(t *testing.T) {
	out := readAll(t, "V1 1 0 PULSE(0 5 0 1n 1n\n)10n 20n)\n")
	require.Len(t, out, 1)
	assert.Equal(t, "V1 1 0 PULSE(0 5 0 1n 1n)10n 20n)", out[0].Text)
}

func TestReader_CommentLine_IsOwnLogicalLine(t *testing.T) {
	out := readAll(t, "* a standalone comment\nR1 1 0 1k\n")
	require.Len(t, out, 2)
	assert.Equal(t, "* a standalone comment", out[0].Text)
	assert.Equal(t, "R1 1 0 1k", out[1].Text)
}

func TestReader_CommentInterruptsContinuation(t *testing.T) {
	// The comment always stands alone: it must not absorb the "+" line
	// that follows it, and since the interrupted statement was already
	// flushed, that "+" line has nothing left to continue and becomes its
	// own (literal, unmerged) logical line.
	out := readAll(t, "R1 1 0 1k\n* comment\n+ tc1=0.01\n")
	require.Len(t, out, 3)
	assert.Equal(t, "R1 1 0 1k", out[0].Text)
	assert.Equal(t, "* comment", out[1].Text)
	assert.Equal(t, "+ tc1=0.01", out[2].Text)
}

func TestReader_BlankLinesIgnored(t *testing.T) {
	out := readAll(t, "R1 1 0 1k\n\n\nC1 1 0 1u\n")
	require.Len(t, out, 2)
	assert.Equal(t, "R1 1 0 1k", out[0].Text)
	assert.Equal(t, "C1 1 0 1u", out[1].Text)
}
