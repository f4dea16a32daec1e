package driver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyce-xdm/xdm-core/pkg/driver"
	"github.com/xyce-xdm/xdm-core/pkg/token"
)

func allLines(t *testing.T, s *driver.Session) []driver.ParsedLine {
	t.Helper()
	var out []driver.ParsedLine
	for {
		pl, ok, err := s.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, pl)
	}
	return out
}

func TestSession_TitleLineIsNeverParsed(t *testing.T) {
	src := "R1 1 0 1k\nR1 1 0 1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 2)
	assert.Equal(t, token.Title, out[0].Tokens[0].Classes[0])
	assert.Equal(t, "R1 1 0 1k", out[0].Tokens[0].Value)
	assert.Equal(t, token.DeviceID, out[1].Tokens[0].Classes[0])
}

func TestSession_CommentLinesPassThrough(t *testing.T) {
	// Line 1 always claims the mandatory-title slot, even though it looks
	// like a device line here; a comment appearing after it is a normal
	// COMMENT line.
	src := "Test Title\n* a standalone comment\nR1 1 0 1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 3)
	assert.Equal(t, token.Title, out[0].Tokens[0].Classes[0])
	assert.Equal(t, token.Comment, out[1].Tokens[0].Classes[0])
	assert.Equal(t, token.DeviceID, out[2].Tokens[0].Classes[0])
}

func TestSession_ParseFailureRecoversLocally(t *testing.T) {
	src := "Test Title\nA1 1 0 bogus\nR1 1 0 1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 3)
	assert.True(t, out[1].Recovered())
	assert.Equal(t, "warn", out[1].ErrorKind)
	assert.Equal(t, out[1].SourceLine, out[1].ErrorMessage)
	assert.True(t, strings.HasPrefix(out[1].SourceLine, "*"))
	assert.Contains(t, out[1].SourceLine, "A1 1 0 bogus")
	assert.Contains(t, out[1].SourceLine, "Parser Retained (as a comment). Continuing.")
	require.Len(t, out[1].Tokens, 1)
	assert.Equal(t, token.Comment, out[1].Tokens[0].Classes[0])
	assert.False(t, out[2].Recovered())
	assert.Equal(t, 1, s.Diag.Len())
}

func TestSession_InlineCommentAppended(t *testing.T) {
	src := "Test Title\nR1 1 0 1k $ trim resistor\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 2)
	last := out[1].Tokens[len(out[1].Tokens)-1]
	assert.Equal(t, token.InlineComment, last.Classes[0])
	assert.Equal(t, "$ trim resistor", last.Value)
}

func TestSession_Spectre_HasTitleLine(t *testing.T) {
	// Spectre's original parser interface applies the same line-1 title
	// rule as the Xyce family; it is not exempt.
	src := "// a Spectre deck\nR1 (n1 n2) resistor r=1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.scs", "spectre")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 2)
	assert.Equal(t, token.Title, out[0].Tokens[0].Classes[0])
	assert.Equal(t, "R1", out[1].Tokens[0].Value)
}

func TestSession_Spectre_StatisticsBlockCommentedOut(t *testing.T) {
	src := "// a Spectre deck\nstatistics {\nprocess {\n}\n}\nR1 (n1 n2) resistor r=1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.scs", "spectre")
	require.NoError(t, err)

	out := allLines(t, s)
	require.Len(t, out, 6)
	assert.Equal(t, token.Title, out[0].Tokens[0].Classes[0])

	// "statistics {" opens the block: commented out, with the warn fields set.
	assert.Equal(t, token.Comment, out[1].Tokens[0].Classes[0])
	assert.Equal(t, "warn", out[1].ErrorKind)
	assert.True(t, strings.HasPrefix(out[1].SourceLine, "//"))
	assert.Contains(t, out[1].SourceLine, "Spectre statistics block Retained (as a comment). Continuing.")

	// Lines inside the block are commented out silently, no error fields.
	assert.Equal(t, token.Comment, out[2].Tokens[0].Classes[0])
	assert.Empty(t, out[2].ErrorKind)
	assert.Equal(t, token.Comment, out[3].Tokens[0].Classes[0])
	assert.Empty(t, out[3].ErrorKind)
	assert.Equal(t, token.Comment, out[4].Tokens[0].Classes[0])

	// Once bracket_count returns to zero, ordinary dispatch resumes.
	assert.Equal(t, "R1", out[5].Tokens[0].Value)
	assert.Equal(t, 0, s.Diag.Len())
}

func TestSession_Spectre_UnclosedStatisticsBlockWarnsAtEOF(t *testing.T) {
	src := "// a Spectre deck\nstatistics {\nprocess {\n}\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.scs", "spectre")
	require.NoError(t, err)

	_ = allLines(t, s)
	assert.Equal(t, 1, s.Diag.Len())
}

func TestSession_UnknownDialect_Errors(t *testing.T) {
	_, err := driver.NewSession(strings.NewReader(""), "t.cir", "not-a-dialect")
	assert.Error(t, err)
}

func TestSession_UnclosedSubckt_WarnsAtEOF(t *testing.T) {
	src := "Test Title\n.SUBCKT MYSUB in out\nR1 in out 1k\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	_ = allLines(t, s)
	assert.Equal(t, 1, s.Diag.Len())
}

func TestSession_BalancedSubckt_NoWarning(t *testing.T) {
	src := "Test Title\n.SUBCKT MYSUB in out\nR1 in out 1k\n.ENDS MYSUB\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	_ = allLines(t, s)
	assert.Equal(t, 0, s.Diag.Len())
}

func TestSession_UnmatchedEnds_WarnsImmediately(t *testing.T) {
	src := "Test Title\n.ENDS\n"
	s, err := driver.NewSession(strings.NewReader(src), "t.cir", "xyce")
	require.NoError(t, err)

	_ = allLines(t, s)
	assert.Equal(t, 1, s.Diag.Len())
}
