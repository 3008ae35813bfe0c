package dotenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	f, err := Parse("KEY=value")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"KEY": "value"}, f.Variables())
}

func TestParseWithSpaces(t *testing.T) {
	f, err := Parse("  KEY  =  value  ")
	require.NoError(t, err)
	assert.Equal(t, "value", f.Variables()["KEY"])
}

func TestParseDoubleQuoted(t *testing.T) {
	f, err := Parse(`KEY="value with spaces"`)
	require.NoError(t, err)
	assert.Equal(t, "value with spaces", f.Variables()["KEY"])
}

func TestParseSingleQuoted(t *testing.T) {
	f, err := Parse(`KEY='value with spaces'`)
	require.NoError(t, err)
	assert.Equal(t, "value with spaces", f.Variables()["KEY"])
}

func TestParseEscapeSequences(t *testing.T) {
	f, err := Parse(`KEY="line1\nline2\ttab"`)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\ttab", f.Variables()["KEY"])
}

func TestParseUnknownEscapeIsVerbatim(t *testing.T) {
	f, err := Parse(`KEY="a\qb"`)
	require.NoError(t, err)
	assert.Equal(t, `a\qb`, f.Variables()["KEY"])
}

func TestParseTrailingBackslash(t *testing.T) {
	f, err := Parse("KEY=\"abc\\\"")
	require.NoError(t, err)
	assert.Equal(t, `abc\`, f.Variables()["KEY"])
}

func TestParseComment(t *testing.T) {
	f, err := Parse("# This is a comment\nKEY=value")
	require.NoError(t, err)
	assert.Len(t, f.Variables(), 1)
	assert.Equal(t, "value", f.Variables()["KEY"])
	assert.Equal(t, Comment, f.Lines[0].Kind)
}

func TestParseExport(t *testing.T) {
	f, err := Parse("export KEY=value")
	require.NoError(t, err)
	assert.Equal(t, "value", f.Variables()["KEY"])
	assert.True(t, f.Lines[0].Export)
}

func TestParseEmptyValue(t *testing.T) {
	f, err := Parse("KEY=")
	require.NoError(t, err)
	assert.Equal(t, "", f.Variables()["KEY"])
}

func TestParseMultilineDuplicateKeyLastWriteWins(t *testing.T) {
	f, err := Parse("KEY=one\nKEY=two")
	require.NoError(t, err)
	assert.Equal(t, "two", f.Variables()["KEY"])
	assert.Len(t, f.Lines, 2)
}

func TestParseMissingEquals(t *testing.T) {
	_, err := Parse("INVALID")
	assert.Error(t, err)
}

func TestParseEmptyKeyName(t *testing.T) {
	_, err := Parse("=value")
	assert.Error(t, err)
}

func TestParseBlankLinesPreserved(t *testing.T) {
	f, err := Parse("KEY1=value1\n\nKEY2=value2")
	require.NoError(t, err)
	assert.Equal(t, Blank, f.Lines[1].Kind)
	assert.Equal(t, "", f.Lines[1].Raw)
}

func TestParseBacktickCommandSubstitution(t *testing.T) {
	f, err := Parse("RESULT=`echo hello`")
	require.NoError(t, err)
	assert.Equal(t, "hello", f.Variables()["RESULT"])
}

func TestParseWithProcessingExpandsAfterSubstitution(t *testing.T) {
	vars, err := ParseWithProcessing("BASE=$(echo /tmp)\nPATH=$BASE/subdir")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/subdir", vars["PATH"])
}

func TestParseWithProcessingDefaultExpansion(t *testing.T) {
	vars, err := ParseWithProcessing("URL=${HOST:-localhost}:3000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:3000", vars["URL"])
}

func TestParseLenientNeverFails(t *testing.T) {
	f := ParseLenient("INVALID\nKEY=value")
	assert.Equal(t, Malformed, f.Lines[0].Kind)
	assert.Equal(t, Assignment, f.Lines[1].Kind)
}

func TestExpandableFlag(t *testing.T) {
	f, err := Parse("A='lit $B'\nC=\"exp $B\"\nD=plain $B")
	require.NoError(t, err)
	assert.False(t, f.Lines[0].Expandable())
	assert.True(t, f.Lines[1].Expandable())
}
