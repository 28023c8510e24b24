package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamParse(t *testing.T) {
	input := "# role costs\r\nMANAGER|0\r\n\r\nengineer| 50 \n"

	res, err := StreamParse(strings.NewReader(input), "|")
	require.NoError(t, err)
	require.Len(t, res.Lines, 4)
	assert.Equal(t, EncodingUTF8, res.Encoding)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, 1, res.Lines[0].Number)
	assert.False(t, res.Lines[0].Delimited())
	assert.False(t, res.Lines[0].Blank())

	assert.Equal(t, "MANAGER|0", res.Lines[1].Raw)
	assert.Equal(t, []string{"MANAGER", "0"}, res.Lines[1].Fields)
	assert.True(t, res.Lines[1].Delimited())

	assert.True(t, res.Lines[2].Blank())

	// Whitespace inside fields is preserved.
	assert.Equal(t, []string{"engineer", " 50 "}, res.Lines[3].Fields)
}

func TestParseBytes_EmptyFieldsKept(t *testing.T) {
	res, err := ParseBytes([]byte("100001|Smith|Ann|MANAGER|Ops|"), "|")
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Len(t, res.Lines[0].Fields, 6)
	assert.Equal(t, "", res.Lines[0].Fields[5])
}

func TestParseBytes_Latin1Warns(t *testing.T) {
	res, err := ParseBytes([]byte{'Q', 'A', '|', '1', '\n', 0xE9}, "|")
	require.NoError(t, err)
	assert.Equal(t, EncodingLatin1, res.Encoding)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "latin-1")
	assert.Equal(t, "é", res.Lines[1].Raw)
}

func TestParseBytes_Empty(t *testing.T) {
	res, err := ParseBytes(nil, "|")
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
}
