package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"allocation/pkg/parser"
	"allocation/pkg/schema"
)

func parseLines(t *testing.T, lines ...string) *parser.ParseResult {
	t.Helper()
	res, err := parser.ParseBytes([]byte(strings.Join(lines, "\n")), schema.FieldDelimiter)
	require.NoError(t, err)
	return res
}

func mustDirectory(t *testing.T, lines ...string) *Directory {
	t.Helper()
	dir, err := LoadDirectory(parseLines(t, lines...), DuplicateWarn, nil)
	require.NoError(t, err)
	return dir
}

func mustCosts(t *testing.T, lines ...string) *RoleCostTable {
	t.Helper()
	costs, err := LoadRoleCosts(parseLines(t, lines...), nil)
	require.NoError(t, err)
	return costs
}
