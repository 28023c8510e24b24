package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allocation/pkg/engine"
)

func sampleResult() *engine.AggregationResult {
	return &engine.AggregationResult{
		Root:     "100001",
		BaseCost: 300,
		Total:    320,
		ByRole:   map[string]int{"MANAGER": 0, "ENGINEER": 20},
		Contributions: []engine.Contribution{
			{EmployeeID: "100002", Role: "MANAGER", Manager: "100001", Cost: 0, Depth: 1},
			{EmployeeID: "100003", Role: "ENGINEER", Manager: "100002", Cost: 20, Depth: 2},
		},
	}
}

func TestBuild(t *testing.T) {
	r := Build("run-1", sampleResult())

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, 320, r.Total)
	assert.Equal(t, []RoleSubtotal{
		{Role: "ENGINEER", Employees: 1, Cost: 20},
		{Role: "MANAGER", Employees: 1, Cost: 0},
	}, r.ByRole)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build("run-1", sampleResult()), false))
	assert.Equal(t, "Total Allocation: 320\n", buf.String())
}

func TestWriteText_Breakdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build("run-1", sampleResult()), true))
	assert.Equal(t, "Total Allocation: 320\n"+
		"100001 MANAGER (base) 300\n"+
		"  100002 MANAGER 0\n"+
		"    100003 ENGINEER 20\n"+
		"ENGINEER: 1 employees, 20\n"+
		"MANAGER: 1 employees, 0\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Build("run-1", sampleResult()), FormatJSON, false))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["runId"])
	assert.Equal(t, "100001", decoded["root"])
	assert.EqualValues(t, 320, decoded["total"])
	assert.EqualValues(t, 300, decoded["baseCost"])
	assert.Len(t, decoded["contributions"], 2)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}
