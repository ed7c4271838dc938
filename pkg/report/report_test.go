package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uatrecon/pkg/engine"
	"uatrecon/pkg/parser"
	"uatrecon/pkg/schema"
)

func sampleResult() *engine.ClassifyResult {
	records := []schema.LoginRecord{
		{EmpID: "E001", EmpType: "DEV", DevLogin: "john_dev", UATLogin: "john_uat", Status: "A", Flag: "Y", SourceRow: 1},
		{EmpID: "E001", EmpType: "DEV", DevLogin: "x", UATLogin: "john_dev", Status: "A", Flag: "N", SourceRow: 2},
		{EmpID: "E002", EmpType: "QA", DevLogin: "zzz", UATLogin: "qqq", Status: "A", Flag: "Y", SourceRow: 3},
		{EmpID: "E002", EmpType: "QA", DevLogin: "p", UATLogin: "r", Status: "A", Flag: "N", SourceRow: 4},
	}
	return engine.ClassifyWithStats(records, engine.EligibleGroups(records))
}

func TestBuild(t *testing.T) {
	rep := Build(sampleResult(), nil)

	require.Len(t, rep.Results, 2)
	require.Len(t, rep.Employees, 2)

	assert.Equal(t, "E001", rep.Employees[0].EmpID)
	assert.Equal(t, schema.FullMatch, rep.Employees[0].BestMatch)
	assert.Equal(t, "E002", rep.Employees[1].EmpID)
	assert.Equal(t, schema.NoMatch, rep.Employees[1].BestMatch)

	assert.Equal(t, 2, rep.Stats.Candidates)
	assert.Equal(t, 2, rep.Index.EligibleGroups)
}

func TestWriteCSV(t *testing.T) {
	rep := Build(sampleResult(), nil)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&buf))

	want := "emp_id,emp_type,dev_login,uat_login,status,flag,match_type\n" +
		"E001,DEV,john_dev,john_uat,A,Y,FULL_MATCH\n" +
		"E002,QA,zzz,qqq,A,Y,NO_MATCH\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	warnings := []parser.ParseWarning{{Row: 3, Message: "row has 5 columns, expected 6; padding with empty values"}}
	rep := Build(sampleResult(), warnings)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))

	var decoded RunReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.Results, decoded.Results)
	assert.Equal(t, rep.Stats, decoded.Stats)
	assert.Equal(t, warnings, decoded.Warnings)
}
