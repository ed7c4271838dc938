package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"uatrecon/pkg/engine"
	"uatrecon/pkg/parser"
	"uatrecon/pkg/schema"
)

// EmployeeSummary groups all output rows for a single employee id with the
// best match type found across them.
type EmployeeSummary struct {
	EmpID     string               `json:"empId"`
	BestMatch schema.MatchType     `json:"bestMatch"`
	Results   []schema.MatchResult `json:"results"`
}

// RunReport is the compiled outcome of one classification run.
type RunReport struct {
	Results   []schema.MatchResult  `json:"results"`
	Employees []EmployeeSummary     `json:"employees"`
	Stats     engine.ClassifyStats  `json:"stats"`
	Index     engine.IndexStats     `json:"index"`
	Warnings  []parser.ParseWarning `json:"warnings,omitempty"`
}

// Build compiles the classification output, table statistics, and any parse
// warnings into a RunReport. Employee summaries appear in order of each
// employee's first output row, so the report is deterministic.
func Build(cr *engine.ClassifyResult, warnings []parser.ParseWarning) *RunReport {
	report := &RunReport{
		Results:   cr.Results,
		Employees: make([]EmployeeSummary, 0),
		Stats:     cr.Stats,
		Index:     cr.Index,
		Warnings:  warnings,
	}

	byEmp := make(map[string]int)
	for _, res := range cr.Results {
		i, seen := byEmp[res.EmpID]
		if !seen {
			i = len(report.Employees)
			byEmp[res.EmpID] = i
			report.Employees = append(report.Employees, EmployeeSummary{
				EmpID:     res.EmpID,
				BestMatch: schema.NoMatch,
			})
		}
		emp := &report.Employees[i]
		emp.Results = append(emp.Results, res)
		if res.MatchType.Better(emp.BestMatch) {
			emp.BestMatch = res.MatchType
		}
	}

	return report
}

// outputColumns is the header of the CSV output table.
var outputColumns = []string{
	schema.ColEmpID,
	schema.ColEmpType,
	schema.ColDevLogin,
	schema.ColUATLogin,
	schema.ColStatus,
	schema.ColFlag,
	"match_type",
}

// WriteCSV writes the output table: one row per candidate, original relative
// order, canonical columns plus match_type.
func (r *RunReport) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, res := range r.Results {
		row := []string{
			res.EmpID,
			res.EmpType,
			res.DevLogin,
			res.UATLogin,
			res.Status,
			res.Flag,
			string(res.MatchType),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", res.SourceRow, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full report, indented for human consumption.
func (r *RunReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
