package engine

import (
	"uatrecon/pkg/schema"
)

// RecordIndex provides lookup of login records by employee id and by group
// key. Sibling comparison deliberately uses ByEmpID, which is wider than the
// (emp_id, emp_type) grouping used for eligibility.
type RecordIndex struct {
	ByEmpID map[string][]schema.LoginRecord           `json:"byEmpId"`
	ByGroup map[schema.GroupKey][]schema.LoginRecord `json:"byGroup"`
	Stats   IndexStats                                `json:"stats"`
}

// IndexStats contains aggregate statistics about the indexed table.
type IndexStats struct {
	TotalRecords    int `json:"totalRecords"`
	UniqueEmployees int `json:"uniqueEmployees"`
	TotalGroups     int `json:"totalGroups"`
	EligibleGroups  int `json:"eligibleGroups"`
}

// BuildRecordIndex constructs a RecordIndex from the input table and its
// eligibility mapping. Records keep their original relative order within
// each bucket.
func BuildRecordIndex(records []schema.LoginRecord, eligible map[schema.GroupKey]bool) *RecordIndex {
	index := &RecordIndex{
		ByEmpID: make(map[string][]schema.LoginRecord),
		ByGroup: make(map[schema.GroupKey][]schema.LoginRecord),
	}

	for _, rec := range records {
		index.ByEmpID[rec.EmpID] = append(index.ByEmpID[rec.EmpID], rec)
		index.ByGroup[rec.Key()] = append(index.ByGroup[rec.Key()], rec)
	}

	eligibleCount := 0
	for _, ok := range eligible {
		if ok {
			eligibleCount++
		}
	}

	index.Stats = IndexStats{
		TotalRecords:    len(records),
		UniqueEmployees: len(index.ByEmpID),
		TotalGroups:     len(index.ByGroup),
		EligibleGroups:  eligibleCount,
	}
	return index
}
