package engine

import (
	"uatrecon/pkg/schema"
)

// Flag and status literals. Comparison is exact and case-sensitive; a missing
// value is an empty string and matches none of them.
const (
	flagInclude   = "Y"
	flagExclude   = "N"
	statusDisqual = "T"
)

// groupObservation accumulates what a group's rows were seen to contain.
type groupObservation struct {
	hasInclude bool
	hasExclude bool
	hasDisqual bool
}

// EligibleGroups partitions records by (emp_id, emp_type) and maps each
// distinct group key to its eligibility: the group must contain at least one
// "Y"-flagged row and at least one "N"-flagged row, and no row with status
// "T". Keys that never occur in the input are absent from the map. Pure
// function of the input; records are not mutated.
func EligibleGroups(records []schema.LoginRecord) map[schema.GroupKey]bool {
	obs := make(map[schema.GroupKey]*groupObservation)

	for _, rec := range records {
		key := rec.Key()
		o := obs[key]
		if o == nil {
			o = &groupObservation{}
			obs[key] = o
		}

		switch rec.Flag {
		case flagInclude:
			o.hasInclude = true
		case flagExclude:
			o.hasExclude = true
		}
		if rec.Status == statusDisqual {
			o.hasDisqual = true
		}
	}

	eligible := make(map[schema.GroupKey]bool, len(obs))
	for key, o := range obs {
		eligible[key] = o.hasInclude && o.hasExclude && !o.hasDisqual
	}
	return eligible
}
