package engine

import (
	"uatrecon/pkg/schema"
)

// prefixLen is the number of leading characters compared for a partial match.
// Both sides must be at least this long.
const prefixLen = 3

// ClassifyStats contains aggregate statistics about a classification run.
type ClassifyStats struct {
	TotalRecords   int `json:"totalRecords"`
	Candidates     int `json:"candidates"`
	FullMatches    int `json:"fullMatches"`
	PartialMatches int `json:"partialMatches"`
	NoMatches      int `json:"noMatches"`
}

// ClassifyResult contains the output rows plus run statistics.
type ClassifyResult struct {
	Results []schema.MatchResult `json:"results"`
	Stats   ClassifyStats        `json:"stats"`
	Index   IndexStats           `json:"index"`
}

// Classify produces one MatchResult per candidate row, preserving input
// order. A candidate is a "Y"-flagged row whose (emp_id, emp_type) group is
// eligible. Its match type is the best classification of its dev login
// against the UAT login of every row sharing its emp_id, the candidate row
// included.
//
// Cost is quadratic in per-employee row count: every candidate scans every
// same-emp_id row. That is the contract, not an implementation accident;
// the index only avoids rescanning the whole table per candidate.
func Classify(records []schema.LoginRecord, eligible map[schema.GroupKey]bool) []schema.MatchResult {
	return ClassifyWithStats(records, eligible).Results
}

// ClassifyWithStats is Classify plus aggregate counts for reporting.
func ClassifyWithStats(records []schema.LoginRecord, eligible map[schema.GroupKey]bool) *ClassifyResult {
	index := BuildRecordIndex(records, eligible)

	result := &ClassifyResult{
		Results: make([]schema.MatchResult, 0),
		Stats:   ClassifyStats{TotalRecords: len(records)},
		Index:   index.Stats,
	}

	for _, rec := range records {
		if rec.Flag != flagInclude || !eligible[rec.Key()] {
			continue
		}
		result.Stats.Candidates++

		matchType := bestMatch(rec, index.ByEmpID[rec.EmpID])
		switch matchType {
		case schema.FullMatch:
			result.Stats.FullMatches++
		case schema.PartialMatch:
			result.Stats.PartialMatches++
		default:
			result.Stats.NoMatches++
		}

		result.Results = append(result.Results, schema.MatchResult{
			EmpID:     rec.EmpID,
			EmpType:   rec.EmpType,
			DevLogin:  rec.DevLogin,
			UATLogin:  rec.UATLogin,
			Status:    rec.Status,
			Flag:      rec.Flag,
			MatchType: matchType,
			SourceRow: rec.SourceRow,
		})
	}

	return result
}

// bestMatch classifies the candidate's dev login against each sibling's UAT
// login and returns the highest-priority category seen. One full match
// anywhere wins regardless of the other siblings.
func bestMatch(candidate schema.LoginRecord, siblings []schema.LoginRecord) schema.MatchType {
	dev := schema.NormalizeLogin(candidate.DevLogin)

	best := schema.NoMatch
	for _, sib := range siblings {
		mt := classifyPair(dev, schema.NormalizeLogin(sib.UATLogin))
		if mt == schema.FullMatch {
			return schema.FullMatch
		}
		if mt.Better(best) {
			best = mt
		}
	}
	return best
}

// classifyPair compares two already-normalized login values. Prefix
// comparison is byte-wise; logins are ASCII identifiers.
func classifyPair(dev, uat string) schema.MatchType {
	if dev == uat {
		return schema.FullMatch
	}
	if len(dev) >= prefixLen && len(uat) >= prefixLen && dev[:prefixLen] == uat[:prefixLen] {
		return schema.PartialMatch
	}
	return schema.NoMatch
}
