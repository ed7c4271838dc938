package schema

import (
	"strings"
)

// Canonical column names required in every input table.
const (
	ColEmpID    = "emp_id"
	ColEmpType  = "emp_type"
	ColDevLogin = "dev_login"
	ColUATLogin = "uat_login"
	ColStatus   = "status"
	ColFlag     = "flag"
)

// RequiredColumns lists the canonical columns, in output order.
var RequiredColumns = []string{ColEmpID, ColEmpType, ColDevLogin, ColUATLogin, ColStatus, ColFlag}

// HeaderMappings maps normalized header names to canonical column names,
// covering the spellings HR and environment exports actually use.
var HeaderMappings = map[string]string{
	// Employee id
	"empid":      ColEmpID,
	"employeeid": ColEmpID,
	"emplid":     ColEmpID,
	"workerid":   ColEmpID,
	"personid":   ColEmpID,

	// Employee type
	"emptype":      ColEmpType,
	"employeetype": ColEmpType,
	"workertype":   ColEmpType,
	"persontype":   ColEmpType,
	"role":         ColEmpType,

	// Development login
	"devlogin":  ColDevLogin,
	"devuserid": ColDevLogin,
	"devid":     ColDevLogin,
	"loginuid":  ColDevLogin,

	// UAT login
	"uatlogin":  ColUATLogin,
	"uatuserid": ColUATLogin,
	"uatid":     ColUATLogin,

	// Status
	"status":       ColStatus,
	"recordstatus": ColStatus,
	"rowstatus":    ColStatus,

	// Flag
	"flag":        ColFlag,
	"activeflag":  ColFlag,
	"includeflag": ColFlag,
	"compareflag": ColFlag,
}

// substringMapping is a fallback rule applied when no exact header match exists.
type substringMapping struct {
	Substring string
	Target    string
}

var substringMappings = []substringMapping{
	{"devlogin", ColDevLogin},
	{"uatlogin", ColUATLogin},
	{"empid", ColEmpID},
	{"emptype", ColEmpType},
	{"status", ColStatus},
	{"flag", ColFlag},
}

// InferMappings takes a list of CSV headers and returns a map of
// sourceCol -> canonical column. Headers are matched first exactly against
// HeaderMappings (after lowercasing and stripping separators), then by
// substring; each canonical column binds at most once, first header wins.
func InferMappings(headers []string) map[string]string {
	result := make(map[string]string, len(headers))
	usedTargets := make(map[string]bool)

	for _, header := range headers {
		normalized := normalizeHeader(header)

		if target, ok := HeaderMappings[normalized]; ok {
			if !usedTargets[target] {
				result[header] = target
				usedTargets[target] = true
				continue
			}
		}

		for _, sm := range substringMappings {
			if strings.Contains(normalized, sm.Substring) {
				if !usedTargets[sm.Target] {
					result[header] = sm.Target
					usedTargets[sm.Target] = true
				}
				break
			}
		}
	}

	return result
}

// normalizeHeader lowercases a header string and strips whitespace, underscores, and hyphens.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
