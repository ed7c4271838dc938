package schema

// LoginRecord represents one row of the login comparison table: an employee's
// login identifiers in the development and UAT environments.
type LoginRecord struct {
	EmpID     string `json:"empId"`
	EmpType   string `json:"empType"`
	DevLogin  string `json:"devLogin"`
	UATLogin  string `json:"uatLogin"`
	Status    string `json:"status"`
	Flag      string `json:"flag"`
	SourceRow int    `json:"sourceRow"`
}

// GroupKey identifies an eligibility group: records sharing both employee id
// and employee type.
type GroupKey struct {
	EmpID   string `json:"empId"`
	EmpType string `json:"empType"`
}

// Key returns the record's eligibility group key.
func (r LoginRecord) Key() GroupKey {
	return GroupKey{EmpID: r.EmpID, EmpType: r.EmpType}
}

// MatchType classifies the relationship between a development login and the
// UAT logins of the same employee, in descending priority.
type MatchType string

const (
	FullMatch    MatchType = "FULL_MATCH"
	PartialMatch MatchType = "PARTIAL_MATCH"
	NoMatch      MatchType = "NO_MATCH"
)

// priority orders match types for aggregation; higher wins.
func (m MatchType) priority() int {
	switch m {
	case FullMatch:
		return 2
	case PartialMatch:
		return 1
	default:
		return 0
	}
}

// Better reports whether m outranks other.
func (m MatchType) Better(other MatchType) bool {
	return m.priority() > other.priority()
}

// MatchResult is one output row: a candidate record's columns plus the
// computed match type.
type MatchResult struct {
	EmpID     string    `json:"empId"`
	EmpType   string    `json:"empType"`
	DevLogin  string    `json:"devLogin"`
	UATLogin  string    `json:"uatLogin"`
	Status    string    `json:"status"`
	Flag      string    `json:"flag"`
	MatchType MatchType `json:"matchType"`
	SourceRow int       `json:"sourceRow"`
}

// ColumnMapping defines how source CSV columns map to canonical fields.
type ColumnMapping struct {
	Direct map[string]string `json:"direct"`
	Concat []ConcatTransform `json:"concat"`
}

// ConcatTransform defines a multi-column concatenation transform.
type ConcatTransform struct {
	SourceColumns []string `json:"sourceColumns"`
	Separator     string   `json:"separator"`
	TargetField   string   `json:"targetField"`
}
