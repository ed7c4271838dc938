package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a required column cannot be found in the
// input table, directly or through a mapping.
var ErrMissingColumn = errors.New("missing required column")

// nullText is the comparison form of a missing value. A missing login can
// still full-match another missing login, but never a real one.
const nullText = "nan"

// NormalizeLogin produces the comparison form of a login value: missing
// values degrade to the null text, everything else is lowercased.
func NormalizeLogin(v string) string {
	if strings.TrimSpace(v) == "" {
		return nullText
	}
	return strings.ToLower(v)
}

// NormalizeTable converts raw CSV records (header -> value) into LoginRecords.
// Column resolution uses the explicit mapping JSON when provided, otherwise
// headers are inferred via InferMappings. All six required columns must
// resolve or the whole table is rejected; values themselves may be empty.
// SourceRow is 1-indexed over the data rows.
func NormalizeTable(records []map[string]string, columnMapJSON string) ([]LoginRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	mapping := parseColumnMapping(columnMapJSON)
	resolved := resolveColumns(records[0], mapping)

	for _, col := range RequiredColumns {
		if _, ok := resolved[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	result := make([]LoginRecord, 0, len(records))
	for i, record := range records {
		mapped := applyMapping(record, mapping, resolved)
		result = append(result, LoginRecord{
			EmpID:     strings.TrimSpace(mapped[ColEmpID]),
			EmpType:   strings.TrimSpace(mapped[ColEmpType]),
			DevLogin:  strings.TrimSpace(mapped[ColDevLogin]),
			UATLogin:  strings.TrimSpace(mapped[ColUATLogin]),
			Status:    strings.TrimSpace(mapped[ColStatus]),
			Flag:      strings.TrimSpace(mapped[ColFlag]),
			SourceRow: i + 1, // 1-indexed
		})
	}

	return result, nil
}

// resolveColumns determines, for the table's header set, which source column
// feeds each canonical column. Explicit direct mappings win over inference;
// concat transforms count as resolving their target.
func resolveColumns(sample map[string]string, mapping *ColumnMapping) map[string]string {
	resolved := make(map[string]string, len(RequiredColumns))

	if mapping != nil {
		for sourceCol, target := range mapping.Direct {
			if _, ok := sample[sourceCol]; ok {
				resolved[target] = sourceCol
			}
		}
		for _, ct := range mapping.Concat {
			resolved[ct.TargetField] = strings.Join(ct.SourceColumns, "+")
		}
	}

	headers := make([]string, 0, len(sample))
	for h := range sample {
		headers = append(headers, h)
	}
	for source, target := range InferMappings(headers) {
		if _, ok := resolved[target]; !ok {
			resolved[target] = source
		}
	}

	return resolved
}

// applyMapping produces the canonical column -> value map for one raw record.
func applyMapping(record map[string]string, mapping *ColumnMapping, resolved map[string]string) map[string]string {
	result := make(map[string]string, len(resolved))

	for target, source := range resolved {
		result[target] = record[source]
	}

	if mapping == nil {
		return result
	}

	// Direct mappings re-applied per record so explicit choices always win.
	for sourceCol, target := range mapping.Direct {
		if val, ok := record[sourceCol]; ok {
			result[target] = val
		}
	}

	for _, ct := range mapping.Concat {
		parts := make([]string, 0, len(ct.SourceColumns))
		for _, col := range ct.SourceColumns {
			if val, ok := record[col]; ok && val != "" {
				parts = append(parts, val)
			}
		}
		if len(parts) > 0 {
			result[ct.TargetField] = strings.Join(parts, ct.Separator)
		}
	}

	return result
}

// parseColumnMapping parses the column mapping JSON. Empty or invalid JSON
// falls back to an empty mapping, leaving resolution to header inference.
func parseColumnMapping(columnMapJSON string) *ColumnMapping {
	if columnMapJSON == "" {
		return &ColumnMapping{Direct: make(map[string]string)}
	}

	var mapping ColumnMapping
	if err := json.Unmarshal([]byte(columnMapJSON), &mapping); err != nil {
		return &ColumnMapping{Direct: make(map[string]string)}
	}
	if mapping.Direct == nil {
		mapping.Direct = make(map[string]string)
	}
	return &mapping
}
