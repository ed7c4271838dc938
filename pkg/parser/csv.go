package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseWarning represents a non-fatal issue encountered during CSV parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed records alongside any warnings.
type ParseResult struct {
	Records  []map[string]string `json:"records"`
	Headers  []string            `json:"headers"`
	Encoding string              `json:"encoding"`
	Warnings []ParseWarning      `json:"warnings"`
}

// ParseTable parses CSV bytes into a slice of maps (header -> value per row),
// discarding warnings. See ParseTableWithWarnings.
func ParseTable(data []byte) ([]map[string]string, error) {
	result, err := ParseTableWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// ParseTableWithWarnings parses CSV bytes and returns records, headers, and
// warnings. Rows with too few columns are padded, rows with too many are
// truncated, and unreadable rows are skipped; each case yields a warning
// rather than an error. An empty file or a file with no data rows is an error.
func ParseTableWithWarnings(data []byte) (*ParseResult, error) {
	decoded, encoding, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Ragged rows are handled below, not rejected by the csv package.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	headerCount := len(headers)
	var records []map[string]string
	var warnings []ParseWarning
	rowNum := 1 // 1-indexed, header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		record := make(map[string]string, headerCount)
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	return &ParseResult{
		Records:  records,
		Headers:  headers,
		Encoding: encoding,
		Warnings: warnings,
	}, nil
}
