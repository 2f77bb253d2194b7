// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Upload size and row limits for CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)

// EmployeeRow is the normalized row produced by PreScanEmployeesCSV.
type EmployeeRow struct {
	Name     string
	Email    string
	Position string
}

// RowError describes one rejected CSV line.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// PreScanEmployeesCSV reads all rows from r, skips a header if present,
// and validates each row. It returns the normalized rows together with
// any per-row errors; callers should refuse to import when errors are
// non-empty. It never writes to a DB, so it is safe to call before any
// mutations.
func PreScanEmployeesCSV(r io.Reader) ([]EmployeeRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows    []EmployeeRow
		rowErrs []RowError
		line    int
	)

	first, err := reader.Read()
	switch {
	case err == io.EOF:
		return nil, nil, nil
	case err != nil:
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	line++

	if !isHeader(first) {
		if row, reason := normalizeRow(first); reason != "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: reason})
		} else if row != nil {
			rows = append(rows, *row)
		}
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "malformed csv line"})
			continue
		}
		if line > MaxRows {
			return nil, nil, fmt.Errorf("csv exceeds %d rows", MaxRows)
		}
		row, reason := normalizeRow(rec)
		if reason != "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: reason})
			continue
		}
		if row != nil {
			rows = append(rows, *row)
		}
	}

	return rows, rowErrs, nil
}

// isHeader reports whether the first CSV record looks like a column
// header rather than data.
func isHeader(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	name := strings.TrimSpace(rec[0])
	email := strings.TrimSpace(rec[1])
	return (strings.EqualFold(name, "name") || strings.EqualFold(name, "full name")) &&
		strings.EqualFold(email, "email")
}

// normalizeRow trims a record into an EmployeeRow. Fully blank records
// are skipped (nil row, empty reason).
func normalizeRow(rec []string) (*EmployeeRow, string) {
	var row EmployeeRow
	if len(rec) > 0 {
		row.Name = strings.TrimSpace(rec[0])
	}
	if len(rec) > 1 {
		row.Email = strings.TrimSpace(rec[1])
	}
	if len(rec) > 2 {
		row.Position = strings.TrimSpace(rec[2])
	}
	if row.Name == "" && row.Email == "" && row.Position == "" {
		return nil, ""
	}
	if row.Name == "" {
		return nil, "missing name"
	}
	if row.Email == "" {
		return nil, "missing email"
	}
	if !strings.Contains(row.Email, "@") {
		return nil, "invalid email"
	}
	return &row, ""
}
