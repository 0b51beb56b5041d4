// Package csvimport parses the operator-supplied employee roster CSV
// (spec §4.11) and validates each row before it reaches EmployeeStore.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/shiftboard/engine/pkg/model"
)

var validate = validator.New()

// Result is one import pass's outcome: the rows that validated
// cleanly, plus every rejected row with its reason. A rejected row
// never reaches the caller's store write.
type Result struct {
	Employees []model.Employee
	Rejected  []RejectedRow
}

// RejectedRow names the 1-indexed data row (header excluded) and the
// reason it failed validation.
type RejectedRow struct {
	Row    int
	Reason string
}

// expected header: id,name,rank,department
const (
	colID = iota
	colName
	colRank
	colDepartment
	numCols
)

// Parse reads a CSV roster from r. The first row is the header and
// must have exactly four columns, read by position as
// id,name,rank,department; the header's column names are not checked.
// Every row after that is one employee record. Malformed,
// failed-validation and duplicate-ID rows are collected in
// Result.Rejected rather than aborting the whole import; the first
// row carrying a given ID is the one kept.
func Parse(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = numCols

	header, err := reader.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("csv import: empty file, expected a header row")
	}
	if err != nil {
		return Result{}, fmt.Errorf("csv import: reading header: %w", err)
	}
	if len(header) != numCols {
		return Result{}, fmt.Errorf("csv import: expected %d columns, header has %d", numCols, len(header))
	}

	var result Result
	seenIDs := make(map[string]bool)
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{Row: rowNum, Reason: err.Error()})
			continue
		}

		emp := model.Employee{
			ID:         record[colID],
			Name:       record[colName],
			Rank:       model.Rank(record[colRank]),
			Department: model.Department(record[colDepartment]),
		}
		if err := validate.Struct(emp); err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		if seenIDs[emp.ID] {
			result.Rejected = append(result.Rejected, RejectedRow{Row: rowNum, Reason: fmt.Sprintf("duplicate employee ID %q", emp.ID)})
			continue
		}
		seenIDs[emp.ID] = true
		result.Employees = append(result.Employees, emp)
	}

	return result, nil
}
