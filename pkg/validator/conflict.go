// Package validator detects and sanitizes invalid manual pins before
// a scheduling run starts (spec §7 PinConflict): a pin referencing an
// unknown shift code, or a code/employee combination the domain
// forbids, is logged and dropped rather than failing the run —
// repurposed from the teacher's assignment-overlap ConflictDetector
// into a pin-level check for the new domain's much simpler
// single-cell-per-day model.
package validator

import (
	"fmt"
	"sort"

	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

// ConflictType classifies one detected pin problem.
type ConflictType string

const (
	// ConflictUnknownCode: the pinned code is not in the catalogue at
	// all (not a VX/V8/V6 code, not PRD/AL/NPL).
	ConflictUnknownCode ConflictType = "unknown_code"
	// ConflictAnchorWrongDepartment: an anchor (CS-coverage) code is
	// pinned for an employee outside CustomerService — the coverage
	// slot it would fill can never be credited to that department.
	ConflictAnchorWrongDepartment ConflictType = "anchor_wrong_department"
	// ConflictUnknownEmployee: the pin references an employee ID not
	// present in the roster passed to this run.
	ConflictUnknownEmployee ConflictType = "unknown_employee"
)

// Conflict describes one rejected pin.
type Conflict struct {
	Type       ConflictType
	EmployeeID string
	Day        int
	Code       model.ShiftCode
	Message    string
}

// DetectorConfig reserves room for future severity tuning; empty today
// since every detected conflict is currently treated as drop-and-log.
type DetectorConfig struct{}

// DefaultDetectorConfig returns the zero-value config.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{}
}

// PinConflictDetector finds invalid (employee, day) pins.
type PinConflictDetector struct {
	config *DetectorConfig
}

// NewPinConflictDetector builds a detector; a nil config uses the default.
func NewPinConflictDetector(config *DetectorConfig) *PinConflictDetector {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &PinConflictDetector{config: config}
}

// DetectAll scans every pin against the catalogue and the roster,
// returning conflicts in a stable (employeeID, day) order.
func (d *PinConflictDetector) DetectAll(pins model.ManualPins, employees []model.Employee) []Conflict {
	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	var conflicts []Conflict
	for key, code := range pins {
		if !catalogue.IsValid(code) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictUnknownCode,
				EmployeeID: key.EmployeeID,
				Day:        key.Day,
				Code:       code,
				Message:    unknownCodeMessage(key.EmployeeID, key.Day, code),
			})
			continue
		}

		emp, ok := byID[key.EmployeeID]
		if !ok {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictUnknownEmployee,
				EmployeeID: key.EmployeeID,
				Day:        key.Day,
				Code:       code,
				Message:    fmt.Sprintf("pin references employee %q not present in this run's roster", key.EmployeeID),
			})
			continue
		}

		if isAnchor(code) && !emp.InDepartment(model.DepartmentCustomerService) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictAnchorWrongDepartment,
				EmployeeID: key.EmployeeID,
				Day:        key.Day,
				Code:       code,
				Message:    fmt.Sprintf("pin (%s, day %d) assigns CS-anchor code %q to a non-CustomerService employee", key.EmployeeID, key.Day, code),
			})
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].EmployeeID != conflicts[j].EmployeeID {
			return conflicts[i].EmployeeID < conflicts[j].EmployeeID
		}
		return conflicts[i].Day < conflicts[j].Day
	})

	return conflicts
}

// Sanitize removes every offending pin from a clone of pins, invoking
// onConflict for each one so the caller can log it (spec §7: "the
// offending pin is logged and ignored; the run continues").
func (d *PinConflictDetector) Sanitize(pins model.ManualPins, employees []model.Employee, onConflict func(Conflict)) model.ManualPins {
	out := pins.Clone()
	for _, c := range d.DetectAll(pins, employees) {
		out.Delete(c.EmployeeID, c.Day)
		if onConflict != nil {
			onConflict(c)
		}
	}
	return out
}

// unknownCodeMessage distinguishes a code whose family prefix isn't
// recognised at all from one whose prefix is a real family but whose
// hour suffix falls outside the catalogue's valid range, using
// catalogue.ParseFamily to validate the raw string before it would
// otherwise fail an opaque table lookup.
func unknownCodeMessage(employeeID string, day int, code model.ShiftCode) string {
	if family, ok := catalogue.ParseFamily(string(code)); ok {
		return fmt.Sprintf("pin (%s, day %d) has a %s-family code %q outside the catalogue's valid hour range", employeeID, day, family, code)
	}
	return fmt.Sprintf("pin (%s, day %d) references unknown shift code %q", employeeID, day, code)
}

func isAnchor(code model.ShiftCode) bool {
	for _, a := range model.AnchorShifts() {
		if a == code {
			return true
		}
	}
	return false
}
