// Package feasibility rejects a run before any scheduling work starts
// if the inputs could never produce a compliant roster.
package feasibility

import (
	"fmt"

	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

const minCSHeadcount = 4

// Input bundles the precondition-checker's view of a run request.
type Input struct {
	Employees      []model.Employee
	SelectedShifts map[model.ShiftCode]bool
}

// Check returns ("", true) when the run may proceed, or a single
// English reason plus false when it must be rejected (spec's
// FeasibilityChecker — one reason string, never a list).
func Check(in Input) (reason string, ok bool) {
	csCount := 0
	for _, e := range in.Employees {
		if e.InDepartment(model.DepartmentCustomerService) {
			csCount++
		}
	}

	if csCount > 0 && csCount < minCSHeadcount {
		return fmt.Sprintf("CustomerService headcount %d is below the required minimum of %d", csCount, minCSHeadcount), false
	}

	for _, anchor := range model.AnchorShifts() {
		if !in.SelectedShifts[anchor] {
			return fmt.Sprintf("selected shifts are missing required anchor code %q", anchor), false
		}
	}

	hasMorning, hasEvening := false, false
	for code, selected := range in.SelectedShifts {
		if !selected || code.IsOffMarker() || code.IsEmpty() {
			continue
		}
		start, ok := catalogue.StartHour(code)
		if !ok {
			continue
		}
		if start < 12 {
			hasMorning = true
		} else {
			hasEvening = true
		}
	}
	if !hasMorning || !hasEvening {
		return "selected shifts must include at least one morning (start < 12) and one evening (start >= 12) shift", false
	}

	if !in.SelectedShifts[model.PRD] {
		return "selected shifts must include PRD", false
	}

	return "", true
}
