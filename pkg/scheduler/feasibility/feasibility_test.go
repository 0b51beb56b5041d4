package feasibility

import (
	"strings"
	"testing"

	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

func tenCSEmployees() []model.Employee {
	emps := make([]model.Employee, 10)
	for i := range emps {
		emps[i] = model.Employee{ID: string(rune('a' + i)), Department: model.DepartmentCustomerService}
	}
	return emps
}

func allSelected(t *testing.T, exclude ...model.ShiftCode) map[model.ShiftCode]bool {
	t.Helper()
	excluded := make(map[model.ShiftCode]bool, len(exclude))
	for _, c := range exclude {
		excluded[c] = true
	}
	sel := make(map[model.ShiftCode]bool)
	for _, c := range catalogue.WorkCodes() {
		if !excluded[c] {
			sel[c] = true
		}
	}
	sel[model.PRD] = true
	return sel
}

func TestCheckMissingAnchorCode(t *testing.T) {
	in := Input{
		Employees:      tenCSEmployees(),
		SelectedShifts: allSelected(t, model.V633),
	}

	reason, ok := Check(in)
	if ok {
		t.Fatal("expected not-feasible due to missing V633")
	}
	if !strings.Contains(reason, "V633") {
		t.Errorf("reason %q should mention V633", reason)
	}
}

func TestCheckLowCSHeadcount(t *testing.T) {
	in := Input{
		Employees:      tenCSEmployees()[:2],
		SelectedShifts: allSelected(t),
	}

	if _, ok := Check(in); ok {
		t.Error("expected not-feasible due to low CS headcount")
	}
}

func TestCheckMissingPRD(t *testing.T) {
	sel := allSelected(t)
	delete(sel, model.PRD)

	in := Input{Employees: tenCSEmployees(), SelectedShifts: sel}
	if _, ok := Check(in); ok {
		t.Error("expected not-feasible due to missing PRD")
	}
}

func TestCheckFeasible(t *testing.T) {
	in := Input{
		Employees:      tenCSEmployees(),
		SelectedShifts: allSelected(t),
	}

	reason, ok := Check(in)
	if !ok {
		t.Fatalf("expected feasible, got reason: %s", reason)
	}
}
