package fixedassign

import (
	"testing"

	"github.com/shiftboard/engine/pkg/model"
)

func fourCSEmployees() []model.Employee {
	return []model.Employee{
		{ID: "e1", Department: model.DepartmentCustomerService, Rank: model.RankJunior},
		{ID: "e2", Department: model.DepartmentCustomerService, Rank: model.RankJunior},
		{ID: "e3", Department: model.DepartmentCustomerService, Rank: model.RankJunior},
		{ID: "e4", Department: model.DepartmentCustomerService, Rank: model.RankJunior},
	}
}

// E3: 4 CS employees, none pinned, day 0: FixedAssigner assigns
// exactly one of V814/V614, one of V818/V618, and two of V829/V633
// with at most one V633. The four slot places match the four CS staff,
// so every employee receives exactly one anchor shift.
func TestRunDayZeroQuota(t *testing.T) {
	employees := fourCSEmployees()
	result := Run(model.ManualPins{}, employees, 1)

	count14, count18, count2933, countV633 := 0, 0, 0, 0
	assignedCount := 0
	for _, e := range employees {
		code, ok := result.Pins.Get(e.ID, 0)
		if !ok {
			continue
		}
		assignedCount++
		switch code {
		case model.V814, model.V614:
			count14++
		case model.V818, model.V618:
			count18++
		case model.V829, model.V633:
			count2933++
			if code == model.V633 {
				countV633++
			}
		}
	}

	if count14 != 1 {
		t.Errorf("count14/614 = %d, want 1", count14)
	}
	if count18 != 1 {
		t.Errorf("count18/618 = %d, want 1", count18)
	}
	if count2933 != 2 {
		t.Errorf("count2933 = %d, want 2", count2933)
	}
	if countV633 > 1 {
		t.Errorf("countV633 = %d, want at most 1", countV633)
	}
	if assignedCount != 4 {
		t.Errorf("assignedCount = %d, want all 4 employees assigned with only 4 CS staff", assignedCount)
	}
}

func TestRunNeverOverwritesPins(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("e1", 0, model.AL)

	employees := fourCSEmployees()
	result := Run(pins, employees, 1)

	code, ok := result.Pins.Get("e1", 0)
	if !ok || code != model.AL {
		t.Errorf("existing pin for e1 was overwritten: got (%q, %v)", code, ok)
	}
}
