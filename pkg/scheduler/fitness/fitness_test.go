package fitness

import (
	"strings"
	"testing"
	"time"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
)

func baseSettings() model.Settings {
	s := model.DefaultSettings()
	for _, c := range []model.ShiftCode{"VX14", "VX15", model.V814, model.V614, model.V818, model.V618, model.V829, model.V633, model.PRD} {
		s.SelectedShifts[c] = true
	}
	return s
}

// E5: pins [(e,d)="V633" end 22:30, (e,d+1)="VX14" start 07:00] give a
// gap of 8.5h; fitness must report an H4 violation.
func TestEvaluateReportsGapViolation(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	sched := model.NewSchedule([]string{"e1"}, month.Len())
	sched.Set("e1", 0, model.V633)
	sched.Set("e1", 1, "VX14")

	pins := model.ManualPins{}
	pins.Set("e1", 0, model.V633)
	pins.Set("e1", 1, "VX14")

	in := Input{
		Schedule:  sched,
		Employees: []model.Employee{{ID: "e1", Rank: model.RankJunior}},
		Pins:      pins,
		Settings:  baseSettings(),
		Month:     month,
	}

	result := Evaluate(in)

	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "rest gap") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a rest-gap violation, got: %v", result.Violations)
	}
}

func TestEvaluateEmptyUnpinnedCellIsViolation(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	sched := model.NewSchedule([]string{"e1"}, month.Len())

	in := Input{
		Schedule:  sched,
		Employees: []model.Employee{{ID: "e1"}},
		Pins:      model.ManualPins{},
		Settings:  baseSettings(),
		Month:     month,
	}

	result := Evaluate(in)
	if result.Score == 0 {
		t.Error("expected nonzero score for an all-empty unpinned schedule")
	}
}

func TestEvaluateNeverShortCircuits(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	sched := model.NewSchedule([]string{"e1"}, month.Len())
	// Leave every cell empty and unpinned: each day should independently
	// contribute its own H11 violation, not stop at the first.
	in := Input{
		Schedule:  sched,
		Employees: []model.Employee{{ID: "e1"}},
		Pins:      model.ManualPins{},
		Settings:  baseSettings(),
		Month:     month,
	}

	result := Evaluate(in)

	emptyCellViolations := 0
	for _, v := range result.Violations {
		if strings.Contains(v, "empty cell not pinned") {
			emptyCellViolations++
		}
	}
	if emptyCellViolations != month.Len() {
		t.Errorf("expected %d empty-cell violations, got %d", month.Len(), emptyCellViolations)
	}
}

func TestEvaluateCoverageViolation(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	sched := model.NewSchedule([]string{"e1"}, month.Len())

	in := Input{
		Schedule:  sched,
		Employees: []model.Employee{{ID: "e1", Department: model.DepartmentCustomerService}},
		Pins:      model.ManualPins{},
		Settings:  baseSettings(),
		Month:     month,
	}

	result := Evaluate(in)
	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "slot 14 coverage") {
			found = true
		}
	}
	if !found {
		t.Error("expected a slot 14 coverage violation with no CS employees assigned")
	}
}
