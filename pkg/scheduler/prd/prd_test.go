package prd

import (
	"testing"
	"time"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
)

// E4: month with 4 Sundays and 30 days; single employee with no pins;
// after the full run, count(PRD) = 4 and none on Sat/Sun/5th/20th.
func TestRunMatchesSundayCount(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	if month.Len() != 30 {
		t.Fatalf("fixture month has %d days, want 30", month.Len())
	}
	if got := len(month.Sundays()); got != 4 {
		t.Fatalf("fixture month has %d Sundays, want 4", got)
	}

	employees := []model.Employee{{ID: "e1", Department: model.DepartmentCashier, Rank: model.RankJunior}}
	out := Run(model.ManualPins{}, employees, month, nil)

	count := 0
	for d := 0; d < month.Len(); d++ {
		code, ok := out.Get("e1", d)
		if !ok || code != model.PRD {
			continue
		}
		count++

		day := month.DayAt(d)
		if day.Weekday == model.Saturday || day.Weekday == model.Sunday {
			t.Errorf("PRD placed on weekend day %d", d)
		}
		if day.Date.Day() == 5 || day.Date.Day() == 20 {
			t.Errorf("PRD placed on forbidden day-of-month %d", day.Date.Day())
		}
	}

	if count != 4 {
		t.Errorf("count(PRD) = %d, want 4", count)
	}
}

func TestRunRespectsExistingPins(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	pins := model.ManualPins{}
	pins.Set("e1", 0, model.AL)

	employees := []model.Employee{{ID: "e1", Department: model.DepartmentCashier}}
	out := Run(pins, employees, month, nil)

	code, ok := out.Get("e1", 0)
	if !ok || code != model.AL {
		t.Errorf("existing AL pin was overwritten: got (%q, %v)", code, ok)
	}
}
