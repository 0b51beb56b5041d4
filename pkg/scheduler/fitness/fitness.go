// Package fitness scores a complete Schedule against the hard and
// soft constraints of the roster (spec §4.6). Lower is better; a
// score of zero with an empty violation list is a fully compliant
// schedule.
package fitness

import (
	"fmt"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/legality"
)

// Weight classes. HARD violations dominate SOFT ones by four orders
// of magnitude so the search never trades a hard fix for a soft one.
const (
	HARD = 10_000_000
	SOFT = 1_000
)

// Input is everything FitnessEvaluator needs to score one candidate.
type Input struct {
	Schedule *model.Schedule
	Employees []model.Employee
	Pins      model.ManualPins
	Settings  model.Settings
	Month     *calendarmodel.Month
}

// Result is the scored outcome of one Evaluate call.
type Result struct {
	Score      int
	Violations []string
}

// Evaluate computes the full violation list and summed score for a
// complete schedule. It never short-circuits: every applicable
// violation is recorded even once the score is already nonzero.
func Evaluate(in Input) Result {
	r := &Result{}
	days := in.Schedule.Days()
	sundayCount := len(in.Month.Sundays())

	for _, e := range in.Employees {
		idx := in.Schedule.IndexOf(e.ID)
		if idx == -1 {
			continue
		}
		row := in.Schedule.Row(idx)

		evaluateRuns(r, e, row)
		evaluateAdjacency(r, e, row)
		evaluateGaps(r, e, row)
		evaluateFamilyCounts(r, e, row, in.Settings)
		evaluatePRDCount(r, e, row, sundayCount)
		evaluatePinCompliance(r, e, row, in.Pins, in.Month)
		evaluateSelection(r, e, row, in.Pins, in.Settings)
		evaluateEmptyCells(r, e, row, in.Pins)
		if in.Settings.BalanceMorningEvening {
			evaluateMorningEveningBalance(r, e, row, in.Settings)
		}
	}

	evaluateCoverage(r, in.Employees, in.Schedule, days)

	return *r
}

func (r *Result) addHard(multiplier int, format string, args ...interface{}) {
	if multiplier <= 0 {
		return
	}
	r.Score += HARD * multiplier
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

func (r *Result) addSoft(multiplier int, format string, args ...interface{}) {
	if multiplier <= 0 {
		return
	}
	r.Score += SOFT * multiplier
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// evaluateRuns implements H1: a contiguous work run longer than 7
// days costs HARD * (run - 7), attributed to the 8th day of the run.
func evaluateRuns(r *Result, e model.Employee, row []model.ShiftCode) {
	d := 0
	for d < len(row) {
		if !isWork(row[d]) {
			d++
			continue
		}
		start := d
		for d < len(row) && isWork(row[d]) {
			d++
		}
		run := d - start
		if run > 7 {
			offendingDay := start + 7
			r.addHard(run-7, "employee %s: work run of %d days exceeds 7 (starting day %d, flagged at day %d)", e.ID, run, start, offendingDay)
		}
	}
}

// evaluateAdjacency implements H2 (adjacent off-markers), H3 (adjacent
// VX) and S1 (adjacent V6, soft).
func evaluateAdjacency(r *Result, e model.Employee, row []model.ShiftCode) {
	for d := 0; d < len(row)-1; d++ {
		a, b := row[d], row[d+1]

		if a.IsOffMarker() && b.IsOffMarker() {
			r.addHard(1, "employee %s: adjacent off-markers %s/%s at days %d-%d", e.ID, a, b, d, d+1)
		}

		famA, famB := catalogue.FamilyOf(a), catalogue.FamilyOf(b)
		if famA == model.FamilyVX && famB == model.FamilyVX {
			r.addHard(1, "employee %s: adjacent VX shifts at days %d-%d", e.ID, d, d+1)
		}
		if famA == model.FamilyV6 && famB == model.FamilyV6 {
			r.addSoft(1, "employee %s: adjacent V6 shifts at days %d-%d", e.ID, d, d+1)
		}
	}
}

// evaluateGaps implements H4: less than 10 hours between consecutive
// assigned (working) shifts.
func evaluateGaps(r *Result, e model.Employee, row []model.ShiftCode) {
	for d := 0; d < len(row)-1; d++ {
		a, b := row[d], row[d+1]
		if !isWork(a) || !isWork(b) {
			continue
		}
		if !legality.RestOK(a, b) {
			r.addHard(1, "employee %s: rest gap under 10h between days %d-%d (%s -> %s)", e.ID, d, d+1, a, b)
		}
	}
}

// evaluateFamilyCounts implements H5 and H6.
func evaluateFamilyCounts(r *Result, e model.Employee, row []model.ShiftCode, settings model.Settings) {
	vx, v6 := 0, 0
	for _, c := range row {
		switch catalogue.FamilyOf(c) {
		case model.FamilyVX:
			vx++
		case model.FamilyV6:
			v6++
		}
	}

	if vx != v6 {
		delta := vx - v6
		if delta < 0 {
			delta = -delta
		}
		r.addHard(delta, "employee %s: VX count (%d) does not equal V6 count (%d)", e.ID, vx, v6)
	}

	if deficit := settings.VXMin - vx; deficit > 0 {
		r.addHard(deficit, "employee %s: VX count (%d) below vxMin (%d)", e.ID, vx, settings.VXMin)
	}
}

// evaluatePRDCount implements H9.
func evaluatePRDCount(r *Result, e model.Employee, row []model.ShiftCode, sundayCount int) {
	prd := 0
	for _, c := range row {
		if c == model.PRD {
			prd++
		}
	}
	delta := prd - sundayCount
	if delta < 0 {
		delta = -delta
	}
	r.addHard(2*delta, "employee %s: PRD count (%d) does not equal Sunday count (%d)", e.ID, prd, sundayCount)
}

// evaluatePinCompliance implements H7 and H8.
func evaluatePinCompliance(r *Result, e model.Employee, row []model.ShiftCode, pins model.ManualPins, month *calendarmodel.Month) {
	for d, c := range row {
		pinCode, pinned := pins.Get(e.ID, d)

		if c == model.PRD && month.DayAt(d).IsPRDForbidden && !pinned {
			r.addHard(1, "employee %s day %d: PRD on a PRD-forbidden day without a pin", e.ID, d)
		}

		if (c == model.AL || c == model.NPL) && (!pinned || pinCode != c) {
			r.addHard(1, "employee %s day %d: %s present without a matching pin", e.ID, d, c)
		}
	}
}

// evaluateSelection implements H10.
func evaluateSelection(r *Result, e model.Employee, row []model.ShiftCode, pins model.ManualPins, settings model.Settings) {
	for d, c := range row {
		if c.IsEmpty() || c.IsOffMarker() {
			continue
		}
		if settings.HasSelected(c) {
			continue
		}
		if _, pinned := pins.Get(e.ID, d); pinned {
			continue
		}
		r.addHard(1, "employee %s day %d: shift %s is not in selectedShifts and not pinned", e.ID, d, c)
	}
}

// evaluateEmptyCells implements H11.
func evaluateEmptyCells(r *Result, e model.Employee, row []model.ShiftCode, pins model.ManualPins) {
	for d, c := range row {
		if !c.IsEmpty() {
			continue
		}
		if _, pinned := pins.Get(e.ID, d); pinned {
			continue
		}
		r.addHard(1, "employee %s day %d: empty cell not pinned", e.ID, d)
	}
}

// evaluateMorningEveningBalance implements S2.
func evaluateMorningEveningBalance(r *Result, e model.Employee, row []model.ShiftCode, settings model.Settings) {
	morning, evening := 0, 0
	for _, c := range row {
		if !isWork(c) {
			continue
		}
		if catalogue.IsMorning(c) {
			morning++
		} else {
			evening++
		}
	}

	diff := morning - evening
	if diff < 0 {
		diff = -diff
	}
	if excess := diff - settings.MaxMorningEveningDiff; excess > 0 {
		r.addSoft(excess, "employee %s: morning/evening imbalance %d exceeds max %d", e.ID, diff, settings.MaxMorningEveningDiff)
	}
}

// evaluateCoverage implements H12: per-day CS coverage must match the
// slot quotas from FixedAssigner (§4.4).
func evaluateCoverage(r *Result, employees []model.Employee, sched *model.Schedule, days int) {
	for d := 0; d < days; d++ {
		count14, count18, count2933, countV633 := 0, 0, 0, 0
		for _, e := range employees {
			if !e.InDepartment(model.DepartmentCustomerService) {
				continue
			}
			switch sched.Get(e.ID, d) {
			case model.V814, model.V614:
				count14++
			case model.V818, model.V618:
				count18++
			case model.V829:
				count2933++
			case model.V633:
				count2933++
				countV633++
			}
		}

		if diff := abs(count14 - 1); diff > 0 {
			r.addHard(diff, "day %d: slot 14 coverage is %d, want 1", d, count14)
		}
		if diff := abs(count18 - 1); diff > 0 {
			r.addHard(diff, "day %d: slot 18 coverage is %d, want 1", d, count18)
		}
		if diff := abs(count2933 - 2); diff > 0 {
			r.addHard(diff, "day %d: slot 29/33 coverage is %d, want 2", d, count2933)
		}
		if countV633 > 1 {
			r.addHard(countV633-1, "day %d: V633 assigned %d times, want at most 1", d, countV633)
		}
	}
}

func isWork(c model.ShiftCode) bool {
	return !c.IsEmpty() && !c.IsOffMarker()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
