// Package prd distributes PRD (rostered weekly rest day) markers so
// that every employee's PRD count equals the number of Sundays in the
// roster month.
package prd

import (
	"math"
	"sort"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/legality"
)

// Run mutates pins in place (on a clone, returned to the caller) so
// that count(PRD) == len(month.Sundays()) for every employee, subject
// to the forbidden-day, adjacency and run-length preconditions. It
// never touches a cell the operator pinned directly to a non-PRD
// code; engine-placed PRDs from a previous run may be revisited.
func Run(pins model.ManualPins, employees []model.Employee, month *calendarmodel.Month, enginePlaced map[model.PinKey]bool) model.ManualPins {
	out := pins.Clone()
	days := month.Len()
	sundayCount := len(month.Sundays())
	perDayCap := int(math.Ceil(float64(len(employees)) / 3.0))

	rows := make(map[string][]model.ShiftCode, len(employees))
	for _, e := range employees {
		row := make([]model.ShiftCode, days)
		for d := 0; d < days; d++ {
			if code, ok := out.Get(e.ID, d); ok {
				row[d] = code
			}
		}
		rows[e.ID] = row
	}

	dailyPRDLoad := make([]int, days)
	for _, e := range employees {
		for d := 0; d < days; d++ {
			if rows[e.ID][d] == model.PRD {
				dailyPRDLoad[d]++
			}
		}
	}

	// Step 1: drop engine-placed PRDs that now violate a precondition.
	for _, e := range employees {
		row := rows[e.ID]
		for d := 0; d < days; d++ {
			if row[d] != model.PRD {
				continue
			}
			if !enginePlaced[model.PinKey{EmployeeID: e.ID, Day: d}] {
				continue
			}
			if !satisfiesPreconditions(month, row, d) {
				out.Delete(e.ID, d)
				row[d] = model.Off
				dailyPRDLoad[d]--
			}
		}
	}

	// Step 2 & 3: top up each employee to sundayCount, spreading placement
	// across days ordered by ascending current PRD load.
	for _, e := range employees {
		row := rows[e.ID]
		current := countPRD(row)
		needed := sundayCount - current
		if needed <= 0 {
			continue
		}

		dayOrder := candidateDays(days, dailyPRDLoad)
		for _, d := range dayOrder {
			if needed == 0 {
				break
			}
			if row[d] != model.Off {
				continue
			}
			if dailyPRDLoad[d] >= perDayCap {
				continue
			}
			if !satisfiesPreconditions(month, row, d) {
				continue
			}
			if !legality.Probe(row, d, model.PRD) {
				continue
			}

			out.Set(e.ID, d, model.PRD)
			row[d] = model.PRD
			dailyPRDLoad[d]++
			needed--
		}
	}

	return out
}

func countPRD(row []model.ShiftCode) int {
	n := 0
	for _, c := range row {
		if c == model.PRD {
			n++
		}
	}
	return n
}

// candidateDays returns day indices ordered by ascending current PRD
// load, to spread placements evenly across the month.
func candidateDays(days int, load []int) []int {
	order := make([]int, days)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return load[order[i]] < load[order[j]] })
	return order
}

// satisfiesPreconditions checks the PRDDistributor placement rules
// that aren't already covered by the shared legality probe: the day
// must not be PRD-forbidden, and neither neighbour may be an
// off/absence marker.
func satisfiesPreconditions(month *calendarmodel.Month, row []model.ShiftCode, day int) bool {
	if month.DayAt(day).IsPRDForbidden {
		return false
	}
	if day > 0 && row[day-1].IsOffMarker() {
		return false
	}
	if day < len(row)-1 && row[day+1].IsOffMarker() {
		return false
	}
	return true
}
