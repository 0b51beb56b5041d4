// Package fixedassign seeds the mandatory CustomerService coverage
// shifts into the pin table before PRD distribution and population
// initialization run.
package fixedassign

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/legality"
)

type slot struct {
	name     string
	options  []model.ShiftCode
	need     int
	maxV633  int // -1 means no cap
}

var slots = []slot{
	{name: "14", options: []model.ShiftCode{model.V814, model.V614}, need: 1, maxV633: -1},
	{name: "18", options: []model.ShiftCode{model.V818, model.V618}, need: 1, maxV633: -1},
	{name: "2933", options: []model.ShiftCode{model.V829, model.V633}, need: 2, maxV633: 1},
}

// Result is the outcome of one FixedAssigner pass.
type Result struct {
	Pins    model.ManualPins
	Summary string
}

// Run seeds mandatory CS coverage into pins for every day in
// [0, days). It never overwrites an existing pin, and returns a new
// pin table plus a human-readable summary message.
func Run(pins model.ManualPins, employees []model.Employee, days int) Result {
	csEmployees := filterCS(employees)
	out := pins.Clone()

	rows := buildRows(csEmployees, out, days)
	slotCounts := make(map[string]map[string]int, len(slots))
	for _, s := range slots {
		slotCounts[s.name] = make(map[string]int, len(csEmployees))
		for _, e := range csEmployees {
			slotCounts[s.name][e.ID] = 0
		}
	}

	var unassigned []string

	for day := 0; day < days; day++ {
		assignedToday := make(map[string]bool)
		v633Today := 0

		for _, s := range slots {
			for n := 0; n < s.need; n++ {
				v633Cap := s.maxV633
				allowV633 := v633Cap < 0 || v633Today < v633Cap

				empID, code, found := pickCandidate(s, allowV633, day, csEmployees, out, rows, slotCounts, assignedToday)
				if !found {
					unassigned = append(unassigned, fmt.Sprintf("day %d slot %s", day, s.name))
					continue
				}

				out.Set(empID, day, code)
				rows[empID][day] = code
				assignedToday[empID] = true
				slotCounts[s.name][empID]++
				if code == model.V633 {
					v633Today++
				}
			}
		}
	}

	rebalanceAll(csEmployees, pins, out, rows, slotCounts, days)

	summary := fmt.Sprintf("assigned mandatory CS coverage across %d days for %d CustomerService employees", days, len(csEmployees))
	if len(unassigned) > 0 {
		summary += fmt.Sprintf("; %d slot(s) left unassigned: %s", len(unassigned), strings.Join(unassigned, ", "))
	}

	return Result{Pins: out, Summary: summary}
}

func filterCS(employees []model.Employee) []model.Employee {
	var out []model.Employee
	for _, e := range employees {
		if e.InDepartment(model.DepartmentCustomerService) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func buildRows(employees []model.Employee, pins model.ManualPins, days int) map[string][]model.ShiftCode {
	rows := make(map[string][]model.ShiftCode, len(employees))
	for _, e := range employees {
		row := make([]model.ShiftCode, days)
		for d := 0; d < days; d++ {
			if code, ok := pins.Get(e.ID, d); ok {
				row[d] = code
			}
		}
		rows[e.ID] = row
	}
	return rows
}

// pickCandidate selects the unpinned CS employee with the fewest
// assignments so far in slot s, trying each of s's code options in
// turn until one passes the legality probe.
func pickCandidate(
	s slot,
	allowV633 bool,
	day int,
	employees []model.Employee,
	pins model.ManualPins,
	rows map[string][]model.ShiftCode,
	slotCounts map[string]map[string]int,
	assignedToday map[string]bool,
) (empID string, code model.ShiftCode, found bool) {
	candidates := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if assignedToday[e.ID] {
			continue
		}
		if _, pinned := pins.Get(e.ID, day); pinned {
			continue
		}
		candidates = append(candidates, e)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i].ID, candidates[j].ID
		return slotCounts[s.name][ci] < slotCounts[s.name][cj]
	})

	for _, e := range candidates {
		for _, opt := range s.options {
			if opt == model.V633 && !allowV633 {
				continue
			}
			if legality.Probe(rows[e.ID], day, opt) {
				return e.ID, opt, true
			}
		}
	}
	return "", model.Off, false
}

// rebalanceAll repeatedly swaps one day's assignment between the
// most- and least-loaded employee in each slot family until the
// max-min gap is <= 1 or no compliant swap remains. Only assignments
// made by this pass are moved; operator pins in original stay put.
func rebalanceAll(employees []model.Employee, original, pins model.ManualPins, rows map[string][]model.ShiftCode, slotCounts map[string]map[string]int, days int) {
	for _, s := range slots {
		rebalanceSlot(s, employees, original, pins, rows, slotCounts[s.name], days)
	}
}

func rebalanceSlot(s slot, employees []model.Employee, original, pins model.ManualPins, rows map[string][]model.ShiftCode, counts map[string]int, days int) {
	const maxIterations = 500

	for iter := 0; iter < maxIterations; iter++ {
		maxEmp, minEmp := "", ""
		maxCount, minCount := -1, -1
		for _, e := range employees {
			c := counts[e.ID]
			if maxCount == -1 || c > maxCount {
				maxCount, maxEmp = c, e.ID
			}
			if minCount == -1 || c < minCount {
				minCount, minEmp = c, e.ID
			}
		}
		if maxEmp == "" || maxCount-minCount <= 1 {
			return
		}

		moved := false
		for day := 0; day < days; day++ {
			code := rows[maxEmp][day]
			if !isSlotCode(s, code) {
				continue
			}
			if _, pinnedSource := pins.Get(maxEmp, day); !pinnedSource {
				continue
			}
			if _, operatorPin := original.Get(maxEmp, day); operatorPin {
				continue
			}

			if _, pinnedTarget := pins.Get(minEmp, day); pinnedTarget {
				continue
			}
			if !rows[minEmp][day].IsEmpty() {
				continue
			}
			if !legality.Probe(rows[minEmp], day, code) {
				continue
			}

			pins.Delete(maxEmp, day)
			rows[maxEmp][day] = model.Off
			pins.Set(minEmp, day, code)
			rows[minEmp][day] = code
			counts[maxEmp]--
			counts[minEmp]++
			moved = true
			break
		}

		if !moved {
			return
		}
	}
}

func isSlotCode(s slot, code model.ShiftCode) bool {
	for _, opt := range s.options {
		if opt == code {
			return true
		}
	}
	return false
}
