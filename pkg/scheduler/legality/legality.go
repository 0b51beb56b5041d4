// Package legality implements the local feasibility probe shared by
// FixedAssigner, PRDDistributor and the memetic engine's local repair:
// given one employee's day-vector and a candidate shift at one day,
// decide whether placing it there keeps that employee's row compliant
// with the run-length, rest-gap and same-family-adjacency rules.
package legality

import (
	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

// MaxRun is the longest permitted contiguous run of non-off days.
const MaxRun = 7

// MinGapHours is the minimum required rest between the end of one
// shift and the start of the next.
const MinGapHours = 10.0

// isWork reports whether code represents an actual working shift
// (neither Off nor an absence/rest marker).
func isWork(code model.ShiftCode) bool {
	return !code.IsEmpty() && !code.IsOffMarker()
}

// RunLengthAt computes the contiguous run of working days that would
// result from placing candidate at row[day], scanning outward from
// day in both directions.
func RunLengthAt(row []model.ShiftCode, day int, candidate model.ShiftCode) int {
	at := func(i int) model.ShiftCode {
		if i == day {
			return candidate
		}
		if i < 0 || i >= len(row) {
			return model.Off
		}
		return row[i]
	}

	if !isWork(at(day)) {
		return 0
	}

	run := 1
	for i := day - 1; i >= 0 && isWork(at(i)); i-- {
		run++
	}
	for i := day + 1; i < len(row) && isWork(at(i)); i++ {
		run++
	}
	return run
}

// GapHours returns the rest gap between the end of a shift and the
// start of the shift on the following day, accounting for the next
// day's start always being 24h later on the clock.
func GapHours(prevEnd, nextStart float64) float64 {
	return (nextStart + 24) - prevEnd
}

// RestOK reports whether the gap between prev (ending its day) and
// next (starting the following day) is at least MinGapHours. Either
// side being off or an absence marker trivially satisfies the rule.
func RestOK(prev, next model.ShiftCode) bool {
	if !isWork(prev) || !isWork(next) {
		return true
	}
	prevEnd, ok1 := catalogue.EndHour(prev)
	nextStart, ok2 := catalogue.StartHour(next)
	if !ok1 || !ok2 {
		return true
	}
	return GapHours(prevEnd, nextStart) >= MinGapHours
}

// SameFamilyAdjacent reports whether a and b are both VX or both V6 —
// the two families for which no adjacent repeat is allowed.
func SameFamilyAdjacent(a, b model.ShiftCode) bool {
	fa, fb := catalogue.FamilyOf(a), catalogue.FamilyOf(b)
	if fa != fb {
		return false
	}
	return fa == model.FamilyVX || fa == model.FamilyV6
}

// Probe applies the full local legality probe (spec §4.4) for placing
// candidate at row[day]: run length, both-direction rest gaps, and
// same-family adjacency against both neighbours.
func Probe(row []model.ShiftCode, day int, candidate model.ShiftCode) bool {
	if RunLengthAt(row, day, candidate) > MaxRun {
		return false
	}

	if day > 0 {
		prev := row[day-1]
		if !RestOK(prev, candidate) {
			return false
		}
		if SameFamilyAdjacent(prev, candidate) {
			return false
		}
	}

	if day < len(row)-1 {
		next := row[day+1]
		if !RestOK(candidate, next) {
			return false
		}
		if SameFamilyAdjacent(candidate, next) {
			return false
		}
	}

	return true
}
