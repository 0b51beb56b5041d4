// Package initializer produces candidate schedules to seed the
// memetic engine's population, by copying pins and drawing the rest
// at random from the selected shift pool (spec §4.7).
package initializer

import (
	"math/rand"
	"sort"

	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

// Mode selects which of the two named initialization strategies to
// run. Generate treats both the same way — pins are copied verbatim
// and every other cell is drawn at random — since FixedAssigner and
// PRDDistributor have already written their output into pins; the
// modes are kept distinct so a population can still split across both
// named modes.
type Mode int

const (
	ModeRandom Mode = iota
	ModeHeuristic
)

// DrawPool builds the rank-unrestricted and morning-restricted draw
// pools from the run's selected shifts, excluding the three markers.
// Both pools are sorted so that a seeded rng draws the same codes on
// every run. Exported so the memetic engine's mutation and
// local-repair steps can redraw from the same pool a fresh Generate
// call would use.
func DrawPool(selectedShifts map[model.ShiftCode]bool) (all, morning []model.ShiftCode) {
	for code := range selectedShifts {
		if code.IsOffMarker() || code.IsEmpty() {
			continue
		}
		all = append(all, code)
		if catalogue.IsMorning(code) {
			morning = append(morning, code)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	sort.Slice(morning, func(i, j int) bool { return morning[i] < morning[j] })
	return all, morning
}

// Generate builds one candidate Schedule for the given employees and
// day count. Pinned cells are copied verbatim; everything else is
// drawn uniformly from selectedShifts minus {PRD, AL, NPL}, restricted
// to morning (start < 12) shifts for Senior/Manager employees.
func Generate(mode Mode, employees []model.Employee, pins model.ManualPins, selectedShifts map[model.ShiftCode]bool, days int, rng *rand.Rand) *model.Schedule {
	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	sched := model.NewSchedule(ids, days)

	workPool, morningPool := DrawPool(selectedShifts)

	for _, e := range employees {
		pool := workPool
		if e.IsMorningOnly() {
			pool = morningPool
		}
		for d := 0; d < days; d++ {
			if code, ok := pins.Get(e.ID, d); ok {
				sched.Set(e.ID, d, code)
				continue
			}
			sched.Set(e.ID, d, DrawFrom(pool, rng))
		}
	}

	return sched
}

// GeneratePopulation builds count candidates, split roughly
// half-and-half between Random and Heuristic mode.
func GeneratePopulation(count int, employees []model.Employee, pins model.ManualPins, selectedShifts map[model.ShiftCode]bool, days int, rng *rand.Rand) []*model.Schedule {
	population := make([]*model.Schedule, count)
	for i := range population {
		mode := ModeRandom
		if i%2 == 1 {
			mode = ModeHeuristic
		}
		population[i] = Generate(mode, employees, pins, selectedShifts, days, rng)
	}
	return population
}

// DrawFrom picks one shift code uniformly from pool, or Off if pool is
// empty (e.g. a Senior/Manager employee when no morning shift was
// selected for the run).
func DrawFrom(pool []model.ShiftCode, rng *rand.Rand) model.ShiftCode {
	if len(pool) == 0 {
		return model.Off
	}
	return pool[rng.Intn(len(pool))]
}
