// Package memetic implements the population-based search that turns
// an initial candidate pool into a low-fitness schedule (spec §4.8):
// tournament selection, one-point day-axis crossover, rank-restricted
// mutation and structured min-conflicts local repair, evaluated in
// parallel across a fixed worker pool the way the teacher's
// optimizer.ParallelEvaluator evaluates a neighborhood batch.
package memetic

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/fitness"
	"github.com/shiftboard/engine/pkg/scheduler/initializer"
	"github.com/shiftboard/engine/pkg/scheduler/legality"
)

// Params are the engine's tunable constants (spec §4.8).
type Params struct {
	Population      int
	EliteSize       int
	TournamentSize  int
	MutationRate    float64
	LocalRepairMax  int
	MaxGenerations  int
	Workers         int
}

// DefaultParams returns the spec's documented constants. MaxGenerations
// is supplied separately per run from Settings.MaxGenerations.
func DefaultParams(maxGenerations int) Params {
	return Params{
		Population:     50,
		EliteSize:      5,
		TournamentSize: 5,
		MutationRate:   0.01,
		LocalRepairMax: 300,
		MaxGenerations: maxGenerations,
		Workers:        4,
	}
}

// earlyExitScore is HARD_THRESHOLD + SOFT_THRESHOLD from spec §4.8
// step 3 — a fitness at or below this is accepted without exhausting
// the remaining generations.
const earlyExitScore = 0 + fitness.SOFT

// Progress reports fractional completion and a short status message,
// shaped to match the external ProgressSink interface (spec §6); the
// orchestrator adapts this into whatever sink it was given.
type Progress func(fraction float64, message string)

// Input bundles the run's fixed context — everything evaluated
// members share and nothing that a single candidate owns exclusively.
type Input struct {
	Employees      []model.Employee
	Pins           model.ManualPins
	Settings       model.Settings
	Month          *calendarmodel.Month
}

// Outcome is the engine's result: the best schedule seen across the
// whole run together with its final, freshly-recomputed fitness.
type Outcome struct {
	Schedule    *model.Schedule
	Fitness     fitness.Result
	Generations int
}

// Run executes the generational loop described in spec §4.8 and
// returns the best schedule found, locally repaired once more before
// being handed back. Cancellation is honoured at generation
// boundaries only — never mid-evaluation of a single member — per
// spec §5.
func Run(ctx context.Context, in Input, params Params, rng *rand.Rand, progress Progress) Outcome {
	days := in.Month.Len()
	population := initializer.GeneratePopulation(params.Population, in.Employees, in.Pins, in.Settings.SelectedShifts, days, rng)

	var best *model.Schedule
	bestResult := fitness.Result{Score: -1}

	generationsRun := 0
	for gen := 0; gen < params.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			generationsRun = gen
			return finalize(best, bestResult, in, generationsRun)
		default:
		}

		results := evaluateParallel(population, in, params.Workers)

		for i, res := range results {
			if bestResult.Score == -1 || res.Score < bestResult.Score {
				best = population[i].Clone()
				bestResult = res
			}
		}

		generationsRun = gen + 1
		if progress != nil {
			progress(float64(generationsRun)/float64(params.MaxGenerations), "generation complete")
		}

		if bestResult.Score <= earlyExitScore {
			break
		}

		population = nextGeneration(population, results, in, params, rng)
	}

	return finalize(best, bestResult, in, generationsRun)
}

func finalize(best *model.Schedule, bestResult fitness.Result, in Input, generations int) Outcome {
	if best == nil {
		return Outcome{Schedule: nil, Fitness: fitness.Result{}, Generations: generations}
	}
	localRepair(best, in, 300, rand.New(rand.NewSource(1)))
	final := fitness.Evaluate(fitness.Input{
		Schedule:  best,
		Employees: in.Employees,
		Pins:      in.Pins,
		Settings:  in.Settings,
		Month:     in.Month,
	})
	return Outcome{Schedule: best, Fitness: final, Generations: generations}
}

// evaluateParallel scores every member of population using a fixed
// worker pool reading from a job channel and writing into an indexed
// result slice, grounded on the teacher's ParallelEvaluator.EvaluateBatch.
func evaluateParallel(population []*model.Schedule, in Input, workers int) []fitness.Result {
	if workers <= 0 {
		workers = 4
	}
	results := make([]fitness.Result, len(population))

	type job struct {
		index int
		sched *model.Schedule
	}
	jobs := make(chan job, len(population))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = fitness.Evaluate(fitness.Input{
					Schedule:  j.sched,
					Employees: in.Employees,
					Pins:      in.Pins,
					Settings:  in.Settings,
					Month:     in.Month,
				})
			}
		}()
	}

	for i, sched := range population {
		jobs <- job{index: i, sched: sched}
	}
	close(jobs)
	wg.Wait()

	return results
}

// nextGeneration builds the next population: elite carried over
// verbatim, the remainder filled by tournament selection, crossover,
// mutation and local repair (spec §4.8 steps 4-7).
func nextGeneration(population []*model.Schedule, results []fitness.Result, in Input, params Params, rng *rand.Rand) []*model.Schedule {
	order := make([]int, len(population))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return results[order[a]].Score < results[order[b]].Score
	})

	next := make([]*model.Schedule, 0, params.Population)
	for i := 0; i < params.EliteSize && i < len(order); i++ {
		next = append(next, population[order[i]].Clone())
	}

	for len(next) < params.Population {
		p1 := tournamentSelect(population, results, params.TournamentSize, rng)
		p2 := tournamentSelect(population, results, params.TournamentSize, rng)

		c1, c2 := crossover(p1, p2, in.Pins, rng)

		mutate(c1, in.Employees, in.Pins, in.Settings.SelectedShifts, params.MutationRate, rng)
		mutate(c2, in.Employees, in.Pins, in.Settings.SelectedShifts, params.MutationRate, rng)

		localRepair(c1, in, params.LocalRepairMax, rng)
		localRepair(c2, in, params.LocalRepairMax, rng)

		next = append(next, c1, c2)
	}

	return dedupePopulation(next[:params.Population], in, rng)
}

// dedupePopulation replaces any member whose Hash matches an
// already-kept member with a freshly mutated copy of itself, so a
// converging population doesn't collapse into identical clones that
// waste evaluation and crossover effort on redundant candidates.
func dedupePopulation(population []*model.Schedule, in Input, rng *rand.Rand) []*model.Schedule {
	seen := make(map[uint64]bool, len(population))
	for i, s := range population {
		h := s.Hash()
		if !seen[h] {
			seen[h] = true
			continue
		}
		replacement := s.Clone()
		mutate(replacement, in.Employees, in.Pins, in.Settings.SelectedShifts, 0.2, rng)
		reapplyPins(replacement, in.Pins)
		population[i] = replacement
		seen[replacement.Hash()] = true
	}
	return population
}

// tournamentSelect samples tournamentSize members uniformly and
// returns the one with the lowest fitness score.
func tournamentSelect(population []*model.Schedule, results []fitness.Result, tournamentSize int, rng *rand.Rand) *model.Schedule {
	bestIdx := rng.Intn(len(population))
	for i := 1; i < tournamentSize; i++ {
		candidate := rng.Intn(len(population))
		if results[candidate].Score < results[bestIdx].Score {
			bestIdx = candidate
		}
	}
	return population[bestIdx]
}

// crossover performs a one-point crossover over the day axis: a
// single cut index splits every employee's day-vector identically,
// then pins are re-applied to both children so an operator override
// can never be lost to a swap.
func crossover(a, b *model.Schedule, pins model.ManualPins, rng *rand.Rand) (*model.Schedule, *model.Schedule) {
	days := a.Days()
	cut := rng.Intn(days)

	c1, c2 := a.Clone(), b.Clone()
	for _, id := range a.EmployeeIDs() {
		for d := cut; d < days; d++ {
			c1.Set(id, d, b.Get(id, d))
			c2.Set(id, d, a.Get(id, d))
		}
	}

	reapplyPins(c1, pins)
	reapplyPins(c2, pins)
	return c1, c2
}

func reapplyPins(s *model.Schedule, pins model.ManualPins) {
	for _, id := range s.EmployeeIDs() {
		for d := 0; d < s.Days(); d++ {
			if code, ok := pins.Get(id, d); ok {
				s.Set(id, d, code)
			}
		}
	}
}

// mutate replaces each unpinned cell with a fresh draw from the
// rank-restricted pool with probability rate (spec §4.8 step 6).
func mutate(s *model.Schedule, employees []model.Employee, pins model.ManualPins, selectedShifts map[model.ShiftCode]bool, rate float64, rng *rand.Rand) {
	workPool, morningPool := initializer.DrawPool(selectedShifts)

	for _, e := range employees {
		pool := workPool
		if e.IsMorningOnly() {
			pool = morningPool
		}
		for d := 0; d < s.Days(); d++ {
			if _, pinned := pins.Get(e.ID, d); pinned {
				continue
			}
			if rng.Float64() >= rate {
				continue
			}
			s.Set(e.ID, d, initializer.DrawFrom(pool, rng))
		}
	}
}

// nonOffPool returns the rank-restricted pool with PRD excluded, for
// repair steps that must place a working shift rather than a marker.
func nonOffPool(e model.Employee, selectedShifts map[model.ShiftCode]bool) []model.ShiftCode {
	workPool, morningPool := initializer.DrawPool(selectedShifts)
	pool := workPool
	if e.IsMorningOnly() {
		pool = morningPool
	}
	filtered := make([]model.ShiftCode, 0, len(pool))
	for _, c := range pool {
		if c == model.PRD {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func isWork(c model.ShiftCode) bool {
	return !c.IsEmpty() && !c.IsOffMarker()
}

// localRepair applies the five structured min-conflicts steps (spec
// §4.8.1) for up to maxSteps iterations, stopping early once the
// schedule's fitness reaches zero.
func localRepair(s *model.Schedule, in Input, maxSteps int, rng *rand.Rand) {
	empByID := make(map[string]model.Employee, len(in.Employees))
	for _, e := range in.Employees {
		empByID[e.ID] = e
	}

	sundayCount := len(in.Month.Sundays())
	tabu := newTabuList(64)
	tabu.Add(s.Hash())

	for step := 0; step < maxSteps; step++ {
		score := fitness.Evaluate(fitness.Input{
			Schedule:  s,
			Employees: in.Employees,
			Pins:      in.Pins,
			Settings:  in.Settings,
			Month:     in.Month,
		}).Score
		if score == 0 {
			return
		}

		for _, e := range in.Employees {
			repairPRD(s, e, in, sundayCount, rng)
		}
		fillEmptyCells(s, in, rng)
		repairLongRuns(s, in)
		repairV6Adjacency(s, in, rng)
		randomCellImprovement(s, in, rng, tabu)
		tabu.Add(s.Hash())
	}
}

// repairPRD implements step (a): reconcile one employee's PRD count
// against the month's Sunday count, dropping forbidden-day PRDs first
// and then adding or removing to match, all on unpinned cells.
func repairPRD(s *model.Schedule, e model.Employee, in Input, sundayCount int, rng *rand.Rand) {
	idx := s.IndexOf(e.ID)
	if idx == -1 {
		return
	}
	row := s.Row(idx)
	days := len(row)

	for d := 0; d < days; d++ {
		if row[d] != model.PRD {
			continue
		}
		if _, pinned := in.Pins.Get(e.ID, d); pinned {
			continue
		}
		if in.Month.DayAt(d).IsPRDForbidden {
			row[d] = model.Off
		}
	}

	current := 0
	for _, c := range row {
		if c == model.PRD {
			current++
		}
	}

	dailyLoad := make([]int, days)
	for _, otherID := range s.EmployeeIDs() {
		otherIdx := s.IndexOf(otherID)
		for d := 0; d < days; d++ {
			if s.GetByIndex(otherIdx, d) == model.PRD {
				dailyLoad[d]++
			}
		}
	}

	if needed := sundayCount - current; needed > 0 {
		order := make([]int, days)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return dailyLoad[order[a]] < dailyLoad[order[b]] })

		for _, d := range order {
			if needed == 0 {
				break
			}
			if row[d] != model.Off {
				continue
			}
			if _, pinned := in.Pins.Get(e.ID, d); pinned {
				continue
			}
			if in.Month.DayAt(d).IsPRDForbidden {
				continue
			}
			if !legality.Probe(row, d, model.PRD) {
				continue
			}
			row[d] = model.PRD
			needed--
		}
	} else if excess := -needed; excess > 0 {
		pool := nonOffPool(e, in.Settings.SelectedShifts)
		for d := 0; d < days && excess > 0; d++ {
			if row[d] != model.PRD {
				continue
			}
			if _, pinned := in.Pins.Get(e.ID, d); pinned {
				continue
			}
			row[d] = initializer.DrawFrom(pool, rng)
			excess--
		}
	}
}

// fillEmptyCells implements step (b).
func fillEmptyCells(s *model.Schedule, in Input, rng *rand.Rand) {
	for _, e := range in.Employees {
		idx := s.IndexOf(e.ID)
		if idx == -1 {
			continue
		}
		pool := nonOffPool(e, in.Settings.SelectedShifts)
		row := s.Row(idx)
		for d := range row {
			if !row[d].IsEmpty() {
				continue
			}
			if _, pinned := in.Pins.Get(e.ID, d); pinned {
				continue
			}
			row[d] = initializer.DrawFrom(pool, rng)
		}
	}
}

// repairLongRuns implements step (c): overwrite the 8th day of any
// over-length work run with PRD, if that day is unpinned.
func repairLongRuns(s *model.Schedule, in Input) {
	for _, e := range in.Employees {
		idx := s.IndexOf(e.ID)
		if idx == -1 {
			continue
		}
		row := s.Row(idx)
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
			if run := d - start; run > legality.MaxRun {
				offending := start + legality.MaxRun
				if _, pinned := in.Pins.Get(e.ID, offending); !pinned {
					row[offending] = model.PRD
				}
			}
		}
	}
}

// repairV6Adjacency implements step (d): break an adjacent V6-V6 pair
// by overwriting one (unpinned) side with any non-V6 rank-allowed
// shift.
func repairV6Adjacency(s *model.Schedule, in Input, rng *rand.Rand) {
	for _, e := range in.Employees {
		idx := s.IndexOf(e.ID)
		if idx == -1 {
			continue
		}
		row := s.Row(idx)
		for d := 0; d < len(row)-1; d++ {
			if catalogue.FamilyOf(row[d]) != model.FamilyV6 || catalogue.FamilyOf(row[d+1]) != model.FamilyV6 {
				continue
			}
			target := d + 1
			if _, pinned := in.Pins.Get(e.ID, target); pinned {
				target = d
			}
			if _, pinned := in.Pins.Get(e.ID, target); pinned {
				continue
			}
			pool := nonV6Pool(e, in.Settings.SelectedShifts)
			row[target] = initializer.DrawFrom(pool, rng)
		}
	}
}

func nonV6Pool(e model.Employee, selectedShifts map[model.ShiftCode]bool) []model.ShiftCode {
	pool := nonOffPool(e, selectedShifts)
	filtered := make([]model.ShiftCode, 0, len(pool))
	for _, c := range pool {
		if catalogue.FamilyOf(c) == model.FamilyV6 {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return pool
	}
	return filtered
}

// randomCellImprovement implements step (e): pick one random unpinned
// cell and keep whichever rank-allowed shift minimises whole-schedule
// fitness, ties going to the current value. A candidate whose
// resulting whole-schedule hash is in tabu is skipped even when it
// scores best, so the repair pass doesn't cycle back into a state it
// has already tried this call.
func randomCellImprovement(s *model.Schedule, in Input, rng *rand.Rand, tabu *tabuList) {
	unpinned := make([]model.PinKey, 0, len(in.Employees)*s.Days())
	for _, e := range in.Employees {
		for d := 0; d < s.Days(); d++ {
			if _, pinned := in.Pins.Get(e.ID, d); pinned {
				continue
			}
			unpinned = append(unpinned, model.PinKey{EmployeeID: e.ID, Day: d})
		}
	}
	if len(unpinned) == 0 {
		return
	}

	cell := unpinned[rng.Intn(len(unpinned))]
	idx := s.IndexOf(cell.EmployeeID)
	if idx == -1 {
		return
	}

	var target model.Employee
	for _, e := range in.Employees {
		if e.ID == cell.EmployeeID {
			target = e
			break
		}
	}

	pool := nonOffPool(target, in.Settings.SelectedShifts)
	current := s.GetByIndex(idx, cell.Day)

	bestCode := current
	bestScore := fitness.Evaluate(fitness.Input{
		Schedule:  s,
		Employees: in.Employees,
		Pins:      in.Pins,
		Settings:  in.Settings,
		Month:     in.Month,
	}).Score

	for _, candidate := range pool {
		if candidate == current {
			continue
		}
		s.SetByIndex(idx, cell.Day, candidate)
		if tabu.Contains(s.Hash()) {
			continue
		}
		trialScore := fitness.Evaluate(fitness.Input{
			Schedule:  s,
			Employees: in.Employees,
			Pins:      in.Pins,
			Settings:  in.Settings,
			Month:     in.Month,
		}).Score
		if trialScore < bestScore {
			bestScore = trialScore
			bestCode = candidate
		}
	}

	s.SetByIndex(idx, cell.Day, bestCode)
}
