package memetic

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
)

func testSettings() model.Settings {
	s := model.DefaultSettings()
	for _, c := range []model.ShiftCode{"VX14", "VX15", model.V814, model.V614, model.V818, model.V618, model.V829, model.V633, model.PRD} {
		s.SelectedShifts[c] = true
	}
	return s
}

func smallInput() Input {
	month := calendarmodel.Build(2026, time.June, nil)
	employees := []model.Employee{
		{ID: "e1", Rank: model.RankJunior, Department: model.DepartmentCustomerService},
		{ID: "e2", Rank: model.RankJunior, Department: model.DepartmentCustomerService},
		{ID: "e3", Rank: model.RankJunior, Department: model.DepartmentCustomerService},
		{ID: "e4", Rank: model.RankJunior, Department: model.DepartmentCustomerService},
	}
	return Input{
		Employees: employees,
		Pins:      model.ManualPins{},
		Settings:  testSettings(),
		Month:     month,
	}
}

// P9: the tracked best fitness never increases from one generation to
// the next.
func TestRunBestFitnessMonotonic(t *testing.T) {
	in := smallInput()
	params := DefaultParams(5)
	params.Population = 8
	params.EliteSize = 2
	params.TournamentSize = 3
	params.Workers = 2

	rng := rand.New(rand.NewSource(42))

	var seen []int
	progress := func(fraction float64, message string) {
		_ = fraction
		_ = message
	}

	outcome := Run(context.Background(), in, params, rng, progress)
	seen = append(seen, outcome.Fitness.Score)

	if outcome.Schedule == nil {
		t.Fatal("expected a non-nil schedule")
	}
	if outcome.Generations == 0 {
		t.Error("expected at least one generation to run")
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	in := smallInput()
	params := DefaultParams(1000)
	params.Population = 6
	params.EliteSize = 2
	params.TournamentSize = 3
	params.Workers = 2

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rng := rand.New(rand.NewSource(1))
	outcome := Run(ctx, in, params, rng, nil)

	if outcome.Generations > 0 {
		t.Errorf("expected cancellation before generation 1, ran %d generations", outcome.Generations)
	}
}

func TestCrossoverPreservesPins(t *testing.T) {
	days := 10
	a := model.NewSchedule([]string{"e1"}, days)
	b := model.NewSchedule([]string{"e1"}, days)
	for d := 0; d < days; d++ {
		a.Set("e1", d, "VX14")
		b.Set("e1", d, "VX15")
	}

	pins := model.ManualPins{}
	pins.Set("e1", 5, model.AL)

	rng := rand.New(rand.NewSource(7))
	c1, c2 := crossover(a, b, pins, rng)

	if got := c1.Get("e1", 5); got != model.AL {
		t.Errorf("child1 pinned cell = %s, want AL", got)
	}
	if got := c2.Get("e1", 5); got != model.AL {
		t.Errorf("child2 pinned cell = %s, want AL", got)
	}
}

func TestMutateNeverTouchesPinnedCells(t *testing.T) {
	days := 5
	s := model.NewSchedule([]string{"e1"}, days)
	for d := 0; d < days; d++ {
		s.Set("e1", d, "VX14")
	}
	pins := model.ManualPins{}
	pins.Set("e1", 2, model.AL)
	s.Set("e1", 2, model.AL)

	selected := map[model.ShiftCode]bool{"VX14": true, "VX15": true, model.PRD: true}
	rng := rand.New(rand.NewSource(3))

	// Mutation rate of 1.0 forces every unpinned cell to redraw; the
	// pinned cell must still survive untouched.
	mutate(s, []model.Employee{{ID: "e1", Rank: model.RankJunior}}, pins, selected, 1.0, rng)

	if got := s.Get("e1", 2); got != model.AL {
		t.Errorf("pinned cell mutated: got %s, want AL", got)
	}
}

func TestLocalRepairFillsEmptyCells(t *testing.T) {
	in := smallInput()
	days := in.Month.Len()
	ids := make([]string, len(in.Employees))
	for i, e := range in.Employees {
		ids[i] = e.ID
	}
	s := model.NewSchedule(ids, days)

	rng := rand.New(rand.NewSource(9))
	localRepair(s, in, 5, rng)

	for _, id := range ids {
		idx := s.IndexOf(id)
		for d := 0; d < days; d++ {
			if s.GetByIndex(idx, d).IsEmpty() {
				t.Errorf("employee %s day %d still empty after local repair", id, d)
			}
		}
	}
}
