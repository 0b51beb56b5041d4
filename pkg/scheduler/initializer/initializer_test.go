package initializer

import (
	"math/rand"
	"testing"

	"github.com/shiftboard/engine/pkg/catalogue"
	"github.com/shiftboard/engine/pkg/model"
)

func selectAllWorkCodesAndPRD() map[model.ShiftCode]bool {
	sel := make(map[model.ShiftCode]bool)
	for _, c := range catalogue.WorkCodes() {
		sel[c] = true
	}
	sel[model.PRD] = true
	return sel
}

// E6: Employee with rank = Manager and no pins; after initialization,
// every unpinned day carries a shift with startHour < 12 OR "PRD"
// (post-PRD distribution, represented here as a pinned PRD day).
func TestGenerateRespectsRankRestriction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	employees := []model.Employee{{ID: "mgr", Rank: model.RankManager}}

	pins := model.ManualPins{}
	pins.Set("mgr", 3, model.PRD) // simulates PRDDistributor's prior pass

	sched := Generate(ModeRandom, employees, pins, selectAllWorkCodesAndPRD(), 30, rng)

	for d := 0; d < 30; d++ {
		code := sched.Get("mgr", d)
		if code == model.PRD {
			continue
		}
		start, ok := catalogue.StartHour(code)
		if !ok || start >= 12 {
			t.Errorf("day %d: Manager got non-morning shift %s", d, code)
		}
	}
}

func TestGenerateCopiesPins(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	employees := []model.Employee{{ID: "e1", Rank: model.RankJunior}}

	pins := model.ManualPins{}
	pins.Set("e1", 0, model.AL)

	sched := Generate(ModeRandom, employees, pins, selectAllWorkCodesAndPRD(), 5, rng)

	if got := sched.Get("e1", 0); got != model.AL {
		t.Errorf("pinned cell = %s, want AL", got)
	}
}

func TestGeneratePopulationSplitsModes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	employees := []model.Employee{{ID: "e1", Rank: model.RankJunior}}

	population := GeneratePopulation(10, employees, model.ManualPins{}, selectAllWorkCodesAndPRD(), 5, rng)
	if len(population) != 10 {
		t.Fatalf("len(population) = %d, want 10", len(population))
	}
	for _, s := range population {
		if s == nil {
			t.Error("nil schedule in population")
		}
	}
}
