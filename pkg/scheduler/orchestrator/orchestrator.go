// Package orchestrator sequences one end-to-end scheduling run (spec
// §4.9): FeasibilityChecker, FixedAssigner, PRDDistributor, population
// initialization, the memetic loop, a final repair pass, persistence,
// and a closing FitnessEvaluator report — grounded on the top-level
// request-to-solver sequencing of the teacher's schedule handler, with
// the HTTP concerns stripped out in favour of the store interfaces in
// pkg/store.
package orchestrator

import (
	"context"
	"math/rand"
	"time"

	"github.com/shiftboard/engine/internal/metrics"
	"github.com/shiftboard/engine/pkg/calendarmodel"
	apperr "github.com/shiftboard/engine/pkg/errors"
	"github.com/shiftboard/engine/pkg/logger"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/feasibility"
	"github.com/shiftboard/engine/pkg/scheduler/fitness"
	"github.com/shiftboard/engine/pkg/scheduler/fixedassign"
	"github.com/shiftboard/engine/pkg/scheduler/memetic"
	"github.com/shiftboard/engine/pkg/scheduler/prd"
	"github.com/shiftboard/engine/pkg/store"
	"github.com/shiftboard/engine/pkg/validator"
)

// Orchestrator wires the store interfaces to the pure scheduling
// components. It holds no scheduling state of its own between runs.
type Orchestrator struct {
	Employees store.EmployeeStore
	Pins      store.PinStore
	Schedules store.ScheduleStore
	Settings  store.SettingsStore
	Logger    *logger.SchedulerLogger
}

// New builds an Orchestrator from the four store dependencies, with
// Logger set to a fresh SchedulerLogger.
func New(employees store.EmployeeStore, pins store.PinStore, schedules store.ScheduleStore, settings store.SettingsStore) *Orchestrator {
	return &Orchestrator{
		Employees: employees,
		Pins:      pins,
		Schedules: schedules,
		Settings:  settings,
		Logger:    logger.NewSchedulerLogger(),
	}
}

// RunRequest is the caller-supplied context for one invocation: which
// month to generate, a random seed for reproducibility (0 means
// non-deterministic), and an optional progress sink.
type RunRequest struct {
	Month    *calendarmodel.Month
	Seed     int64
	Progress store.ProgressSink
}

// RunResult is what the orchestrator hands back: the persisted
// schedule, its final fitness, and whether it represents a fully
// compliant roster.
type RunResult struct {
	RunID           model.RunID
	Schedule        *model.Schedule
	Fitness         fitness.Result
	Violations      []string
	Generations     int
	ResidualNonZero bool
}

// Run executes the full pipeline described in spec §4.9. Errors are
// typed *apperr.AppError values per spec §7: PreconditionFailure when
// FeasibilityChecker rejects the inputs, NoSolution when the memetic
// loop never produces a non-empty schedule, StorageFailure when a
// store call fails (the run aborts without touching previously
// persisted state). A non-zero final fitness is not an error — it is
// surfaced via RunResult.ResidualNonZero and RunResult.Violations.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	progress := req.Progress
	if progress == nil {
		progress = store.NoopProgressSink
	}
	start := time.Now()
	runID := model.NewRunID()

	employees, err := o.Employees.List(ctx)
	if err != nil {
		metrics.RecordRun("storage_failure", time.Since(start), 0)
		return nil, apperr.StorageFailure("employee", err)
	}

	pins, err := o.Pins.LoadForMonth(ctx, req.Month)
	if err != nil {
		metrics.RecordRun("storage_failure", time.Since(start), 0)
		return nil, apperr.StorageFailure("pin", err)
	}

	settings, err := o.loadSettings(ctx)
	if err != nil {
		metrics.RecordRun("storage_failure", time.Since(start), 0)
		return nil, err
	}

	logger.WithField("run_id", runID.String()).Info().Msg("scheduling run started")
	o.Logger.StartSchedule(req.Month.ISODate(0), len(employees), req.Month.Len())

	pins = validator.NewPinConflictDetector(nil).Sanitize(pins, employees, func(c validator.Conflict) {
		o.Logger.ConstraintViolation("pin_conflict", c.Message)
	})

	progress.Report(0.0, "checking feasibility")

	if reason, ok := feasibility.Check(feasibility.Input{
		Employees:      employees,
		SelectedShifts: settings.SelectedShifts,
	}); !ok {
		metrics.RecordRun("precondition_failure", time.Since(start), 0)
		return nil, apperr.PreconditionFailure(reason)
	}

	progress.Report(0.1, "assigning mandatory coverage")
	fixedResult := fixedassign.Run(pins, employees, req.Month.Len())
	pins = fixedResult.Pins

	progress.Report(0.2, "distributing rostered rest days")
	pins = prd.Run(pins, employees, req.Month, nil)

	rng := rand.New(rand.NewSource(seedOrTime(req.Seed)))
	memeticParams := memetic.DefaultParams(settings.MaxGenerations)

	progress.Report(0.3, "running memetic search")
	outcome := memetic.Run(ctx, memetic.Input{
		Employees: employees,
		Pins:      pins,
		Settings:  settings,
		Month:     req.Month,
	}, memeticParams, rng, func(fraction float64, message string) {
		progress.Report(0.3+0.6*fraction, message)
	})

	if outcome.Schedule == nil {
		metrics.RecordRun("no_solution", time.Since(start), outcome.Generations)
		return nil, apperr.NoSolution("memetic loop exhausted maxGenerations without producing a schedule")
	}

	progress.Report(0.95, "persisting schedule")
	if err := o.Schedules.SaveForMonth(ctx, outcome.Schedule, req.Month); err != nil {
		metrics.RecordRun("storage_failure", time.Since(start), outcome.Generations)
		return nil, apperr.StorageFailure("schedule", err)
	}
	if err := o.Pins.SaveForMonth(ctx, pins, req.Month); err != nil {
		metrics.RecordRun("storage_failure", time.Since(start), outcome.Generations)
		return nil, apperr.StorageFailure("pin", err)
	}

	progress.Report(1.0, "done")
	o.Logger.ScheduleComplete(req.Month.ISODate(0), time.Since(start), float64(outcome.Fitness.Score))

	if outcome.Fitness.Score != 0 {
		for _, v := range outcome.Fitness.Violations {
			o.Logger.ConstraintViolation("residual", v)
		}
	}

	metrics.RecordRun("success", time.Since(start), outcome.Generations)
	metrics.SetFinalFitness(outcome.Fitness.Score, len(outcome.Fitness.Violations))

	return &RunResult{
		RunID:           runID,
		Schedule:        outcome.Schedule,
		Fitness:         outcome.Fitness,
		Violations:      outcome.Fitness.Violations,
		Generations:     outcome.Generations,
		ResidualNonZero: outcome.Fitness.Score != 0,
	}, nil
}

func (o *Orchestrator) loadSettings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()

	vxMin, err := o.Settings.Get(ctx, "vxMin", "3")
	if err != nil {
		return settings, apperr.StorageFailure("settings", err)
	}
	if n, ok := parsePositiveInt(vxMin); ok {
		settings.VXMin = n
	}

	maxGen, err := o.Settings.Get(ctx, "maxGenerations", "200")
	if err != nil {
		return settings, apperr.StorageFailure("settings", err)
	}
	if n, ok := parsePositiveInt(maxGen); ok {
		settings.MaxGenerations = n
	}

	selected, err := o.Settings.Get(ctx, "selectedShifts", "")
	if err != nil {
		return settings, apperr.StorageFailure("settings", err)
	}
	settings.SelectedShifts = parseSelectedShifts(selected)

	return settings, nil
}

// parseSelectedShifts decodes the comma-separated shift-code list
// SettingsStore persists under the "selectedShifts" key.
func parseSelectedShifts(raw string) map[model.ShiftCode]bool {
	set := make(map[model.ShiftCode]bool)
	field := ""
	flush := func() {
		if field != "" {
			set[model.ShiftCode(field)] = true
		}
		field = ""
	}
	for _, r := range raw {
		if r == ',' {
			flush()
			continue
		}
		field += string(r)
	}
	flush()
	return set
}

func parsePositiveInt(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func seedOrTime(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
