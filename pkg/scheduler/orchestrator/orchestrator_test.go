package orchestrator

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	apperr "github.com/shiftboard/engine/pkg/errors"
	"github.com/shiftboard/engine/pkg/model"
)

type memEmployeeStore struct{ employees []model.Employee }

func (s *memEmployeeStore) List(ctx context.Context) ([]model.Employee, error) {
	return s.employees, nil
}
func (s *memEmployeeStore) Save(ctx context.Context, employees []model.Employee) error {
	s.employees = employees
	return nil
}

type memPinStore struct{ pins model.ManualPins }

func (s *memPinStore) LoadForMonth(ctx context.Context, month *calendarmodel.Month) (model.ManualPins, error) {
	if s.pins == nil {
		return model.ManualPins{}, nil
	}
	return s.pins.Clone(), nil
}
func (s *memPinStore) SaveForMonth(ctx context.Context, pins model.ManualPins, month *calendarmodel.Month) error {
	s.pins = pins.Clone()
	return nil
}
func (s *memPinStore) ClearForMonth(ctx context.Context, month *calendarmodel.Month) error {
	s.pins = nil
	return nil
}

type memScheduleStore struct{ schedule *model.Schedule }

func (s *memScheduleStore) LoadForMonth(ctx context.Context, month *calendarmodel.Month) (*model.Schedule, error) {
	return s.schedule, nil
}
func (s *memScheduleStore) SaveForMonth(ctx context.Context, schedule *model.Schedule, month *calendarmodel.Month) error {
	s.schedule = schedule
	return nil
}
func (s *memScheduleStore) ClearForMonth(ctx context.Context, month *calendarmodel.Month) error {
	s.schedule = nil
	return nil
}

type memSettingsStore struct{ values map[string]string }

func newMemSettingsStore(maxGenerations int, selectedShifts []model.ShiftCode) *memSettingsStore {
	joined := ""
	for i, c := range selectedShifts {
		if i > 0 {
			joined += ","
		}
		joined += string(c)
	}
	return &memSettingsStore{values: map[string]string{
		"vxMin":          "3",
		"maxGenerations": strconv.Itoa(maxGenerations),
		"selectedShifts": joined,
	}}
}

func (s *memSettingsStore) Get(ctx context.Context, key, fallback string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}
func (s *memSettingsStore) Set(ctx context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func fullShiftSelection() []model.ShiftCode {
	return []model.ShiftCode{
		"VX14", "VX15", "VX16",
		model.V814, model.V614, model.V818, model.V618, model.V829, model.V633,
		model.PRD,
	}
}

func csEmployees(n int) []model.Employee {
	employees := make([]model.Employee, n)
	for i := range employees {
		employees[i] = model.Employee{
			ID:         "e" + strconv.Itoa(i),
			Rank:       model.RankJunior,
			Department: model.DepartmentCustomerService,
		}
	}
	return employees
}

// E2-adjacent: a feasibility rejection surfaces as PreconditionFailure
// and no schedule is persisted.
func TestRunRejectsInfeasibleSettings(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	empStore := &memEmployeeStore{employees: csEmployees(4)}
	pinStore := &memPinStore{}
	schedStore := &memScheduleStore{}
	settingsStore := newMemSettingsStore(5, []model.ShiftCode{model.PRD}) // missing every anchor code

	o := New(empStore, pinStore, schedStore, settingsStore)
	_, err := o.Run(context.Background(), RunRequest{Month: month})

	if err == nil {
		t.Fatal("expected an error for an infeasible run")
	}
	if apperr.GetCode(err) != apperr.CodePreconditionFailure {
		t.Errorf("got code %s, want PreconditionFailure", apperr.GetCode(err))
	}
	if schedStore.schedule != nil {
		t.Error("schedule must not be persisted on a feasibility rejection")
	}
}

func TestRunProducesAndPersistsSchedule(t *testing.T) {
	month := calendarmodel.Build(2026, time.June, nil)
	empStore := &memEmployeeStore{employees: csEmployees(6)}
	pinStore := &memPinStore{}
	schedStore := &memScheduleStore{}
	settingsStore := newMemSettingsStore(3, fullShiftSelection())

	o := New(empStore, pinStore, schedStore, settingsStore)

	var lastFraction float64
	progressCalls := 0
	progress := func(fraction float64, message string) {
		lastFraction = fraction
		progressCalls++
	}

	result, err := o.Run(context.Background(), RunRequest{
		Month:    month,
		Seed:     7,
		Progress: progressSinkFunc(progress),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Schedule == nil {
		t.Fatal("expected a persisted schedule")
	}
	if schedStore.schedule == nil {
		t.Error("schedule was not saved to the store")
	}
	if progressCalls == 0 {
		t.Error("expected at least one progress report")
	}
	if lastFraction != 1.0 {
		t.Errorf("final progress fraction = %v, want 1.0", lastFraction)
	}
}

type progressSinkFunc func(fraction float64, message string)

func (f progressSinkFunc) Report(fraction float64, message string) { f(fraction, message) }
