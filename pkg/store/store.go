// Package store defines the persistence and reporting boundaries the
// orchestrator depends on (spec §6 expansion). The orchestrator never
// imports internal/repository directly — only these interfaces — so a
// caller can substitute in-memory fakes in tests.
package store

import (
	"context"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
)

// EmployeeStore manages the employee roster.
type EmployeeStore interface {
	List(ctx context.Context) ([]model.Employee, error)
	Save(ctx context.Context, employees []model.Employee) error
}

// PinStore manages operator-supplied manual pins for one calendar month.
type PinStore interface {
	LoadForMonth(ctx context.Context, month *calendarmodel.Month) (model.ManualPins, error)
	SaveForMonth(ctx context.Context, pins model.ManualPins, month *calendarmodel.Month) error
	ClearForMonth(ctx context.Context, month *calendarmodel.Month) error
}

// ScheduleStore manages the persisted, generated schedule for one
// calendar month.
type ScheduleStore interface {
	LoadForMonth(ctx context.Context, month *calendarmodel.Month) (*model.Schedule, error)
	SaveForMonth(ctx context.Context, schedule *model.Schedule, month *calendarmodel.Month) error
	ClearForMonth(ctx context.Context, month *calendarmodel.Month) error
}

// SettingsStore manages the tunable knobs that persist across months.
// Known keys: "vxMin" (integer), "maxGenerations" (integer),
// "selectedShifts" (comma-separated shift codes).
type SettingsStore interface {
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ProgressSink receives fractional-completion updates from a running
// orchestrator invocation. fractionComplete is in [0,1].
type ProgressSink interface {
	Report(fractionComplete float64, message string)
}

// ProgressSinkFunc adapts a plain function to ProgressSink.
type ProgressSinkFunc func(fractionComplete float64, message string)

func (f ProgressSinkFunc) Report(fractionComplete float64, message string) {
	f(fractionComplete, message)
}

// NoopProgressSink discards every report; used when a caller doesn't
// care about progress (e.g. CLI one-shot runs with no live display).
var NoopProgressSink ProgressSink = ProgressSinkFunc(func(float64, string) {})
