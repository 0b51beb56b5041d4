package repository

import (
	"context"
	"fmt"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/model"
)

// ScheduleRepository implements store.ScheduleStore against the
// schedule(emp_id, date, shift, PK(emp_id,date)) table. Rows are keyed
// by absolute ISO date; the day index within a month is reconstructed
// via calendarmodel.Month.IndexOf on load and rendered back via
// Month.ISODate on save.
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository builds a ScheduleRepository over db.
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// LoadForMonth reconstructs the dense Schedule matrix for the given
// month from whatever rows fall within its day window. Employees with
// no rows at all have no row in the returned Schedule.
func (r *ScheduleRepository) LoadForMonth(ctx context.Context, month *calendarmodel.Month) (*model.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT emp_id, date, shift FROM schedule
		WHERE date >= $1 AND date <= $2
	`, month.ISODate(0), month.ISODate(month.Len()-1))
	if err != nil {
		return nil, fmt.Errorf("loading schedule rows: %w", err)
	}
	defer rows.Close()

	type cell struct {
		empID string
		day   int
		shift model.ShiftCode
	}
	var cells []cell
	seen := make(map[string]bool)
	var empIDs []string
	for rows.Next() {
		var empID, date, shift string
		if err := rows.Scan(&empID, &date, &shift); err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		day := month.IndexOf(date)
		if day < 0 {
			continue
		}
		if !seen[empID] {
			seen[empID] = true
			empIDs = append(empIDs, empID)
		}
		cells = append(cells, cell{empID: empID, day: day, shift: model.ShiftCode(shift)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule rows: %w", err)
	}

	schedule := model.NewSchedule(empIDs, month.Len())
	for _, c := range cells {
		schedule.Set(c.empID, c.day, c.shift)
	}
	return schedule, nil
}

// SaveForMonth overwrites the month's schedule rows wholesale: clear
// the window, then insert every non-empty cell.
func (r *ScheduleRepository) SaveForMonth(ctx context.Context, schedule *model.Schedule, month *calendarmodel.Month) error {
	if err := r.ClearForMonth(ctx, month); err != nil {
		return err
	}
	const insert = `INSERT INTO schedule (emp_id, date, shift) VALUES ($1, $2, $3)`
	for _, empID := range schedule.EmployeeIDs() {
		idx := schedule.IndexOf(empID)
		for day := 0; day < schedule.Days(); day++ {
			code := schedule.GetByIndex(idx, day)
			if code == model.Off {
				continue
			}
			if _, err := r.db.ExecContext(ctx, insert, empID, month.ISODate(day), string(code)); err != nil {
				return fmt.Errorf("saving schedule cell %s/%s: %w", empID, month.ISODate(day), err)
			}
		}
	}
	return nil
}

// ClearForMonth deletes every schedule row within the month's day
// window.
func (r *ScheduleRepository) ClearForMonth(ctx context.Context, month *calendarmodel.Month) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedule WHERE date >= $1 AND date <= $2`,
		month.ISODate(0), month.ISODate(month.Len()-1))
	if err != nil {
		return fmt.Errorf("clearing schedule rows: %w", err)
	}
	return nil
}

// PinRepository implements store.PinStore against the
// manual_shifts(emp_id, date, shift, PK(emp_id,date)) table. Same
// date/day-index translation as ScheduleRepository.
type PinRepository struct {
	db DB
}

// NewPinRepository builds a PinRepository over db.
func NewPinRepository(db DB) *PinRepository {
	return &PinRepository{db: db}
}

// LoadForMonth returns every manual pin whose date falls inside the
// month's window, keyed by day index.
func (r *PinRepository) LoadForMonth(ctx context.Context, month *calendarmodel.Month) (model.ManualPins, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT emp_id, date, shift FROM manual_shifts
		WHERE date >= $1 AND date <= $2
	`, month.ISODate(0), month.ISODate(month.Len()-1))
	if err != nil {
		return nil, fmt.Errorf("loading manual shift rows: %w", err)
	}
	defer rows.Close()

	pins := make(model.ManualPins)
	for rows.Next() {
		var empID, date, shift string
		if err := rows.Scan(&empID, &date, &shift); err != nil {
			return nil, fmt.Errorf("scanning manual shift row: %w", err)
		}
		day := month.IndexOf(date)
		if day < 0 {
			continue
		}
		pins.Set(empID, day, model.ShiftCode(shift))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manual shift rows: %w", err)
	}
	return pins, nil
}

// SaveForMonth overwrites the month's manual_shifts rows wholesale,
// mirroring ScheduleRepository.SaveForMonth.
func (r *PinRepository) SaveForMonth(ctx context.Context, pins model.ManualPins, month *calendarmodel.Month) error {
	if err := r.ClearForMonth(ctx, month); err != nil {
		return err
	}
	const insert = `INSERT INTO manual_shifts (emp_id, date, shift) VALUES ($1, $2, $3)`
	for key, code := range pins {
		if key.Day < 0 || key.Day >= month.Len() {
			continue
		}
		if _, err := r.db.ExecContext(ctx, insert, key.EmployeeID, month.ISODate(key.Day), string(code)); err != nil {
			return fmt.Errorf("saving manual shift %s/%s: %w", key.EmployeeID, month.ISODate(key.Day), err)
		}
	}
	return nil
}

// ClearForMonth deletes every manual_shifts row within the month's day
// window.
func (r *PinRepository) ClearForMonth(ctx context.Context, month *calendarmodel.Month) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM manual_shifts WHERE date >= $1 AND date <= $2`,
		month.ISODate(0), month.ISODate(month.Len()-1))
	if err != nil {
		return fmt.Errorf("clearing manual shift rows: %w", err)
	}
	return nil
}
