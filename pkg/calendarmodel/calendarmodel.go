// Package calendarmodel derives the scheduling month's day sequence
// from a (year, month) pair and a fixed-holiday set.
package calendarmodel

import (
	"time"

	"github.com/shiftboard/engine/pkg/model"
)

// Month is the contiguous day-26-through-day-25 sequence a roster
// covers, plus the lookups orchestrator and scheduler packages need
// to translate between day index and calendar date.
type Month struct {
	Year, Month int
	Days        []model.CalendarDay
	dateIndex   map[string]int // ISO date -> day index
}

// Build computes the day list starting on day 26 of (year, month) and
// ending on day 25 of the following month, per spec's 26-to-25 roster
// convention. holidays is the externally configured fixed dd/mm set.
func Build(year int, month time.Month, holidays []model.MonthDay) *Month {
	start := time.Date(year, month, 26, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, 25, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	var days []model.CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := model.WeekdayFromTime(d)
		holiday := isHoliday(d, holidays)
		days = append(days, model.CalendarDay{
			Date:           d,
			Weekday:        wd,
			IsHoliday:      holiday,
			IsPRDForbidden: isPRDForbidden(wd, holiday, d.Day()),
		})
	}

	m := &Month{
		Year:      year,
		Month:     int(month),
		Days:      days,
		dateIndex: make(map[string]int, len(days)),
	}
	for i, day := range days {
		m.dateIndex[day.Date.Format("2006-01-02")] = i
	}
	return m
}

func isHoliday(d time.Time, holidays []model.MonthDay) bool {
	for _, h := range holidays {
		if h.Matches(d) {
			return true
		}
	}
	return false
}

// isPRDForbidden ≡ weekday ∈ {Saturday, Sunday} ∨ isHoliday ∨
// day-of-month ∈ {5, 20}.
func isPRDForbidden(wd model.Weekday, holiday bool, dayOfMonth int) bool {
	weekend := wd == model.Saturday || wd == model.Sunday
	return weekend || holiday || dayOfMonth == 5 || dayOfMonth == 20
}

// Len returns the number of days in the roster month.
func (m *Month) Len() int { return len(m.Days) }

// Sundays returns the day indices that fall on a Sunday.
func (m *Month) Sundays() []int {
	var out []int
	for i, d := range m.Days {
		if d.Weekday == model.Sunday {
			out = append(out, i)
		}
	}
	return out
}

// DayAt returns the CalendarDay at the given index.
func (m *Month) DayAt(index int) model.CalendarDay {
	return m.Days[index]
}

// ISODate returns the ISO-8601 date string for a day index, the wire
// format schedule rows are keyed by (spec §3 Calendar semantics).
func (m *Month) ISODate(index int) string {
	return m.Days[index].Date.Format("2006-01-02")
}

// IndexOf reconstructs the day index for an absolute ISO date by
// matching it against this month's day list, or -1 if the date falls
// outside the roster window.
func (m *Month) IndexOf(isoDate string) int {
	if i, ok := m.dateIndex[isoDate]; ok {
		return i
	}
	return -1
}
