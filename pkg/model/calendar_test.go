package model

import "testing"
import "time"

func TestWeekdayFromTime(t *testing.T) {
	cases := []struct {
		date string
		want Weekday
	}{
		{"2026-08-03", Monday},    // a Monday
		{"2026-08-04", Tuesday},
		{"2026-08-08", Saturday},
		{"2026-08-09", Sunday},
	}

	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("bad fixture date %s: %v", tc.date, err)
		}
		if got := WeekdayFromTime(d); got != tc.want {
			t.Errorf("WeekdayFromTime(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestMonthDayMatches(t *testing.T) {
	md := MonthDay{Day: 25, Month: 12}

	christmas, _ := time.Parse("2006-01-02", "2026-12-25")
	if !md.Matches(christmas) {
		t.Error("expected MonthDay{25,12} to match 2026-12-25")
	}

	other, _ := time.Parse("2006-01-02", "2026-12-24")
	if md.Matches(other) {
		t.Error("expected MonthDay{25,12} not to match 2026-12-24")
	}
}
