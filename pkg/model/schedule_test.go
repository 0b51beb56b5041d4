package model

import "testing"

func TestScheduleGetSetRoundTrip(t *testing.T) {
	s := NewSchedule([]string{"e1", "e2"}, 3)

	if got := s.Get("e1", 0); got != Off {
		t.Errorf("new schedule cell should be Off, got %q", got)
	}

	s.Set("e1", 1, V814)
	if got := s.Get("e1", 1); got != V814 {
		t.Errorf("Get after Set = %q, want %q", got, V814)
	}

	// Unknown employee is a no-op, not a panic.
	s.Set("ghost", 0, PRD)
	if got := s.Get("ghost", 0); got != Off {
		t.Errorf("Get on unknown employee = %q, want Off", got)
	}
}

func TestScheduleIndexOf(t *testing.T) {
	s := NewSchedule([]string{"e1", "e2"}, 1)

	if s.IndexOf("e1") != 0 || s.IndexOf("e2") != 1 {
		t.Error("unexpected employee index assignment")
	}
	if s.IndexOf("ghost") != -1 {
		t.Error("IndexOf for unknown employee should be -1")
	}
}

func TestScheduleCloneIsIndependent(t *testing.T) {
	s := NewSchedule([]string{"e1"}, 2)
	s.Set("e1", 0, V814)

	clone := s.Clone()
	clone.Set("e1", 0, PRD)

	if got := s.Get("e1", 0); got != V814 {
		t.Errorf("mutating clone affected original: got %q, want %q", got, V814)
	}
	if got := clone.Get("e1", 0); got != PRD {
		t.Errorf("clone.Get = %q, want %q", got, PRD)
	}
}

func TestScheduleHashStableAndSensitive(t *testing.T) {
	a := NewSchedule([]string{"e1", "e2"}, 2)
	a.Set("e1", 0, V814)

	b := a.Clone()
	if a.Hash() != b.Hash() {
		t.Error("identical schedules should hash identically")
	}

	b.Set("e2", 1, PRD)
	if a.Hash() == b.Hash() {
		t.Error("differing schedules should (almost certainly) hash differently")
	}
}

func TestScheduleRowAliasesStorage(t *testing.T) {
	s := NewSchedule([]string{"e1"}, 2)
	row := s.Row(0)
	row[0] = V633

	if got := s.Get("e1", 0); got != V633 {
		t.Errorf("Row mutation not reflected: got %q, want %q", got, V633)
	}
}
