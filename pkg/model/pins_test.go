package model

import "testing"

func TestManualPinsGetSetDelete(t *testing.T) {
	pins := ManualPins{}

	if _, ok := pins.Get("e1", 0); ok {
		t.Fatal("empty pin table should have no entries")
	}

	pins.Set("e1", 0, AL)
	code, ok := pins.Get("e1", 0)
	if !ok || code != AL {
		t.Errorf("Get after Set = (%q, %v), want (%q, true)", code, ok, AL)
	}

	pins.Delete("e1", 0)
	if _, ok := pins.Get("e1", 0); ok {
		t.Error("pin should be gone after Delete")
	}
}

func TestManualPinsClone(t *testing.T) {
	pins := ManualPins{}
	pins.Set("e1", 0, NPL)

	clone := pins.Clone()
	clone.Set("e1", 0, AL)

	code, _ := pins.Get("e1", 0)
	if code != NPL {
		t.Errorf("mutating clone affected original: got %q, want %q", code, NPL)
	}
}

func TestManualPinsCountForEmployee(t *testing.T) {
	pins := ManualPins{}
	pins.Set("e1", 0, AL)
	pins.Set("e1", 1, AL)
	pins.Set("e1", 2, NPL)
	pins.Set("e2", 0, AL)

	if got := pins.CountForEmployee("e1", AL); got != 2 {
		t.Errorf("CountForEmployee(e1, AL) = %d, want 2", got)
	}
	if got := pins.CountForEmployee("e1", NPL); got != 1 {
		t.Errorf("CountForEmployee(e1, NPL) = %d, want 1", got)
	}
	if got := pins.CountForEmployee("e2", NPL); got != 0 {
		t.Errorf("CountForEmployee(e2, NPL) = %d, want 0", got)
	}
}
