package model

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.VXMin != 3 {
		t.Errorf("VXMin = %d, want 3", s.VXMin)
	}
	if s.MaxGenerations != 200 {
		t.Errorf("MaxGenerations = %d, want 200", s.MaxGenerations)
	}
	if s.BalanceMorningEvening {
		t.Error("BalanceMorningEvening should default to false")
	}
	if s.SelectedShifts == nil {
		t.Error("SelectedShifts should be initialized, not nil")
	}
}

func TestHasSelected(t *testing.T) {
	s := DefaultSettings()
	s.SelectedShifts[PRD] = true

	if !s.HasSelected(PRD) {
		t.Error("expected PRD to be selected")
	}
	if s.HasSelected(AL) {
		t.Error("expected AL not to be selected")
	}
}
