package validator

import (
	"testing"

	"github.com/shiftboard/engine/pkg/model"
)

func TestDetectAllFlagsUnknownCode(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("e1", 0, "BOGUS")

	employees := []model.Employee{{ID: "e1", Department: model.DepartmentCashier}}
	conflicts := NewPinConflictDetector(nil).DetectAll(pins, employees)

	if len(conflicts) != 1 || conflicts[0].Type != ConflictUnknownCode {
		t.Fatalf("got %+v, want one ConflictUnknownCode", conflicts)
	}
}

func TestDetectAllFlagsAnchorWrongDepartment(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("e1", 0, model.V814)

	employees := []model.Employee{{ID: "e1", Department: model.DepartmentCashier}}
	conflicts := NewPinConflictDetector(nil).DetectAll(pins, employees)

	if len(conflicts) != 1 || conflicts[0].Type != ConflictAnchorWrongDepartment {
		t.Fatalf("got %+v, want one ConflictAnchorWrongDepartment", conflicts)
	}
}

func TestDetectAllFlagsUnknownEmployee(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("ghost", 0, model.AL)

	conflicts := NewPinConflictDetector(nil).DetectAll(pins, nil)

	if len(conflicts) != 1 || conflicts[0].Type != ConflictUnknownEmployee {
		t.Fatalf("got %+v, want one ConflictUnknownEmployee", conflicts)
	}
}

func TestDetectAllAcceptsValidPins(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("e1", 0, model.AL)
	pins.Set("e2", 0, model.V633)

	employees := []model.Employee{
		{ID: "e1", Department: model.DepartmentCashier},
		{ID: "e2", Department: model.DepartmentCustomerService},
	}
	conflicts := NewPinConflictDetector(nil).DetectAll(pins, employees)

	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %+v", conflicts)
	}
}

func TestSanitizeRemovesOffendingPinsAndReports(t *testing.T) {
	pins := model.ManualPins{}
	pins.Set("e1", 0, "BOGUS")
	pins.Set("e1", 1, model.AL)

	employees := []model.Employee{{ID: "e1", Department: model.DepartmentCashier}}

	var reported []Conflict
	out := NewPinConflictDetector(nil).Sanitize(pins, employees, func(c Conflict) {
		reported = append(reported, c)
	})

	if _, ok := out.Get("e1", 0); ok {
		t.Error("unknown-code pin should have been removed")
	}
	if code, ok := out.Get("e1", 1); !ok || code != model.AL {
		t.Error("valid pin should survive sanitize untouched")
	}
	if len(reported) != 1 {
		t.Errorf("expected 1 reported conflict, got %d", len(reported))
	}
}
