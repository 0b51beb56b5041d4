package model

import "testing"

func TestIsOffMarker(t *testing.T) {
	cases := []struct {
		code ShiftCode
		want bool
	}{
		{PRD, true},
		{AL, true},
		{NPL, true},
		{Off, false},
		{"VX14", false},
		{V633, false},
	}

	for _, tc := range cases {
		if got := tc.code.IsOffMarker(); got != tc.want {
			t.Errorf("%q.IsOffMarker() = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !Off.IsEmpty() {
		t.Error("Off.IsEmpty() should be true")
	}
	if PRD.IsEmpty() {
		t.Error("PRD.IsEmpty() should be false")
	}
}

func TestAnchorShifts(t *testing.T) {
	anchors := AnchorShifts()
	if len(anchors) != 6 {
		t.Fatalf("expected 6 anchor shifts, got %d", len(anchors))
	}

	want := map[ShiftCode]bool{
		V814: true, V614: true, V818: true, V618: true, V829: true, V633: true,
	}
	for _, a := range anchors {
		if !want[a] {
			t.Errorf("unexpected anchor shift %s", a)
		}
		delete(want, a)
	}
	if len(want) != 0 {
		t.Errorf("missing anchor shifts: %v", want)
	}
}
