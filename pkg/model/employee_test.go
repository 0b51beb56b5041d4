package model

import "testing"

func TestEmployeeIsMorningOnly(t *testing.T) {
	cases := []struct {
		rank Rank
		want bool
	}{
		{RankJunior, false},
		{RankSenior, true},
		{RankManager, true},
	}

	for _, tc := range cases {
		e := Employee{Rank: tc.rank}
		if got := e.IsMorningOnly(); got != tc.want {
			t.Errorf("Employee{Rank: %s}.IsMorningOnly() = %v, want %v", tc.rank, got, tc.want)
		}
	}
}

func TestEmployeeInDepartment(t *testing.T) {
	e := Employee{Department: DepartmentCashier}

	if !e.InDepartment(DepartmentCashier) {
		t.Error("expected employee to be in Cashier department")
	}
	if e.InDepartment(DepartmentCustomerService) {
		t.Error("expected employee not to be in CustomerService department")
	}
}
