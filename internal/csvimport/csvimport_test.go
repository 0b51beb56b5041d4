package csvimport

import (
	"strings"
	"testing"
)

func TestParseAcceptsValidRows(t *testing.T) {
	input := "id,name,rank,department\n" +
		"e1,Alice,Junior,Cashier\n" +
		"e2,Bob,Senior,CustomerService\n"

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(result.Employees))
	}
	if len(result.Rejected) != 0 {
		t.Fatalf("expected no rejected rows, got %d", len(result.Rejected))
	}
}

func TestParseRejectsInvalidRank(t *testing.T) {
	input := "id,name,rank,department\n" +
		"e1,Alice,Supervisor,Cashier\n"

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Employees) != 0 {
		t.Fatalf("expected 0 accepted employees, got %d", len(result.Employees))
	}
	if len(result.Rejected) != 1 {
		t.Fatalf("expected 1 rejected row, got %d", len(result.Rejected))
	}
	if result.Rejected[0].Row != 1 {
		t.Fatalf("expected rejected row 1, got %d", result.Rejected[0].Row)
	}
}

func TestParseRejectsMissingID(t *testing.T) {
	input := "id,name,rank,department\n" +
		",Alice,Junior,Cashier\n"

	result, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Rejected) != 1 {
		t.Fatalf("expected 1 rejected row, got %d", len(result.Rejected))
	}
}

func TestParseRequiresHeaderRow(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}
