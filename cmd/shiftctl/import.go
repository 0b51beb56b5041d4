package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shiftboard/engine/internal/csvimport"
)

func runImportEmployees(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	result, err := csvimport.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}

	if len(result.Rejected) > 0 {
		fmt.Printf("rejected %d row(s):\n", len(result.Rejected))
		for _, r := range result.Rejected {
			fmt.Printf("  row %d: %s\n", r.Row, r.Reason)
		}
	}
	if len(result.Employees) == 0 {
		fmt.Println("no valid rows to import")
		return nil
	}

	_, db, err := loadApp()
	if err != nil {
		return err
	}
	defer db.Close()

	employees, _, _, _ := repositoriesFor(db)
	if err := employees.Save(context.Background(), result.Employees); err != nil {
		return fmt.Errorf("saving employees: %w", err)
	}

	fmt.Printf("imported %d employee(s)\n", len(result.Employees))
	return nil
}
