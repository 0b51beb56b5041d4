package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/validator"
)

func runValidate(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", month)
	}

	cfg, db, err := loadApp()
	if err != nil {
		return err
	}
	defer db.Close()

	employeeRepo, pinRepo, _, _ := repositoriesFor(db)

	ctx := context.Background()
	employees, err := employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing employees: %w", err)
	}

	monthModel := calendarmodel.Build(year, time.Month(month), cfg.Scheduler.HolidaySet)
	pins, err := pinRepo.LoadForMonth(ctx, monthModel)
	if err != nil {
		return fmt.Errorf("loading pins: %w", err)
	}

	conflicts := validator.NewPinConflictDetector(nil).DetectAll(pins, employees)
	if len(conflicts) == 0 {
		fmt.Println("no pin conflicts found")
		return nil
	}

	fmt.Printf("%d pin conflict(s):\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Printf("  [%s] employee=%s day=%d code=%s: %s\n", c.Type, c.EmployeeID, c.Day, c.Code, c.Message)
	}
	return nil
}
