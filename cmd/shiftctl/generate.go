package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftboard/engine/internal/notify"
	"github.com/shiftboard/engine/pkg/calendarmodel"
	"github.com/shiftboard/engine/pkg/scheduler/orchestrator"
	"github.com/shiftboard/engine/pkg/store"
)

func runGenerate(year, month int, seed int64) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", month)
	}

	cfg, db, err := loadApp()
	if err != nil {
		return err
	}
	defer db.Close()

	employees, pins, schedules, settings := repositoriesFor(db)
	orch := orchestrator.New(employees, pins, schedules, settings)

	monthModel := calendarmodel.Build(year, time.Month(month), cfg.Scheduler.HolidaySet)

	ctx := context.Background()
	result, err := orch.Run(ctx, orchestrator.RunRequest{
		Month: monthModel,
		Seed:  seed,
		Progress: store.ProgressSinkFunc(func(fraction float64, message string) {
			fmt.Printf("[%5.1f%%] %s\n", fraction*100, message)
		}),
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Printf("\ndone: run_id=%s score=%d generations=%d residual_violations=%d\n",
		result.RunID, result.Fitness.Score, result.Generations, len(result.Violations))
	for _, v := range result.Violations {
		fmt.Printf("  - %s\n", v)
	}

	monthLabel := fmt.Sprintf("%04d-%02d", year, month)
	if err := notify.New(cfg.Notify).NotifyRunComplete(monthLabel, result); err != nil {
		fmt.Printf("warning: failed to post completion notification: %v\n", err)
	}
	return nil
}
