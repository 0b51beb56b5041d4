// shiftctl is the operator-facing CLI: run a month, import the
// roster, or validate a pin file without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftboard/engine/internal/config"
	"github.com/shiftboard/engine/internal/database"
	"github.com/shiftboard/engine/internal/repository"
	"github.com/shiftboard/engine/pkg/logger"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftctl",
		Short: "Operator CLI for the shiftboard scheduling engine",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config overlay")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(importEmployeesCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadApp() (*config.Config, *database.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console"})

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, db, nil
}

func generateCmd() *cobra.Command {
	var year, month int
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one scheduling pass for a month and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(year, month, seed)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "roster year (required)")
	cmd.Flags().IntVar(&month, "month", 0, "roster month, 1-12 (required)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for non-deterministic")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
	return cmd
}

func importEmployeesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import-employees",
		Short: "Import an employee roster CSV into the employees table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportEmployees(file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the roster CSV (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func validateCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report any manual-pin conflicts for a month without running the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(year, month)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "roster year (required)")
	cmd.Flags().IntVar(&month, "month", 0, "roster month, 1-12 (required)")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
	return cmd
}

// repositoriesFor wires the four store implementations over db; kept
// as a single helper so every subcommand builds them identically.
func repositoriesFor(db *database.DB) (*repository.EmployeeRepository, *repository.PinRepository, *repository.ScheduleRepository, *repository.SettingsRepository) {
	return repository.NewEmployeeRepository(db),
		repository.NewPinRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewSettingsRepository(db)
}
