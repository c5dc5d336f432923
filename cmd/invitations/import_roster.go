package main

import (
	"fmt"
	"os"

	"github.com/jonathan/invitation-letters/internal/importer"
	"github.com/jonathan/invitation-letters/internal/observability"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/jonathan/invitation-letters/internal/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importRosterCmd = &cobra.Command{
	Use:   "import-roster <file.json>",
	Short: "Import employees from a roster JSON file",
	Long: `Validate a roster JSON file against the roster schema and upsert its employees.
Records with a missing identifier, an unknown honorific or a repeated identifier are
reported and skipped. --schema adds a site-specific JSON Schema that the whole file
must satisfy before any record is read.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportRoster,
}

var (
	importRosterDryRun bool
	importRosterSchema string
)

func init() {
	importRosterCmd.Flags().StringVar(&importRosterSchema, "schema", "", "Additional JSON Schema file the roster must satisfy")
	importRosterCmd.Flags().BoolVar(&importRosterDryRun, "dry-run", false, "Validate and report without storing")
	rootCmd.AddCommand(importRosterCmd)
}

func runImportRoster(cmd *cobra.Command, args []string) error {
	if importRosterSchema != "" {
		if err := schemas.ValidateFile(importRosterSchema, args[0]); err != nil {
			return fmt.Errorf("roster does not satisfy %s: %w", importRosterSchema, err)
		}
	}

	result, err := importer.LoadRoster(args[0])
	if err != nil {
		return err
	}
	for _, r := range result.Rejected {
		logger.Warn("Skipping roster record",
			zap.Int("index", r.Index),
			zap.Int64("employee_id", r.EmployeeID),
			zap.String("reason", r.Reason))
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintImport(result)
	}
	if importRosterDryRun {
		fmt.Printf("%d employees valid, %d rejected (dry run)\n", len(result.Employees), len(result.Rejected))
		return nil
	}

	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := roster.NewService(st).ImportRoster(ctx, result.Employees); err != nil {
		return fmt.Errorf("failed to import roster: %w", err)
	}
	logger.Info("Roster imported", zap.Int("employees", len(result.Employees)), zap.Int("rejected", len(result.Rejected)))
	fmt.Printf("Imported %d employees (%d rejected)\n", len(result.Employees), len(result.Rejected))
	return nil
}
