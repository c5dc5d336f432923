package main

import (
	"fmt"
	"os"

	"github.com/jonathan/invitation-letters/internal/importer"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/spf13/cobra"
)

var exportRosterCmd = &cobra.Command{
	Use:   "export-roster <file.json>",
	Short: "Write the stored roster in the roster file format",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportRoster,
}

var exportInvitedOnly bool

func init() {
	exportRosterCmd.Flags().BoolVar(&exportInvitedOnly, "invited", false, "Export only the invited list")
	rootCmd.AddCommand(exportRosterCmd)
}

func runExportRoster(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := roster.NewService(st)
	employees, err := svc.Roster(ctx)
	if exportInvitedOnly {
		employees, err = svc.Invited(ctx)
	}
	if err != nil {
		return err
	}

	data, err := importer.MarshalRoster(employees)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Printf("Exported %d employees to %s\n", len(employees), args[0])
	return nil
}
