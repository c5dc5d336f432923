package main

import (
	"fmt"

	"github.com/jonathan/invitation-letters/internal/importer"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importIDsCmd = &cobra.Command{
	Use:   "import-ids <file.xlsx|file.xls|file.csv>",
	Short: "Set the invited list from a spreadsheet of employee IDs",
	Long: `Read employee IDs from the first sheet of a spreadsheet. The ID column is the one
headed "id", "employeeId" or "الرقم الوظيفي", else the first column. Every ID must be
in the roster.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportIDs,
}

var importIDsAppend bool

func init() {
	importIDsCmd.Flags().BoolVar(&importIDsAppend, "append", false, "Add to the invited list instead of replacing it")
	rootCmd.AddCommand(importIDsCmd)
}

func runImportIDs(cmd *cobra.Command, args []string) error {
	ids, err := importer.LoadIDs(args[0])
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no employee IDs found in %s", args[0])
	}
	logger.Debug("read IDs", zap.String("file", args[0]), zap.Int("count", len(ids)))

	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := roster.NewService(st)
	if importIDsAppend {
		result, err := svc.AddInvited(ctx, ids)
		if err != nil {
			return err
		}
		fmt.Printf("Added %d employees (%d already invited)\n", len(result.Added), len(result.AlreadyInvited))
		return nil
	}

	stored, err := svc.ReplaceInvited(ctx, ids)
	if err != nil {
		return err
	}
	fmt.Printf("Invited list set to %d employees\n", len(stored))
	return nil
}
