package main

import (
	"encoding/json"
	"os"

	"github.com/jonathan/invitation-letters/internal/letters"
	"github.com/jonathan/invitation-letters/internal/observability"
	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Preview the document data of every group without writing letters",
	Args:  cobra.NoArgs,
	RunE:  runGroups,
}

var groupsJSON bool

func init() {
	groupsCmd.Flags().BoolVar(&groupsJSON, "json", false, "Print the document data as JSON")
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, _ []string) error {
	dict, err := loadDictionary()
	if err != nil {
		return err
	}

	return withService(cmd, func(svc *roster.Service) error {
		snap, err := svc.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		docs, skipped := letters.NewGenerator(dict, nil, logger).Preview(snap)
		if groupsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"groups": docs, "skipped": skipped})
		}
		observability.NewPrinter(os.Stdout).PrintGroups(docs, skipped)
		return nil
	})
}
