package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/invitation-letters/internal/roster"
	"github.com/jonathan/invitation-letters/internal/types"
	"github.com/spf13/cobra"
)

var invitedCmd = &cobra.Command{
	Use:   "invited",
	Short: "Edit and inspect the invited list",
}

var invitedAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Append roster employees to the invited list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInvitedAdd,
}

var invitedRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove employees from the invited list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInvitedRemove,
}

var invitedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the invited list",
	Args:  cobra.NoArgs,
	RunE:  runInvitedList,
}

var invitedSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the roster by ID, name, job title or location",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInvitedSearch,
}

var invitedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the invited list",
	Args:  cobra.NoArgs,
	RunE:  runInvitedClear,
}

var invitedJSON bool

func init() {
	invitedCmd.PersistentFlags().BoolVar(&invitedJSON, "json", false, "Print employees as JSON")
	invitedCmd.AddCommand(invitedAddCmd, invitedRemoveCmd, invitedListCmd, invitedSearchCmd, invitedClearCmd)
	rootCmd.AddCommand(invitedCmd)
}

// withService opens the store for the duration of fn.
func withService(cmd *cobra.Command, fn func(svc *roster.Service) error) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(roster.NewService(st))
}

func runInvitedAdd(cmd *cobra.Command, args []string) error {
	ids, err := parseIDArgs(args)
	if err != nil {
		return err
	}
	return withService(cmd, func(svc *roster.Service) error {
		result, err := svc.AddInvited(cmd.Context(), ids)
		if err != nil {
			return err
		}
		fmt.Printf("Added %d employees\n", len(result.Added))
		if len(result.AlreadyInvited) > 0 {
			fmt.Printf("Already invited: %s\n", joinIDs(result.AlreadyInvited))
		}
		return nil
	})
}

func runInvitedRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDArgs(args)
	if err != nil {
		return err
	}
	return withService(cmd, func(svc *roster.Service) error {
		removed, err := svc.RemoveInvited(cmd.Context(), ids)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d employees\n", removed)
		return nil
	})
}

func runInvitedList(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(svc *roster.Service) error {
		invited, err := svc.Invited(cmd.Context())
		if err != nil {
			return err
		}
		return printEmployees(os.Stdout, invited, invitedJSON)
	})
}

func runInvitedSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	return withService(cmd, func(svc *roster.Service) error {
		found, err := svc.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		return printEmployees(os.Stdout, found, invitedJSON)
	})
}

func runInvitedClear(cmd *cobra.Command, _ []string) error {
	return withService(cmd, func(svc *roster.Service) error {
		if err := svc.ClearInvited(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Invited list cleared")
		return nil
	})
}

// parseIDArgs parses positive employee identifiers.
func parseIDArgs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid employee id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func printEmployees(w io.Writer, employees []types.Employee, asJSON bool) error {
	if asJSON {
		if employees == nil {
			employees = []types.Employee{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(employees)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tJOB TITLE\tWORK LOCATION\tDIVISION\tCITY")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Gender.Honorific(), e.FullName, e.JobTitle, e.WorkLocation, e.Division, e.City)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d employees\n", len(employees))
	return err
}
