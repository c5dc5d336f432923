package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/spf13/cobra"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary [title...]",
	Short: "List the job titles the grammar dictionary can inflect",
	Long: `Without arguments, list the dictionary entries. With job titles as arguments,
show the root each title normalizes to and whether letters will inflect it or use it verbatim.`,
	RunE: runDictionary,
}

var dictionaryReview bool

func init() {
	dictionaryCmd.Flags().BoolVar(&dictionaryReview, "review", false, "Only list entries flagged for native-language review")
	rootCmd.AddCommand(dictionaryCmd)
}

func runDictionary(_ *cobra.Command, args []string) error {
	dict, err := loadDictionary()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return printTitleChecks(os.Stdout, dict, args)
	}

	entries := dict.Entries()
	if dictionaryReview {
		entries = dict.FlaggedForReview()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tMASCULINE (1/2/3+)\tFEMININE (1/2/3+)\tREVIEW")
	for _, e := range entries {
		m, f := e.Masculine, e.Feminine
		fmt.Fprintf(tw, "%s\t%s / %s / %s\t%s / %s / %s\t%s\n",
			e.Key, m.Singular, m.Dual, m.Plural, f.Singular, f.Dual, f.Plural, e.Review)
	}
	return tw.Flush()
}

func printTitleChecks(w io.Writer, dict *grammar.Dictionary, titles []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tROOT\tSTATUS")
	for _, title := range titles {
		status := "verbatim"
		if dict.Known(title) {
			status = "inflected"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", title, dict.Normalize(title), status)
	}
	return tw.Flush()
}
